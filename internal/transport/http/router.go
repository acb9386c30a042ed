package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/dsemenov/storefront/internal/handlers"
	"github.com/dsemenov/storefront/internal/tokens"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
	OrderHandler   *handlers.OrderHandler
	ProfileHandler *handlers.ProfileHandler
	SearchHandler  *handlers.SearchHandler
	TokenService   *tokens.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	v1.GET("/categories", d.ProductHandler.GetCategories)

	admin := v1.Group("/admin", d.TokenService.AutoRefreshMiddlewareAdmin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	cart := v1.Group("/cart", handlers.EnsureSession)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/items", d.CartHandler.AddToCart)
	cart.PATCH("/items/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/items/:id", d.CartHandler.RemoveFromCart)
	cart.POST("/checkout", d.CartHandler.SubmitOrder, d.TokenService.AutoRefreshMiddleware)

	authed := v1.Group("", d.TokenService.AutoRefreshMiddleware)
	authed.GET("/orders", d.OrderHandler.ListOrders)
	authed.GET("/orders/:id", d.OrderHandler.GetOrder)
	authed.GET("/profile", d.ProfileHandler.GetProfile)
	authed.PUT("/profile", d.ProfileHandler.PutProfile)
}
