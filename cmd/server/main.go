package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/dsemenov/storefront/internal/cart"
	"github.com/dsemenov/storefront/internal/cartstore"
	"github.com/dsemenov/storefront/internal/catalog"
	"github.com/dsemenov/storefront/internal/checkout"
	"github.com/dsemenov/storefront/internal/config"
	"github.com/dsemenov/storefront/internal/events"
	"github.com/dsemenov/storefront/internal/handlers"
	"github.com/dsemenov/storefront/internal/logging"
	"github.com/dsemenov/storefront/internal/orders"
	"github.com/dsemenov/storefront/internal/profile"
	"github.com/dsemenov/storefront/internal/search"
	"github.com/dsemenov/storefront/internal/tokens"
	httpserver "github.com/dsemenov/storefront/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(configuration.REFRESH_SECRET, "REFRESH_SECRET")

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configuration.REDIS_ADDR,
		Password: configuration.REDIS_PASSWORD,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis ping failed: %v", err)
	}
	cartStore := cartstore.NewRedisStore(redisClient)

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	catalogRepo := &catalog.GormRepo{DB: db}
	profileRepo := &profile.GormRepo{DB: db}
	orderRepo := &orders.GormRepo{DB: db}

	cartSvc := &cart.Service{Store: cartStore, Products: catalogRepo}
	checkoutSvc := &checkout.Service{
		Store:    cartStore,
		Profiles: profileRepo,
		Orders:   orderRepo,
	}

	deps := &httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: producer},
		ProductHandler: &handlers.ProductHandler{Repo: catalogRepo, Producer: producer},
		CartHandler:    &handlers.CartHandler{Svc: cartSvc, Checkout: checkoutSvc, Producer: producer},
		OrderHandler:   &handlers.OrderHandler{Repo: orderRepo},
		ProfileHandler: &handlers.ProfileHandler{Repo: profileRepo},
		TokenService:   &tokens.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret},
	}

	if configuration.ES_URL != "" {
		esClient, err := search.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
		deps.SearchHandler = &handlers.SearchHandler{ES: esClient, Index: "product"}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(configuration.PORT),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("redis close error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
