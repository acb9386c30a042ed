package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dsemenov/storefront/internal/cart"
	"github.com/dsemenov/storefront/internal/checkout"
	"github.com/dsemenov/storefront/internal/logging"
	"github.com/dsemenov/storefront/internal/tokens"
)

type CartHandler struct {
	Svc      *cart.Service
	Checkout *checkout.Service
	Producer EventPublisher
}

func (h *CartHandler) publish(c echo.Context, topic string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, fmt.Sprint(event["sessionID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.Svc.CartView(ctx, sessionID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Svc.AddItem(ctx, sessionID(c), req.ProductID)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			l.Warn("add_item_error", "status", 404, "product_id", req.ProductID)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("add_item_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "cart_events", map[string]any{
		"type":      "cart_item_added",
		"sessionID": sessionID(c),
		"productID": req.ProductID,
		"quantity":  updated[req.ProductID].Quantity,
	})
	return c.JSON(http.StatusOK, updated)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Svc.UpdateQuantity(ctx, sessionID(c), productID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrValidation):
			l.Warn("update_quantity_error", "status", 400, "quantity", req.Quantity)
			return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
		case errors.Is(err, cart.ErrNotFound):
			l.Warn("update_quantity_error", "status", 404, "product_id", productID)
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		default:
			l.Error("update_quantity_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.publish(c, "cart_events", map[string]any{
		"type":      "cart_quantity_updated",
		"sessionID": sessionID(c),
		"productID": productID,
		"quantity":  req.Quantity,
	})
	return c.JSON(http.StatusOK, updated)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	updated, err := h.Svc.RemoveItem(ctx, sessionID(c), productID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, "cart_events", map[string]any{
		"type":      "cart_item_removed",
		"sessionID": sessionID(c),
		"productID": productID,
	})
	return c.JSON(http.StatusOK, updated)
}

func (h *CartHandler) SubmitOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.submit_order")

	userID, err := tokens.UserID(c)
	if err != nil {
		return err
	}

	orderID, err := h.Checkout.SubmitOrder(ctx, sessionID(c), userID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			l.Warn("submit_order_error", "status", 400, "reason", "empty cart")
			return echo.NewHTTPError(http.StatusBadRequest, "no items in cart")
		case errors.Is(err, checkout.ErrNotFound):
			l.Warn("submit_order_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			l.Error("submit_order_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("submit_order_success", "order_id", orderID)
	h.publish(c, "order_events", map[string]any{
		"type":      "order_created",
		"sessionID": sessionID(c),
		"userID":    userID,
		"orderID":   orderID,
	})
	return c.JSON(http.StatusCreated, map[string]any{"order_id": orderID})
}
