package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/orders"
	"github.com/dsemenov/storefront/internal/tokens"
	"github.com/dsemenov/storefront/internal/util"
)

type OrderHandler struct {
	Repo *orders.GormRepo
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := tokens.UserID(c)
	if err != nil {
		return err
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	list, err := h.Repo.ListOrders(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := tokens.UserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := h.Repo.GetOrder(c.Request().Context(), uint(id), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, order)
}
