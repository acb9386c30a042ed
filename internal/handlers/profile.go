package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/models"
	"github.com/dsemenov/storefront/internal/profile"
	"github.com/dsemenov/storefront/internal/tokens"
)

type ProfileHandler struct {
	Repo *profile.GormRepo
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := tokens.UserID(c)
	if err != nil {
		return err
	}

	detail, err := h.Repo.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *ProfileHandler) PutProfile(c echo.Context) error {
	userID, err := tokens.UserID(c)
	if err != nil {
		return err
	}

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		City      string `json:"city"`
		State     string `json:"state"`
		Zip       string `json:"zip"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.FirstName == "" || req.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "first and last name required")
	}

	detail := models.UserDetail{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
	}
	if err := h.Repo.Upsert(c.Request().Context(), &detail); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, detail)
}
