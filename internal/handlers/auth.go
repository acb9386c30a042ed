package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/hash"
	"github.com/dsemenov/storefront/internal/logging"
	"github.com/dsemenov/storefront/internal/models"
	"github.com/dsemenov/storefront/internal/tokens"
)

type AuthHandler struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      EventPublisher
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password required")
	}

	var existing models.User
	if err := h.DB.Where("username=?", req.Username).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         "user",
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if h.Producer != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
			"type":     "user_registered",
			"userID":   user.ID,
			"username": user.Username,
		}); err != nil {
			logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
		}
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	accessToken, err := tokens.SignAccessToken(user.ID, user.Role, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	refreshToken, err := tokens.SignRefreshToken(user.ID, user.Role, h.RefreshSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := tokens.SaveRefreshToken(h.DB, refreshToken, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(tokens.CreateCookie("accessToken", accessToken, "/", time.Now().Add(tokens.AccessTTL)))
	c.SetCookie(tokens.CreateCookie("refreshToken", refreshToken, "/", time.Now().Add(tokens.RefreshTTL)))

	return c.JSON(http.StatusOK, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	if ck, err := c.Cookie("refreshToken"); err == nil {
		ts := tokens.TokenService{DB: h.DB, JWTSecret: h.JWTSecret, RefreshSecret: h.RefreshSecret}
		if err := ts.RevokeRefresh(ck.Value); err != nil {
			logging.FromContext(c.Request().Context()).Error("revoke refresh failed", "error", err)
		}
	}

	c.SetCookie(tokens.CreateCookie("accessToken", "", "/", time.Unix(0, 0)))
	c.SetCookie(tokens.CreateCookie("refreshToken", "", "/", time.Unix(0, 0)))
	return c.NoContent(http.StatusNoContent)
}
