package tokens

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/models"
)

type TokenService struct {
	DB            *gorm.DB
	RefreshSecret []byte
	JWTSecret     []byte
}

func (t *TokenService) RotateToken(rawToken string) (string, string, jwt.MapClaims, error) {
	claims, err := ValidateRefresh(rawToken, t.RefreshSecret, t.DB)
	if err != nil {
		return "", "", nil, err
	}

	userID := uint(claims["sub"].(float64))
	role, _ := claims["role"].(string)

	newAccess, err := SignAccessToken(userID, role, t.JWTSecret)
	if err != nil {
		return "", "", nil, err
	}

	newRefresh, err := SignRefreshToken(userID, role, t.RefreshSecret)
	if err != nil {
		return "", "", nil, err
	}

	if err := SaveRefreshToken(t.DB, newRefresh, userID); err != nil {
		return "", "", nil, err
	}

	return newAccess, newRefresh, claims, nil
}

func (t *TokenService) RevokeRefresh(token string) error {
	if err := t.DB.Model(&models.RefreshToken{}).Where("token=?", token).Update("revoked", true).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// CheckCookie validates the access cookie, falling back to refresh-token
// rotation when the access token expired. Returns the (possibly new) access
// token, a new refresh token when rotation happened and the caller's role.
func (t *TokenService) CheckCookie(c echo.Context) (string, string, string, error) {
	asCookie, err := c.Cookie("accessToken")
	if err == nil {
		token, err := jwt.Parse(asCookie.Value, func(j *jwt.Token) (interface{}, error) {
			return t.JWTSecret, nil
		})
		if err == nil && token.Valid {
			claims := token.Claims.(jwt.MapClaims)
			role, ok := claims["role"].(string)
			if !ok {
				return "", "", "", echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}
			setUserContext(c, claims)
			return asCookie.Value, "", role, nil
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
	}

	rfCookie, err := c.Cookie("refreshToken")
	if err != nil {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}
	newAccess, newRefresh, claims, err := t.RotateToken(rfCookie.Value)
	if err != nil {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "cannot rotate token: "+err.Error())
	}

	role, ok := claims["role"].(string)
	if !ok {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	return newAccess, newRefresh, role, nil
}

func (t *TokenService) AutoRefreshMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, _, err := t.CheckCookie(c)
		if err != nil {
			return err
		}

		if newRefresh == "" {
			return next(c)
		}

		t.setTokenCookies(c, newAccess, newRefresh)
		return next(c)
	}
}

func (t *TokenService) AutoRefreshMiddlewareAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, role, err := t.CheckCookie(c)
		if err != nil {
			return err
		}
		if role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}

		if newRefresh != "" {
			t.setTokenCookies(c, newAccess, newRefresh)
		}
		return next(c)
	}
}

func (t *TokenService) setTokenCookies(c echo.Context, access, refresh string) {
	c.SetCookie(CreateCookie("accessToken", access, "/", time.Now().Add(AccessTTL)))
	c.SetCookie(CreateCookie("refreshToken", refresh, "/", time.Now().Add(RefreshTTL)))

	token, _ := jwt.Parse(access, func(j *jwt.Token) (interface{}, error) { return t.JWTSecret, nil })
	if token != nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			setUserContext(c, claims)
		}
	}
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(float64); ok {
		c.Set("userID", uint(sub))
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}

// UserID reads the authenticated user from the echo context populated by the
// auto-refresh middleware.
func UserID(c echo.Context) (uint, error) {
	v, ok := c.Get("userID").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return v, nil
}
