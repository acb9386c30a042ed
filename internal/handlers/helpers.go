package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionCookie = "cart_session"

// EventPublisher is satisfied by events.Producer. A nil publisher drops
// events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: err.Error(),
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// EnsureSession hands every visitor an opaque cart session id. The id is the
// only key the cart subsystem ever sees, it is never derived from the user
// identity.
func EnsureSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ck, err := c.Cookie(sessionCookie); err == nil && ck.Value != "" {
			c.Set("sessionID", ck.Value)
			return next(c)
		}
		sid := uuid.NewString()
		c.SetCookie(&http.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set("sessionID", sid)
		return next(c)
	}
}

func sessionID(c echo.Context) string {
	s, _ := c.Get("sessionID").(string)
	return s
}
