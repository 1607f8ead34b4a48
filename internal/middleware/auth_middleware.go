package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"laundryTrack/business/auth"
	jsonres "laundryTrack/pkg/response"

	"github.com/labstack/echo/v4"
)

// SessionResolver resolves a bearer session id to its user.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (auth.SessionInfo, error)
}

// BearerSessionID extracts the opaque session id from the Authorization
// header, empty string when absent or malformed.
func BearerSessionID(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return ""
	}

	return tokenParts[1]
}

// AuthMiddleware resolves the session on every request and rejects the call
// when it is missing, unknown or expired.
func AuthMiddleware(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := BearerSessionID(c)
			if sessionID == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing or invalid authorization header", nil,
				))
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			session, err := resolver.GetSession(ctx, sessionID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Session expired or invalid", nil,
				))
			}

			c.Set("user_id", session.UserID)
			c.Set("email", session.Email)
			c.Set("session_id", session.SessionID)

			return next(c)
		}
	}
}

// UserID reads the authenticated user id set by AuthMiddleware.
func UserID(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok
}
