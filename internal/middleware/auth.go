package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"socialhub/internal/pkg/jwt"
	"socialhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName holds the session token.
	CookieName = "token"

	contextUserID = "user_id"
)

// UserChecker tells whether the user behind a session still exists.
type UserChecker interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}

// CookieAuth admits requests carrying a valid session cookie whose user
// still exists, and stores the user id in the context.
func CookieAuth(tokens *jwt.Service, users UserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			response.CustomError(c, http.StatusUnauthorized, "AUTH_COOKIE_MISSING", "Authentication required")
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired session")
			return
		}

		exists, err := users.UserExists(c.Request.Context(), claims.UserID)
		if err != nil {
			slog.Error("session user lookup failed",
				slog.Int64("user_id", claims.UserID),
				slog.String("error", err.Error()),
			)
			response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check session")
			return
		}
		if !exists {
			response.CustomError(c, http.StatusUnauthorized, "USER_NOT_FOUND", "Session user no longer exists")
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the id CookieAuth stored for this request.
func CurrentUserID(c *gin.Context) (int64, bool) {
	id := c.GetInt64(contextUserID)
	return id, id > 0
}
