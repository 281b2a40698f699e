package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"socialhub/internal/domain/user"
	"socialhub/internal/middleware"
	"socialhub/internal/pkg/jwt"
	"socialhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, name, password string) (*user.User, error)
}

type CookieConfig struct {
	Secure   bool
	SameSite string
}

type Handler struct {
	users  Authenticator
	tokens *jwt.Service
	cookie CookieConfig
}

func NewHandler(users Authenticator, tokens *jwt.Service, cookie CookieConfig) *Handler {
	return &Handler{users: users, tokens: tokens, cookie: cookie}
}

// Login godoc
// @Summary Exchange HTTP Basic credentials for a session cookie
// @Tags Auth
// @Produce json
// @Security BasicAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /authCookie [get]
func (h *Handler) Login(c *gin.Context) {
	name, password, ok := c.Request.BasicAuth()
	if !ok {
		c.Header("WWW-Authenticate", `Basic realm="socialhub"`)
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Basic credentials required")
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), name, password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("login failed", slog.String("name", name), slog.String("error", err.Error()))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	token, err := h.tokens.GenerateToken(u.ID)
	if err != nil {
		slog.Error("token generation failed", slog.Int64("user_id", u.ID), slog.String("error", err.Error()))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	h.setCookie(c, token, int(h.tokens.TTL().Seconds()))
	response.Success(c, http.StatusOK, gin.H{"user_name": u.Name})
}

// Revalidate answers 200 while the session cookie is valid and its user
// exists. CookieAuth has already checked both.
func (h *Handler) Revalidate(c *gin.Context) {
	id, _ := middleware.CurrentUserID(c)
	response.Success(c, http.StatusOK, gin.H{"user_id": id})
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(parseSameSite(h.cookie.SameSite))
	c.SetCookie(middleware.CookieName, value, maxAge, "/", "", h.cookie.Secure, true)
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
