package auth

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/authCookie", h.Login)
	api.GET("/logout", h.Logout)
}

func (h *Handler) RegisterProtectedRoutes(authed *gin.RouterGroup) {
	authed.GET("/authCookie/revalidate", h.Revalidate)
}
