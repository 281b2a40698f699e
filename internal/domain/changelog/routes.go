package changelog

import "github.com/gin-gonic/gin"

func RegisterRoutes(authed *gin.RouterGroup, h *Handler) {
	authed.GET("/changelog", h.Notes)
	authed.GET("/changelog/version", h.Version)
}
