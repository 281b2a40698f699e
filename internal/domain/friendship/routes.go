package friendship

import "github.com/gin-gonic/gin"

func RegisterRoutes(authed *gin.RouterGroup, h *Handler) {
	u := authed.Group("/user/:user_name")
	{
		u.POST("/friendship/:friend_name", h.Befriend)
		u.GET("/friends", h.Friends)
	}
}
