package media

import "github.com/gin-gonic/gin"

func RegisterRoutes(authed *gin.RouterGroup, h *Handler) {
	m := authed.Group("/media")
	{
		m.GET("/stories/:user_name", h.ListStories)
		m.POST("/stories/:user_name", h.UploadStory)
		m.GET("/stories/:user_name/:file", h.GetStory)

		m.GET("/:user_name", h.ListMedia)
		m.POST("/:user_name", h.UploadMedia)
		m.GET("/:user_name/:file", h.GetMedia)
	}

	u := authed.Group("/user/:user_name")
	{
		u.POST("/avatar", h.UploadAvatar)
		u.GET("/avatar", h.GetAvatar)
	}
}
