package user

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the user endpoints on an authenticated group.
func RegisterRoutes(authed *gin.RouterGroup, h *Handler) {
	authed.GET("/whoAmI", h.WhoAmI)

	u := authed.Group("/user/:user_name")
	{
		u.GET("/information", h.GetInformation)
		u.PUT("/information", h.UpdateInformation)
		u.GET("/list", h.GetChecklist)
		u.PUT("/list", h.PutChecklist)
	}
}

// RegisterDebugRoutes mounts unauthenticated account creation. Only for
// debug runs.
func RegisterDebugRoutes(public *gin.RouterGroup, h *Handler) {
	public.POST("/user", h.Create)
}
