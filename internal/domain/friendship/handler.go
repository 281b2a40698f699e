package friendship

import (
	"errors"
	"net/http"

	"socialhub/internal/domain/user"
	"socialhub/internal/middleware"
	"socialhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Befriend godoc
// @Summary Create a friendship between two users
// @Tags Friendships
// @Produce json
// @Param user_name path string true "User the caller acts for"
// @Param friend_name path string true "New friend"
// @Success 200 {object} map[string]interface{}
// @Router /user/{user_name}/friendship/{friend_name} [post]
func (h *Handler) Befriend(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	err := h.service.Befriend(c.Request.Context(), callerID, c.Param("user_name"), c.Param("friend_name"))
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"message": "friendship created"})
	case errors.Is(err, ErrAlreadyFriends):
		response.Error(c, http.StatusConflict, "ALREADY_FRIENDS", err.Error())
	case errors.Is(err, ErrSelfFriendship):
		response.Error(c, http.StatusBadRequest, "SELF_FRIENDSHIP", err.Error())
	default:
		user.WriteError(c, err)
	}
}

func (h *Handler) Friends(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	friends, err := h.service.Friends(c.Request.Context(), callerID, c.Param("user_name"))
	if err != nil {
		user.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, friends)
}
