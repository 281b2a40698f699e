package user

import (
	"errors"
	"log/slog"
	"net/http"

	"socialhub/internal/middleware"
	"socialhub/internal/pkg/response"
	"socialhub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	guard   *Guard
}

func NewHandler(service *Service, guard *Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

type createRequest struct {
	Name        string `json:"name" validate:"required,username"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Description string `json:"description" validate:"max=1000"`
	IsBot       bool   `json:"is_bot"`
}

type updateInformationRequest struct {
	Description string `json:"description" binding:"max=1000"`
}

// Create godoc
// @Summary Create a user (debug builds only)
// @Tags Users
// @Accept json
// @Produce json
// @Param body body createRequest true "New user"
// @Success 201 {object} map[string]interface{}
// @Router /user [post]
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user data", errs)
		return
	}

	u, err := h.service.Create(c.Request.Context(), CreateInput{
		Name:        req.Name,
		Password:    req.Password,
		Description: req.Description,
		IsBot:       req.IsBot,
	})
	if err != nil {
		WriteError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// WhoAmI godoc
// @Summary Current session user
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /whoAmI [get]
func (h *Handler) WhoAmI(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	u, err := h.service.GetByID(c.Request.Context(), callerID)
	if err != nil {
		WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":        u.ID,
		"user_name": u.Name,
		"role":      u.Role,
		"is_bot":    u.IsBot,
	})
}

// GetInformation answers any signed-in caller; profiles are public.
func (h *Handler) GetInformation(c *gin.Context) {
	owner, err := h.service.GetByName(c.Request.Context(), c.Param("user_name"))
	if err != nil {
		WriteError(c, err)
		return
	}

	profile, err := h.service.Profile(owner)
	if err != nil {
		WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) UpdateInformation(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	owner, err := h.guard.Owner(c.Request.Context(), callerID, c.Param("user_name"), Write)
	if err != nil {
		WriteError(c, err)
		return
	}

	var req updateInformationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.service.UpdateDescription(c.Request.Context(), owner.ID, req.Description); err != nil {
		WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"description": req.Description})
}

// GetChecklist is open to the owner, their friends and admins.
func (h *Handler) GetChecklist(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	owner, err := h.guard.Owner(c.Request.Context(), callerID, c.Param("user_name"), Read)
	if err != nil {
		WriteError(c, err)
		return
	}

	list, err := h.service.Checklist(owner)
	if err != nil {
		WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) PutChecklist(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	owner, err := h.guard.Owner(c.Request.Context(), callerID, c.Param("user_name"), Write)
	if err != nil {
		WriteError(c, err)
		return
	}

	var list Checklist
	if err := c.ShouldBindJSON(&list); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.service.SaveChecklist(owner, list); err != nil {
		WriteError(c, err)
		return
	}
	list.normalize()
	response.Success(c, http.StatusOK, list)
}

// WriteError maps user errors onto the JSON envelope. Unknown errors are
// logged and answered with 500.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not allowed to access this user")
	case errors.Is(err, ErrNameTaken):
		response.Error(c, http.StatusConflict, "NAME_TAKEN", "User name already taken")
	case errors.Is(err, ErrInvalidName):
		response.Error(c, http.StatusBadRequest, "INVALID_NAME", "Invalid user name")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, ErrChecklistCorrupt):
		slog.Error("checklist unreadable", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
		response.Error(c, http.StatusInternalServerError, "CHECKLIST_UNREADABLE", "Checklist cannot be read")
	default:
		_ = c.Error(err)
		slog.Error("request failed", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
