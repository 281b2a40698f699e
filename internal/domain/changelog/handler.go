package changelog

import (
	"errors"
	"log/slog"
	"net/http"

	"socialhub/internal/pkg/mediafs"
	"socialhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Notes godoc
// @Summary Lines of the latest changelog
// @Tags Changelog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /changelog [get]
func (h *Handler) Notes(c *gin.Context) {
	lines, err := h.service.Notes()
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, lines)
}

func (h *Handler) Version(c *gin.Context) {
	latest, err := h.service.Latest()
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, latest.Version)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoReleases), errors.Is(err, mediafs.ErrNotReadable):
		response.Error(c, http.StatusNotFound, "CHANGELOG_NOT_FOUND", "No changelog available")
	default:
		slog.Error("changelog failed", slog.String("error", err.Error()))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
