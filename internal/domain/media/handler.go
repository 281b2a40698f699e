package media

import (
	"context"
	"net/http"
	"path/filepath"

	"socialhub/internal/middleware"
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

type pageQuery struct {
	Offset int  `form:"offset" binding:"min=0"`
	Limit  *int `form:"limit" binding:"omitempty,min=0"`
}

func (q pageQuery) limit() int {
	if q.Limit == nil {
		return -1
	}
	return *q.Limit
}

// ListMedia godoc
// @Summary List a user's media, newest first
// @Tags Media
// @Produce json
// @Param user_name path string true "Owner"
// @Param offset query int false "Entries to skip"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} map[string]interface{}
// @Router /media/{user_name} [get]
func (h *Handler) ListMedia(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}
	callerID, _ := middleware.CurrentUserID(c)

	names, err := h.service.ListMedia(c.Request.Context(), callerID, c.Param("user_name"), q.Offset, q.limit())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, names)
}

// ListStories godoc
// @Summary List a user's stories, oldest first
// @Tags Media
// @Produce json
// @Param user_name path string true "Owner"
// @Success 200 {object} map[string]interface{}
// @Router /media/stories/{user_name} [get]
func (h *Handler) ListStories(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	names, err := h.service.ListStories(c.Request.Context(), callerID, c.Param("user_name"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, names)
}

func (h *Handler) GetMedia(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	f, err := h.service.OpenMedia(c.Request.Context(), callerID, c.Param("user_name"), c.Param("file"))
	serve(c, f, err)
}

func (h *Handler) GetStory(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	f, err := h.service.OpenStory(c.Request.Context(), callerID, c.Param("user_name"), c.Param("file"))
	serve(c, f, err)
}

func (h *Handler) GetAvatar(c *gin.Context) {
	f, err := h.service.OpenAvatar(c.Request.Context(), c.Param("user_name"))
	serve(c, f, err)
}

// UploadMedia godoc
// @Summary Upload permanent media as multipart/form-data
// @Tags Media
// @Accept mpfd
// @Produce json
// @Param user_name path string true "Owner"
// @Success 200 {object} map[string]interface{}
// @Failure 413 {object} map[string]interface{}
// @Failure 415 {object} map[string]interface{}
// @Router /media/{user_name} [post]
func (h *Handler) UploadMedia(c *gin.Context) {
	h.upload(c, h.service.UploadMedia)
}

func (h *Handler) UploadStory(c *gin.Context) {
	h.upload(c, h.service.UploadStory)
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	h.upload(c, h.service.UploadAvatar)
}

type uploadFunc func(ctx context.Context, callerID int64, name string, open SourceOpener) (*mediafs.IngestResult, error)

func (h *Handler) upload(c *gin.Context, fn uploadFunc) {
	callerID, _ := middleware.CurrentUserID(c)
	open := func() (mediafs.Source, error) {
		return mediafs.SourceFromRequest(c.Request)
	}

	res, err := fn(c.Request.Context(), callerID, c.Param("user_name"), open)
	if err != nil {
		writeError(c, err)
		return
	}

	files := make([]string, 0, len(res.Written))
	for _, p := range res.Written {
		files = append(files, filepath.Base(p))
	}
	response.Success(c, http.StatusOK, gin.H{"files": files})
}

func serve(c *gin.Context, f *File, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()
	http.ServeContent(c.Writer, c.Request, f.BaseName, f.ModTime, f)
}
