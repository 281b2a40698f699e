package media

import (
	"errors"
	"net/http"

	"socialhub/internal/domain/user"
	"socialhub/internal/pkg/mediafs"
	"socialhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

var ErrFileNotFound = errors.New("file not found")

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mediafs.ErrFileSizeTooBig):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Upload exceeds the size limit")
	case errors.Is(err, mediafs.ErrIllegalContentType):
		response.Error(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "File type is not allowed")
	case errors.Is(err, mediafs.ErrCorruptedHeaderLength), errors.Is(err, mediafs.ErrNotMultipart):
		response.Error(c, http.StatusBadRequest, "INVALID_UPLOAD", err.Error())
	case errors.Is(err, mediafs.ErrNotReadable), errors.Is(err, ErrFileNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
	default:
		user.WriteError(c, err)
	}
}
