package mediafs

import "errors"

var (
	ErrNotReadable           = errors.New("directory is not readable")
	ErrFileSizeTooBig        = errors.New("declared content length exceeds the upload limit")
	ErrIllegalContentType    = errors.New("content type is not allowed")
	ErrWriting               = errors.New("failed to write uploaded file")
	ErrCorruptedHeaderLength = errors.New("content length header is not a valid integer")
	ErrStreamAborted         = errors.New("upload stream aborted")
	ErrNotMultipart          = errors.New("request body is not multipart")
)
