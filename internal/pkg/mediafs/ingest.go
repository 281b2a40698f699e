package mediafs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/spf13/afero"
)

const defaultChunkSize = 32 * 1024

// PartReader yields multipart fields one at a time. *multipart.Reader
// implements it.
type PartReader interface {
	NextPart() (*multipart.Part, error)
}

// Source is one upload request as seen by the Ingester.
type Source struct {
	DeclaredLength int64
	Parts          PartReader
}

// SourceFromRequest reads the declared length and opens the multipart stream
// of r without consuming any of the body. Without a Content-Length header the
// length the server parsed for r is used.
func SourceFromRequest(r *http.Request) (Source, error) {
	declared, err := DeclaredLength(r.Header)
	if err != nil {
		return Source{}, err
	}
	if declared == 0 && r.ContentLength > 0 {
		declared = r.ContentLength
	}
	mr, err := r.MultipartReader()
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", ErrNotMultipart, err)
	}
	return Source{DeclaredLength: declared, Parts: mr}, nil
}

// StopReason tells why the field loop ended.
type StopReason int

const (
	StopNone StopReason = iota
	// StopLimitReached: MaxFileCount fields were written, the rest was never read.
	StopLimitReached
	// StopStreamExhausted: the body had no further fields.
	StopStreamExhausted
	// StopStreamMalformed: fetching the next field failed with something other than EOF.
	StopStreamMalformed
)

func (r StopReason) String() string {
	switch r {
	case StopLimitReached:
		return "limit_reached"
	case StopStreamExhausted:
		return "stream_exhausted"
	case StopStreamMalformed:
		return "stream_malformed"
	default:
		return "none"
	}
}

// IngestResult records what an ingest call left on disk. Written holds every
// path that was created, including a partially written file when the call
// failed mid-field. Nothing is rolled back; callers may clean up themselves.
type IngestResult struct {
	Written []string
	Stop    StopReason
}

// Ingester streams multipart fields to files.
type Ingester struct {
	fs        afero.Fs
	chunkSize int
	logger    *slog.Logger
}

// NewIngester creates an Ingester writing through fs.
func NewIngester(fs afero.Fs, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{
		fs:        fs,
		chunkSize: defaultChunkSize,
		logger:    logger.With(slog.String("component", "ingest")),
	}
}

// Ingest drains src under policy, writing each accepted field to the path
// naming picks inside root. root must already exist.
//
// The declared length is checked before the body is touched. Fields are then
// handled one after another until MaxFileCount have been written or the
// stream ends. A field declaring a content type off the allow-list aborts the
// request; files written for earlier fields stay on disk. Fields without a
// Content-Type header are accepted.
func (in *Ingester) Ingest(ctx context.Context, src Source, root string, policy Policy, naming NamingStrategy) (*IngestResult, error) {
	result := &IngestResult{}

	if err := policy.CheckDeclaredSize(src.DeclaredLength); err != nil {
		return result, err
	}

	accepted := 0
	for accepted < policy.MaxFileCount {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%w: %w", ErrStreamAborted, err)
		}

		part, err := src.Parts.NextPart()
		if errors.Is(err, io.EOF) {
			result.Stop = StopStreamExhausted
			return result, nil
		}
		if err != nil {
			in.logger.Warn("multipart stream ended with error",
				slog.Int("accepted", accepted),
				slog.String("error", err.Error()),
			)
			result.Stop = StopStreamMalformed
			return result, nil
		}

		// untyped fields are written as-is
		contentType := part.Header.Get("Content-Type")
		if contentType != "" && !policy.Allows(contentType) {
			part.Close()
			return result, fmt.Errorf("%w: %q", ErrIllegalContentType, contentType)
		}

		name := part.FileName()
		if name == "" {
			name = DefaultFileName
		}
		dest := naming(root, name)

		err = in.writePart(ctx, part, dest, result)
		part.Close()
		if err != nil {
			return result, err
		}
		accepted++
	}

	result.Stop = StopLimitReached
	return result, nil
}

func (in *Ingester) writePart(ctx context.Context, part io.Reader, dest string, result *IngestResult) error {
	f, err := in.fs.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrWriting, dest, err)
	}
	result.Written = append(result.Written, dest)

	buf := make([]byte, in.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			f.Close()
			return fmt.Errorf("%w: %s: %w", ErrStreamAborted, dest, err)
		}

		n, rerr := part.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				f.Close()
				return fmt.Errorf("%w: %s: %v", ErrWriting, dest, werr)
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			f.Close()
			return fmt.Errorf("%w: %s: %w", ErrStreamAborted, dest, rerr)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrWriting, dest, err)
	}
	return nil
}
