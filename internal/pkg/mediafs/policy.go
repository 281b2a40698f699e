package mediafs

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultFileName is used when a multipart field carries no filename.
const DefaultFileName = "Default name"

// Policy bounds a single upload request. Limits apply to declared values
// only: the aggregate Content-Length and each field's Content-Type.
type Policy struct {
	MaxFileCount        int
	MaxDeclaredSize     int64
	AllowedContentTypes []string
}

// NewPolicy builds a Policy. Content types are normalized to their lower-case
// media type without parameters.
func NewPolicy(maxFiles int, maxDeclaredSize int64, contentTypes ...string) Policy {
	allowed := make([]string, 0, len(contentTypes))
	for _, ct := range contentTypes {
		if essence := mediaType(ct); essence != "" {
			allowed = append(allowed, essence)
		}
	}
	return Policy{
		MaxFileCount:        maxFiles,
		MaxDeclaredSize:     maxDeclaredSize,
		AllowedContentTypes: allowed,
	}
}

// CheckDeclaredSize rejects a request whose declared length is over the limit.
func (p Policy) CheckDeclaredSize(declared int64) error {
	if declared > p.MaxDeclaredSize {
		return fmt.Errorf("%w: declared %d bytes, limit %d", ErrFileSizeTooBig, declared, p.MaxDeclaredSize)
	}
	return nil
}

// Allows reports whether contentType is on the allow-list. An unparsable
// content type is never allowed.
func (p Policy) Allows(contentType string) bool {
	essence := mediaType(contentType)
	if essence == "" {
		return false
	}
	for _, allowed := range p.AllowedContentTypes {
		if allowed == essence {
			return true
		}
	}
	return false
}

// DeclaredLength reads the aggregate Content-Length header. An absent header
// counts as zero.
func DeclaredLength(h http.Header) (int64, error) {
	raw := strings.TrimSpace(h.Get("Content-Length"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrCorruptedHeaderLength, raw)
	}
	return int64(n), nil
}

func mediaType(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return ""
	}
	essence, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return strings.ToLower(essence)
}

// NamingStrategy maps a destination root and the client's file name to the
// path the upload is written to. Uniqueness is entirely its responsibility.
type NamingStrategy func(root, originalName string) string

// UniqueName prefixes the original name with a random UUID.
func UniqueName(root, originalName string) string {
	return filepath.Join(root, uuid.NewString()+"_"+originalName)
}

// FixedName always writes to root/name, replacing whatever was there.
func FixedName(name string) NamingStrategy {
	return func(root, _ string) string {
		return filepath.Join(root, name)
	}
}
