package changelog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidVersion = errors.New("invalid version")

// ParseVersion reads a release file name such as "Version 1.2" or "1.2.3".
// Everything after the first dot is joined into the fraction, so "1.2.3"
// is 1.23.
func ParseVersion(name string) (float64, error) {
	s := strings.ToLower(name)
	if rest, ok := strings.CutPrefix(s, "version "); ok && !strings.Contains(rest, " ") {
		s = rest
	}
	if s == "" || strings.Trim(s, "0123456789.") != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, name)
	}

	major, minor, _ := strings.Cut(s, ".")
	v, err := strconv.ParseFloat(major+"."+strings.ReplaceAll(minor, ".", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, name)
	}
	return v, nil
}
