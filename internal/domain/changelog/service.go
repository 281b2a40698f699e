package changelog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"socialhub/internal/pkg/mediafs"

	"github.com/spf13/afero"
)

var ErrNoReleases = errors.New("no changelog releases found")

// Release is one changelog file.
type Release struct {
	Version float64
	File    string
}

// Service reads release notes from a directory holding one file per
// version.
type Service struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

func NewService(fs afero.Fs, dir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fs:     fs,
		dir:    filepath.Clean(dir),
		logger: logger.With(slog.String("component", "changelog")),
	}
}

// Latest returns the release with the highest version. Files whose names do
// not parse as versions are ignored.
func (s *Service) Latest() (Release, error) {
	entries, err := mediafs.List(s.fs, s.dir, false)
	if err != nil {
		return Release{}, err
	}

	var (
		latest Release
		found  bool
	)
	for _, e := range entries {
		v, err := ParseVersion(e.Name)
		if err != nil {
			s.logger.Debug("skipping changelog file", slog.String("file", e.Name))
			continue
		}
		if !found || v >= latest.Version {
			latest = Release{Version: v, File: e.Name}
			found = true
		}
	}
	if !found {
		return Release{}, fmt.Errorf("%w in %s", ErrNoReleases, s.dir)
	}
	return latest, nil
}

// Notes returns the lines of the latest release. An unreadable release file
// yields no lines.
func (s *Service) Notes() ([]string, error) {
	latest, err := s.Latest()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, latest.File)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		s.logger.Warn("cannot read changelog", slog.String("path", path), slog.String("error", err.Error()))
		return []string{}, nil
	}

	lines := []string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, nil
}
