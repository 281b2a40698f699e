package mediafs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// RetentionWindow is how long a story file survives.
const RetentionWindow = 24 * time.Hour

// SweepFailure is a file the sweeper wanted to delete but could not.
type SweepFailure struct {
	Path string
	Err  error
}

// SweepResult summarizes one Sweep call.
type SweepResult struct {
	Deleted  []string
	Kept     int
	Failures []SweepFailure
}

// Sweeper deletes files older than its window from a single directory.
type Sweeper struct {
	fs     afero.Fs
	window time.Duration
	now    func() time.Time
	logger *slog.Logger

	// FailOpen makes files whose metadata cannot be read eligible for
	// deletion. It is on by default.
	FailOpen bool
}

// NewSweeper creates a Sweeper using RetentionWindow and the wall clock.
func NewSweeper(fs afero.Fs, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		fs:       fs,
		window:   RetentionWindow,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "sweeper")),
		FailOpen: true,
	}
}

// WithClock returns a copy of s that reads the current time from now.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	cp := *s
	cp.now = now
	return &cp
}

// Sweep deletes every regular file in dir modified strictly more than the
// retention window before the call started. Directories, special files and
// entries of unknown type are left alone; FailOpen only covers regular files
// whose modification time cannot be read.
//
// Every eligible file is attempted. The returned error joins the per-file
// failures, each naming its path; the same failures are listed in the result.
func (s *Sweeper) Sweep(dir string) (*SweepResult, error) {
	now := s.now()
	result := &SweepResult{}

	names, err := readNames(s.fs, dir)
	if err != nil {
		return result, err
	}

	var errs []error
	for _, name := range names {
		path := filepath.Join(dir, name)

		if !s.isRegularFile(path) {
			continue
		}

		info, err := s.fs.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			continue
		case err != nil:
			if !s.FailOpen {
				result.Kept++
				continue
			}
			s.logger.Warn("cannot read story file metadata, treating as expired",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		case now.Sub(info.ModTime()) <= s.window:
			result.Kept++
			continue
		}

		if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			failure := SweepFailure{Path: path, Err: err}
			result.Failures = append(result.Failures, failure)
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
			continue
		}
		result.Deleted = append(result.Deleted, path)
	}

	if len(result.Deleted) > 0 || len(result.Failures) > 0 {
		s.logger.Info("story sweep finished",
			slog.String("dir", dir),
			slog.Int("deleted", len(result.Deleted)),
			slog.Int("kept", result.Kept),
			slog.Int("failures", len(result.Failures)),
		)
	}

	return result, errors.Join(errs...)
}

// isRegularFile reports whether path is known to be a regular file, or a
// symlink resolving to one. Entries whose type cannot be determined are not.
func (s *Sweeper) isRegularFile(path string) bool {
	var (
		info os.FileInfo
		err  error
	)
	if l, ok := s.fs.(afero.Lstater); ok {
		info, _, err = l.LstatIfPossible(path)
	} else {
		info, err = s.fs.Stat(path)
	}
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := s.fs.Stat(path)
		return err == nil && target.Mode().IsRegular()
	}
	return info.Mode().IsRegular()
}
