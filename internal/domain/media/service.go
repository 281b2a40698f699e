package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"socialhub/internal/domain/user"
	"socialhub/internal/pkg/mediafs"

	"github.com/spf13/afero"
)

// File is an open stored file ready to be served.
type File struct {
	afero.File
	BaseName string
	ModTime  time.Time
}

// SourceOpener opens the upload stream. Upload methods call it only after
// the caller has been authorized.
type SourceOpener func() (mediafs.Source, error)

// Service authorizes callers and drives mediafs with their resolved
// directories.
type Service struct {
	fs       afero.Fs
	layout   user.Layout
	guard    *user.Guard
	ingester *mediafs.Ingester
	sweeper  *mediafs.Sweeper
	policies Policies
	logger   *slog.Logger
}

func NewService(fs afero.Fs, layout user.Layout, guard *user.Guard, policies Policies, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fs:       fs,
		layout:   layout,
		guard:    guard,
		ingester: mediafs.NewIngester(fs, logger),
		sweeper:  mediafs.NewSweeper(fs, logger),
		policies: policies,
		logger:   logger.With(slog.String("component", "media")),
	}
}

// WithSweeper replaces the story sweeper.
func (s *Service) WithSweeper(sw *mediafs.Sweeper) *Service {
	cp := *s
	cp.sweeper = sw
	return &cp
}

// ListMedia returns name's permanent files, newest first, paginated.
// A negative limit means no limit.
func (s *Service) ListMedia(ctx context.Context, callerID int64, name string, offset, limit int) ([]string, error) {
	owner, err := s.guard.Owner(ctx, callerID, name, user.Read)
	if err != nil {
		return nil, err
	}
	entries, err := mediafs.List(s.fs, s.layout.MediaDir(owner.Name), false)
	if err != nil {
		return nil, err
	}
	return mediafs.Paginate(mediafs.Names(entries), offset, limit), nil
}

// ListStories returns name's stories, oldest first. The stories directory
// is created when missing.
func (s *Service) ListStories(ctx context.Context, callerID int64, name string) ([]string, error) {
	owner, err := s.guard.Owner(ctx, callerID, name, user.Read)
	if err != nil {
		return nil, err
	}
	dir := s.layout.StoriesDir(owner.Name)
	if err := s.ensureDir(dir); err != nil {
		return nil, err
	}
	entries, err := mediafs.List(s.fs, dir, true)
	if err != nil {
		return nil, err
	}
	return mediafs.Names(entries), nil
}

func (s *Service) OpenMedia(ctx context.Context, callerID int64, name, file string) (*File, error) {
	owner, err := s.guard.Owner(ctx, callerID, name, user.Read)
	if err != nil {
		return nil, err
	}
	return s.openListed(s.layout.MediaDir(owner.Name), file)
}

func (s *Service) OpenStory(ctx context.Context, callerID int64, name, file string) (*File, error) {
	owner, err := s.guard.Owner(ctx, callerID, name, user.Read)
	if err != nil {
		return nil, err
	}
	return s.openListed(s.layout.StoriesDir(owner.Name), file)
}

// OpenAvatar serves the reserved avatar file to any signed-in caller, since
// avatars appear in friend lists seen by non-friends.
func (s *Service) OpenAvatar(ctx context.Context, name string) (*File, error) {
	if _, err := s.guard.Users().GetByName(ctx, name); err != nil {
		return nil, err
	}
	return s.open(s.layout.AvatarPath(name))
}

func (s *Service) UploadMedia(ctx context.Context, callerID int64, name string, open SourceOpener) (*mediafs.IngestResult, error) {
	owner, err := s.guard.Owner(ctx, callerID, name, user.Write)
	if err != nil {
		return nil, err
	}
	dir := s.layout.MediaDir(owner.Name)
	if err := s.ensureDir(dir); err != nil {
		return nil, err
	}
	return s.ingest(ctx, KindMedia, open, dir, mediafs.UniqueName)
}

// UploadStory stores the request's stories and then sweeps the stories
// directory once. A failed sweep is logged and counted but does not fail
// the upload.
func (s *Service) UploadStory(ctx context.Context, callerID int64, name string, open SourceOpener) (*mediafs.IngestResult, error) {
	owner, err := s.guard.Owner(ctx, callerID, name, user.Write)
	if err != nil {
		return nil, err
	}
	dir := s.layout.StoriesDir(owner.Name)
	if err := s.ensureDir(dir); err != nil {
		return nil, err
	}

	res, err := s.ingest(ctx, KindStory, open, dir, mediafs.UniqueName)
	if err != nil {
		return res, err
	}

	s.sweepStories(dir)
	return res, nil
}

// UploadAvatar replaces name's avatar with the first accepted field.
func (s *Service) UploadAvatar(ctx context.Context, callerID int64, name string, open SourceOpener) (*mediafs.IngestResult, error) {
	owner, err := s.guard.Owner(ctx, callerID, name, user.Write)
	if err != nil {
		return nil, err
	}
	dir := s.layout.InformationDir(owner.Name)
	if err := s.ensureDir(dir); err != nil {
		return nil, err
	}
	return s.ingest(ctx, KindAvatar, open, dir, mediafs.FixedName(user.AvatarFile))
}

func (s *Service) ingest(ctx context.Context, kind Kind, open SourceOpener, root string, naming mediafs.NamingStrategy) (*mediafs.IngestResult, error) {
	src, err := open()
	if err != nil {
		ingestRejected.WithLabelValues(string(kind), rejectReason(err)).Inc()
		return &mediafs.IngestResult{}, err
	}

	start := time.Now()
	res, err := s.ingester.Ingest(ctx, src, root, s.policies.For(kind), naming)
	ingestDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		ingestRejected.WithLabelValues(string(kind), rejectReason(err)).Inc()
		s.logger.Warn("upload failed",
			slog.String("kind", string(kind)),
			slog.String("root", root),
			slog.Int("files_left", len(res.Written)),
			slog.String("error", err.Error()),
		)
		return res, err
	}

	filesIngested.WithLabelValues(string(kind)).Add(float64(len(res.Written)))
	s.logger.Debug("upload stored",
		slog.String("kind", string(kind)),
		slog.String("root", root),
		slog.Int("files", len(res.Written)),
		slog.String("stop", res.Stop.String()),
	)
	return res, nil
}

func (s *Service) sweepStories(dir string) {
	res, err := s.sweeper.Sweep(dir)
	storiesSwept.Add(float64(len(res.Deleted)))
	if err != nil {
		storySweepFailures.Inc()
		s.logger.Error("story sweep failed", slog.String("dir", dir), slog.String("error", err.Error()))
	}
}

// openListed opens file only if it is part of dir's listing, so names that
// escape dir or point at subdirectories are never served.
func (s *Service) openListed(dir, file string) (*File, error) {
	entries, err := mediafs.List(s.fs, dir, false)
	if err != nil {
		return nil, err
	}
	if !mediafs.Contains(entries, file) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, file)
	}
	return s.open(filepath.Join(dir, file))
}

func (s *Service) open(path string) (*File, error) {
	f, err := s.fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Base(path))
	}
	return &File{File: f, BaseName: info.Name(), ModTime: info.ModTime()}, nil
}

func (s *Service) ensureDir(dir string) error {
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
