package mediafs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statFailFs fails Stat for one entry while Lstat still reports its type,
// as a flaky disk would.
type statFailFs struct {
	afero.Fs
	broken string
}

func (f statFailFs) Stat(name string) (os.FileInfo, error) {
	if filepath.Base(name) == f.broken {
		return nil, &os.PathError{Op: "stat", Path: name, Err: errors.New("input/output error")}
	}
	return f.Fs.Stat(name)
}

func (f statFailFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	return f.Fs.(afero.Lstater).LstatIfPossible(name)
}

// blindFs cannot tell anything about one entry, not even its type.
type blindFs struct {
	afero.Fs
	hidden string
}

func (f blindFs) Stat(name string) (os.FileInfo, error) {
	if filepath.Base(name) == f.hidden {
		return nil, &os.PathError{Op: "stat", Path: name, Err: errors.New("input/output error")}
	}
	return f.Fs.Stat(name)
}

func (f blindFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	if filepath.Base(name) == f.hidden {
		return nil, true, &os.PathError{Op: "lstat", Path: name, Err: errors.New("input/output error")}
	}
	return f.Fs.(afero.Lstater).LstatIfPossible(name)
}

// removeFailFs refuses to delete one file name.
type removeFailFs struct {
	afero.Fs
	stuck string
}

func (f removeFailFs) Remove(name string) error {
	if filepath.Base(name) == f.stuck {
		return &os.PathError{Op: "remove", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Remove(name)
}

func countFiles(t *testing.T, fs afero.Fs, dir string) int {
	t.Helper()
	entries, err := List(fs, dir, false)
	require.NoError(t, err)
	return len(entries)
}

func TestSweep_DeletesOnlyExpired(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()
	old := filepath.Join(dir, "old.jpg")
	fresh := filepath.Join(dir, "fresh.jpg")
	writeAged(t, fs, old, 25*time.Hour)
	writeAged(t, fs, fresh, time.Hour)

	res, err := NewSweeper(fs, nil).Sweep(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{old}, res.Deleted)
	assert.Equal(t, 1, res.Kept)
	assert.Empty(t, res.Failures)

	entries, err := List(fs, dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh.jpg"}, Names(entries))
}

func TestSweep_Idempotent(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()
	writeAged(t, fs, filepath.Join(dir, "old.jpg"), 30*time.Hour)
	writeAged(t, fs, filepath.Join(dir, "a.jpg"), 2*time.Hour)
	writeAged(t, fs, filepath.Join(dir, "b.jpg"), 3*time.Hour)

	sweeper := NewSweeper(fs, nil)
	_, err := sweeper.Sweep(dir)
	require.NoError(t, err)

	before := countFiles(t, fs, dir)
	res, err := sweeper.Sweep(dir)
	require.NoError(t, err)

	assert.Empty(t, res.Deleted)
	assert.Equal(t, before, countFiles(t, fs, dir))
	assert.Equal(t, 2, before)
}

func TestSweep_WindowIsStrict(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/stories", 0o755))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	onEdge := "/stories/edge.jpg"
	future := "/stories/future.jpg"
	require.NoError(t, afero.WriteFile(fs, onEdge, []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, future, []byte("x"), 0o644))
	require.NoError(t, fs.Chtimes(onEdge, now.Add(-RetentionWindow), now.Add(-RetentionWindow)))
	require.NoError(t, fs.Chtimes(future, now.Add(time.Hour), now.Add(time.Hour)))

	sweeper := NewSweeper(fs, nil).WithClock(func() time.Time { return now })
	res, err := sweeper.Sweep("/stories")
	require.NoError(t, err)
	assert.Empty(t, res.Deleted)

	later := sweeper.WithClock(func() time.Time { return now.Add(time.Second) })
	res, err = later.Sweep("/stories")
	require.NoError(t, err)
	assert.Equal(t, []string{onEdge}, res.Deleted)
}

func TestSweep_LeavesDirectories(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, fs.MkdirAll(sub, 0o755))
	longAgo := time.Now().Add(-72 * time.Hour)
	require.NoError(t, fs.Chtimes(sub, longAgo, longAgo))

	res, err := NewSweeper(fs, nil).Sweep(dir)
	require.NoError(t, err)
	assert.Empty(t, res.Deleted)

	exists, err := afero.DirExists(fs, sub)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSweep_UnreadableMetadataIsDeleted(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/stories", 0o755))
	writeAged(t, mem, "/stories/broken.jpg", time.Minute)
	writeAged(t, mem, "/stories/fine.jpg", time.Minute)
	fs := statFailFs{Fs: mem, broken: "broken.jpg"}

	res, err := NewSweeper(fs, nil).Sweep("/stories")
	require.NoError(t, err)
	assert.Equal(t, []string{"/stories/broken.jpg"}, res.Deleted)

	exists, err := afero.Exists(mem, "/stories/fine.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSweep_FailClosedKeepsUnreadable(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/stories", 0o755))
	writeAged(t, mem, "/stories/broken.jpg", time.Minute)

	sweeper := NewSweeper(statFailFs{Fs: mem, broken: "broken.jpg"}, nil)
	sweeper.FailOpen = false

	res, err := sweeper.Sweep("/stories")
	require.NoError(t, err)
	assert.Empty(t, res.Deleted)
	assert.Equal(t, 1, res.Kept)
}

func TestSweep_UnreadableDirectoryIsKept(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/stories/sub", 0o755))

	res, err := NewSweeper(statFailFs{Fs: mem, broken: "sub"}, nil).Sweep("/stories")
	require.NoError(t, err)
	assert.Empty(t, res.Deleted)

	exists, err := afero.DirExists(mem, "/stories/sub")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSweep_UnknownTypeIsKept(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/stories", 0o755))
	writeAged(t, mem, "/stories/mystery.jpg", 48*time.Hour)

	res, err := NewSweeper(blindFs{Fs: mem, hidden: "mystery.jpg"}, nil).Sweep("/stories")
	require.NoError(t, err)
	assert.Empty(t, res.Deleted)

	exists, err := afero.Exists(mem, "/stories/mystery.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSweep_SymlinkLoopIsKept(t *testing.T) {
	dir := t.TempDir()
	loop := filepath.Join(dir, "loop")
	if err := os.Symlink(loop, loop); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	res, err := NewSweeper(afero.NewOsFs(), nil).Sweep(dir)
	require.NoError(t, err)
	assert.Empty(t, res.Deleted)

	_, err = os.Lstat(loop)
	assert.NoError(t, err)
}

func TestSweep_ContinuesPastDeleteFailure(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/stories", 0o755))
	writeAged(t, mem, "/stories/stuck.jpg", 48*time.Hour)
	writeAged(t, mem, "/stories/gone.jpg", 48*time.Hour)

	res, err := NewSweeper(removeFailFs{Fs: mem, stuck: "stuck.jpg"}, nil).Sweep("/stories")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/stories/stuck.jpg")
	assert.ErrorIs(t, err, os.ErrPermission)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, "/stories/stuck.jpg", res.Failures[0].Path)
	assert.Equal(t, []string{"/stories/gone.jpg"}, res.Deleted)
}

func TestSweep_MissingDirectory(t *testing.T) {
	_, err := NewSweeper(afero.NewOsFs(), nil).Sweep(filepath.Join(t.TempDir(), "stories"))
	assert.ErrorIs(t, err, ErrNotReadable)
}
