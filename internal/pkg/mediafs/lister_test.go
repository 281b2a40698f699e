package mediafs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAged(t *testing.T, fs afero.Fs, path string, age time.Duration) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(filepath.Base(path)), 0o644))
	mtime := time.Now().Add(-age)
	require.NoError(t, fs.Chtimes(path, mtime, mtime))
}

func TestList_OrdersByModTime(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()

	writeAged(t, fs, filepath.Join(dir, "oldest.jpg"), 3*time.Hour)
	writeAged(t, fs, filepath.Join(dir, "newest.jpg"), 1*time.Minute)
	writeAged(t, fs, filepath.Join(dir, "middle.png"), 1*time.Hour)

	desc, err := List(fs, dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest.jpg", "middle.png", "oldest.jpg"}, Names(desc))

	asc, err := List(fs, dir, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"oldest.jpg", "middle.png", "newest.jpg"}, Names(asc))

	for i := 1; i < len(desc); i++ {
		assert.True(t, desc[i-1].ModTime.After(desc[i].ModTime))
	}
}

func TestList_SkipsSubdirectories(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()

	writeAged(t, fs, filepath.Join(dir, "a.jpg"), time.Hour)
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "stories"), 0o755))
	writeAged(t, fs, filepath.Join(dir, "stories", "nested.jpg"), time.Minute)

	entries, err := List(fs, dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, Names(entries))
}

func TestList_MissingDirectory(t *testing.T) {
	_, err := List(afero.NewOsFs(), filepath.Join(t.TempDir(), "nope"), false)
	assert.ErrorIs(t, err, ErrNotReadable)
}

func TestList_EmptyDirectory(t *testing.T) {
	entries, err := List(afero.NewOsFs(), t.TempDir(), false)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestList_InMemory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/alice", 0o755))
	writeAged(t, fs, "/data/alice/one.png", 2*time.Hour)
	writeAged(t, fs, "/data/alice/two.png", time.Hour)

	entries, err := List(fs, "/data/alice", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"two.png", "one.png"}, Names(entries))
	assert.True(t, Contains(entries, "one.png"))
	assert.False(t, Contains(entries, "three.png"))
}

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []string
	}{
		{name: "no limit", offset: 0, limit: -1, want: items},
		{name: "offset only", offset: 2, limit: -1, want: []string{"c", "d", "e"}},
		{name: "window", offset: 1, limit: 2, want: []string{"b", "c"}},
		{name: "limit past end", offset: 3, limit: 10, want: []string{"d", "e"}},
		{name: "offset at end", offset: 5, limit: 2, want: []string{}},
		{name: "offset past end", offset: 9, limit: -1, want: []string{}},
		{name: "zero limit", offset: 0, limit: 0, want: []string{}},
		{name: "negative offset", offset: -3, limit: 1, want: []string{"a"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Paginate(items, tc.offset, tc.limit))
		})
	}
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	items := []int{1, 2, 3}
	page := Paginate(items, 0, 2)
	page[0] = 42
	assert.Equal(t, 1, items[0])
}

func TestList_UnknownModTimeSortsLast(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/bob", 0o755))
	writeAged(t, fs, "/data/bob/old.png", 3*time.Hour)
	writeAged(t, fs, "/data/bob/new.png", time.Hour)
	writeAged(t, fs, "/data/bob/mid.png", 2*time.Hour)
	require.NoError(t, afero.WriteFile(fs, "/data/bob/undated.png", []byte("x"), 0o644))
	require.NoError(t, fs.Chtimes("/data/bob/undated.png", time.Time{}, time.Time{}))

	desc, err := List(fs, "/data/bob", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"new.png", "mid.png", "old.png", "undated.png"}, Names(desc))

	asc, err := List(fs, "/data/bob", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.png", "mid.png", "new.png", "undated.png"}, Names(asc))
}
