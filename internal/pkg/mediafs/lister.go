// Package mediafs stores user media on a filesystem: it lists directories by
// recency, ingests multipart uploads under an UploadPolicy and purges story
// files that outlived the retention window.
//
// The filesystem is the only source of truth. Nothing in this package keeps
// state between calls, so every type here is safe for concurrent use.
package mediafs

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
)

// Entry is a regular file found in a media directory.
type Entry struct {
	Name    string
	ModTime time.Time
	Size    int64
}

// List returns the regular files directly inside dir, most recently modified
// first. With reversed set the oldest file comes first. Files reporting no
// modification time come last either way.
//
// Entries that disappear or cannot be stat'ed while listing are skipped.
// If dir itself cannot be opened the error wraps ErrNotReadable.
func List(fs afero.Fs, dir string, reversed bool) ([]Entry, error) {
	names, err := readNames(fs, dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		info, err := fs.Stat(filepath.Join(dir, name))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		entries = append(entries, Entry{
			Name:    name,
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].ModTime, entries[j].ModTime
		// entries without a timestamp trail in both directions, in directory order
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		if reversed {
			return a.Before(b)
		}
		return a.After(b)
	})

	return entries, nil
}

// Names projects entries to their file names, keeping order.
func Names(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

// Contains reports whether name is one of the listed entries.
func Contains(entries []Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Paginate skips offset items and returns at most limit of the rest.
// A negative limit means no limit.
func Paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	rest := items[offset:]
	if limit >= 0 && limit < len(rest) {
		rest = rest[:limit]
	}
	out := make([]T, len(rest))
	copy(out, rest)
	return out
}

func readNames(fs afero.Fs, dir string) ([]string, error) {
	f, err := fs.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotReadable, dir, err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotReadable, dir, err)
	}
	return names, nil
}
