package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
)

const emptyChecklist = `{"entries": []}`

// Checklist is the to-do list a user keeps next to their profile.
type Checklist struct {
	Entries []ChecklistEntry `json:"entries" binding:"required,dive"`
}

type ChecklistEntry struct {
	Title      string         `json:"title" binding:"max=500"`
	Checked    bool           `json:"checked"`
	SubEntries []ChecklistSub `json:"sub_entries" binding:"dive"`
}

type ChecklistSub struct {
	Title   string `json:"title" binding:"max=500"`
	Checked bool   `json:"checked"`
}

func (l *Checklist) normalize() {
	if l.Entries == nil {
		l.Entries = []ChecklistEntry{}
	}
	for i := range l.Entries {
		if l.Entries[i].SubEntries == nil {
			l.Entries[i].SubEntries = []ChecklistSub{}
		}
	}
}

// Checklist returns owner's checklist. The first read stores an empty one.
func (s *Service) Checklist(owner *User) (*Checklist, error) {
	path := s.layout.ChecklistPath(owner.Name)

	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		data = []byte(emptyChecklist)
		if err := s.writeChecklist(owner.Name, data); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var list Checklist
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrChecklistCorrupt, path, err)
	}
	list.normalize()
	return &list, nil
}

// SaveChecklist replaces owner's checklist.
func (s *Service) SaveChecklist(owner *User, list Checklist) error {
	list.normalize()
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode checklist: %w", err)
	}
	if err := s.writeChecklist(owner.Name, data); err != nil {
		return err
	}
	s.logger.Debug("checklist saved", slog.String("name", owner.Name), slog.Int("entries", len(list.Entries)))
	return nil
}

// writeChecklist replaces the file through a rename so readers never see a
// half-written list.
func (s *Service) writeChecklist(name string, data []byte) error {
	if err := s.fs.MkdirAll(s.layout.InformationDir(name), 0o755); err != nil {
		return fmt.Errorf("create directories for %s: %w", name, err)
	}
	path := s.layout.ChecklistPath(name)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
