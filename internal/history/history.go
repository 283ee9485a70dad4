// Package history records the projects newrepo created.
//
// Entries are kept newest first in a JSON file in the state directory and
// capped at MaxEntries.
package history

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/raphi011/newrepo/internal/storage"
)

// MaxEntries caps the number of remembered projects.
const MaxEntries = 100

// Entry describes one created project.
type Entry struct {
	Repo      string    `json:"repo" toml:"repo" yaml:"repo"`
	Owner     string    `json:"owner" toml:"owner" yaml:"owner"`
	Path      string    `json:"path" toml:"path" yaml:"path"`
	URL       string    `json:"url" toml:"url" yaml:"url"`
	Template  string    `json:"template" toml:"template" yaml:"template"`
	Public    bool      `json:"public" toml:"public" yaml:"public"`
	CreatedAt time.Time `json:"created_at" toml:"created_at" yaml:"created_at"`
}

// History holds the recorded entries, newest first.
type History struct {
	Entries []Entry `json:"entries" toml:"entries" yaml:"entries"`
}

// DefaultPath returns the history file in the state directory.
func DefaultPath() (string, error) {
	dir, err := storage.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.json"), nil
}

// Load reads the history at path. A missing or corrupted file yields an
// empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		// corrupted, start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Save writes the history to path atomically.
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

// Add puts e first. An older entry for the same path is replaced.
func (h *History) Add(e Entry) {
	h.RemoveByPath(e.Path)
	h.Entries = append([]Entry{e}, h.Entries...)
	if len(h.Entries) > MaxEntries {
		h.Entries = h.Entries[:MaxEntries]
	}
}

// RemoveByPath drops the entry for path and reports whether one existed.
func (h *History) RemoveByPath(path string) bool {
	for i, e := range h.Entries {
		if e.Path == path {
			h.Entries = append(h.Entries[:i], h.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// FindByPath returns the entry for path, or nil.
func (h *History) FindByPath(path string) *Entry {
	for i := range h.Entries {
		if h.Entries[i].Path == path {
			return &h.Entries[i]
		}
	}
	return nil
}

// RemoveStale drops entries whose directory no longer exists and returns
// how many were removed.
func (h *History) RemoveStale() int {
	kept := h.Entries[:0]
	removed := 0
	for _, e := range h.Entries {
		if _, err := os.Stat(e.Path); os.IsNotExist(err) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	h.Entries = kept
	return removed
}

// Update loads the history at path, applies fn and saves the result while
// holding a lock next to the file.
func Update(path string, fn func(*History) error) error {
	return storage.WithLock(path+".lock", func() error {
		h, err := Load(path)
		if err != nil {
			return err
		}
		if err := fn(h); err != nil {
			return err
		}
		return h.Save(path)
	})
}

// Record adds e to the history at path.
func Record(path string, e Entry) error {
	return Update(path, func(h *History) error {
		h.Add(e)
		return nil
	})
}
