package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func entry(path string) Entry {
	return Entry{
		Repo:      filepath.Base(path),
		Owner:     "octo",
		Path:      path,
		URL:       "https://github.com/octo/" + filepath.Base(path) + ".git",
		Template:  "octo/tpl",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecord(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "state", "history.json")

	if err := Record(historyFile, entry("/src/app")); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	h, err := Load(historyFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(h.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(h.Entries))
	}
	got := h.Entries[0]
	if got != entry("/src/app") {
		t.Errorf("entry = %+v, want %+v", got, entry("/src/app"))
	}
}

func TestRecord_NewestFirstAndReplace(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")

	for _, p := range []string{"/src/a", "/src/b", "/src/a"} {
		if err := Record(historyFile, entry(p)); err != nil {
			t.Fatalf("Record(%s) failed: %v", p, err)
		}
	}

	h, err := Load(historyFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(h.Entries))
	}
	if h.Entries[0].Path != "/src/a" || h.Entries[1].Path != "/src/b" {
		t.Errorf("order = %s, %s; want /src/a, /src/b", h.Entries[0].Path, h.Entries[1].Path)
	}
}

func TestAdd_MaxCap(t *testing.T) {
	t.Parallel()

	h := &History{}
	for i := range MaxEntries + 10 {
		h.Add(entry(fmt.Sprintf("/src/app-%d", i)))
	}

	if len(h.Entries) != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, len(h.Entries))
	}
	if want := fmt.Sprintf("/src/app-%d", MaxEntries+9); h.Entries[0].Path != want {
		t.Errorf("newest = %s, want %s", h.Entries[0].Path, want)
	}
}

func TestRemoveStale(t *testing.T) {
	t.Parallel()

	existing := t.TempDir()
	h := &History{Entries: []Entry{
		entry(existing),
		entry(filepath.Join(existing, "gone")),
	}}

	if removed := h.RemoveStale(); removed != 1 {
		t.Errorf("RemoveStale() = %d, want 1", removed)
	}
	if len(h.Entries) != 1 || h.Entries[0].Path != existing {
		t.Errorf("entries = %+v", h.Entries)
	}
}

func TestFindAndRemoveByPath(t *testing.T) {
	t.Parallel()

	h := &History{Entries: []Entry{entry("/src/a"), entry("/src/b")}}

	if e := h.FindByPath("/src/b"); e == nil || e.Repo != "b" {
		t.Errorf("FindByPath(/src/b) = %+v", e)
	}
	if e := h.FindByPath("/src/c"); e != nil {
		t.Errorf("FindByPath(/src/c) = %+v, want nil", e)
	}
	if !h.RemoveByPath("/src/a") {
		t.Error("RemoveByPath(/src/a) = false, want true")
	}
	if h.RemoveByPath("/src/a") {
		t.Error("second RemoveByPath(/src/a) = true, want false")
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Parallel()

	h, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(h.Entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(h.Entries))
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(historyFile, []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	h, err := Load(historyFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(h.Entries) != 0 {
		t.Errorf("corrupted file should yield empty history, got %d entries", len(h.Entries))
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("NEWREPO_STATE_DIR", "/srv/state")

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/srv/state/history.json" {
		t.Errorf("DefaultPath() = %q", path)
	}
}

func TestRecord_Concurrent(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := Record(historyFile, entry(fmt.Sprintf("/src/app-%d", i))); err != nil {
				t.Errorf("Record failed: %v", err)
			}
		}()
	}
	wg.Wait()

	h, err := Load(historyFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Entries) != 10 {
		t.Errorf("expected 10 entries, got %d", len(h.Entries))
	}
}

func TestUpdate_ErrorSkipsSave(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")
	boom := errors.New("boom")

	err := Update(historyFile, func(h *History) error {
		h.Add(entry("/src/app"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want boom", err)
	}
	if _, err := os.Stat(historyFile); !os.IsNotExist(err) {
		t.Error("history must not be written when fn fails")
	}
}
