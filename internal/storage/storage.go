// Package storage provides atomic file operations for newrepo's JSON state.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// StateDir returns the directory newrepo keeps state in.
// NEWREPO_STATE_DIR overrides the default ~/.local/state/newrepo.
func StateDir() (string, error) {
	if dir := os.Getenv("NEWREPO_STATE_DIR"); dir != "" {
		return homedir.Expand(os.ExpandEnv(dir))
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "newrepo"), nil
}

// SaveJSON atomically writes data as indented JSON to path.
// The parent directory is created if needed; the data is written to a
// temporary file first and then renamed over path.
func SaveJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(append(jsonData, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// LoadJSON reads JSON from path into dest.
// Returns an os.ErrNotExist error if the file doesn't exist.
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}
