package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrAlreadyRepo is returned when the target lies inside an existing
// repository.
var ErrAlreadyRepo = errors.New("already a git directory")

// FindRepoRoot walks from dir up to the filesystem root and returns the first
// directory that contains a .git directory. Levels that do not exist yet are
// walked through as well.
func FindRepoRoot(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		if fi, err := os.Stat(filepath.Join(abs, ".git")); err == nil && fi.IsDir() {
			return abs, true
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}

// InsideRepo reports whether dir or any of its ancestors holds a .git
// directory.
func InsideRepo(dir string) bool {
	_, ok := FindRepoRoot(dir)
	return ok
}

// CheckTarget returns ErrAlreadyRepo when either the working directory or
// the target directory lies inside a repository.
func CheckTarget(workDir, dir string) error {
	for _, start := range []string{workDir, dir} {
		if root, ok := FindRepoRoot(start); ok {
			return fmt.Errorf("%w: %s", ErrAlreadyRepo, root)
		}
	}
	return nil
}

// ResolveDir makes dir absolute relative to workDir.
func ResolveDir(workDir, dir string) string {
	if dir == "" {
		dir = "."
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(workDir, dir)
	}
	return filepath.Clean(dir)
}
