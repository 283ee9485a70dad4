package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// metadataDir is never copied out of a template checkout.
const metadataDir = ".git"

// CopyTemplate copies the contents of src into dst, skipping .git entries at
// every depth. Existing files are overwritten and missing directories are
// created. File modes and symlinks are preserved.
//
// It returns the top-level entry names that did not exist in dst before the
// copy, so a caller can remove exactly what it added.
func CopyTemplate(src, dst string) ([]string, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, err
	}

	var created []string
	for _, e := range entries {
		if e.Name() == metadataDir {
			continue
		}
		target := filepath.Join(dst, e.Name())
		if _, err := os.Lstat(target); errors.Is(err, fs.ErrNotExist) {
			created = append(created, e.Name())
		}
		if err := copyTree(filepath.Join(src, e.Name()), target); err != nil {
			return created, fmt.Errorf("failed to copy %s: %w", e.Name(), err)
		}
	}
	return created, nil
}

// copyTree copies src (file, symlink or directory) to dst.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Name() == metadataDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			return copySymlink(path, target)
		case info.IsDir():
			return copyDir(target, info.Mode().Perm())
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			// skip sockets, devices and pipes
			return nil
		}
	})
}

func copyDir(dst string, perm fs.FileMode) error {
	fi, err := os.Lstat(dst)
	switch {
	case err == nil && fi.IsDir():
		return nil
	case err == nil:
		if err := os.Remove(dst); err != nil {
			return err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}
	return os.Mkdir(dst, perm|0o700)
}

// copyFile overwrites dst with the content of src. A symlink or directory at
// dst is replaced rather than written through.
func copyFile(src, dst string, perm fs.FileMode) error {
	if fi, err := os.Lstat(dst); err == nil && !fi.Mode().IsRegular() {
		if err := os.RemoveAll(dst); err != nil {
			return err
		}
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	// OpenFile only applies perm to new files
	return os.Chmod(dst, perm)
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(dst); err == nil {
		if err := os.RemoveAll(dst); err != nil {
			return err
		}
	}
	return os.Symlink(target, dst)
}
