package scaffold

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrInvalidDir indicates the target path has no usable final component.
var ErrInvalidDir = errors.New("invalid dir")

// RepoName returns the final path component of dir, which becomes the name
// of the remote repository. Relative paths (including ".") are made
// absolute first.
func RepoName(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}
	name := filepath.Base(abs)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q has no name", ErrInvalidDir, dir)
	}
	return name, nil
}

// Title converts a hyphenated repository name into a human readable title:
// hyphens become spaces, empty words are dropped and each word starts with
// an upper-case letter. "repo-template" becomes "Repo Template".
func Title(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "-", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Year returns the four-digit year of now in its location.
func Year(now time.Time) string {
	return fmt.Sprintf("%04d", now.Year())
}
