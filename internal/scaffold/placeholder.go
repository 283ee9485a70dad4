package scaffold

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/newrepo/internal/config"
)

// maxSuggestions limits the "did you mean" list for a missing file.
const maxSuggestions = 3

// Replacement substitutes every occurrence of Token with Value.
type Replacement struct {
	Token string // literal, e.g. "{{REPO_NAME}}"
	Value string
}

// Values holds the values placeholder tokens expand to.
type Values struct {
	RepoName string
	Title    string
	Year     string
}

// Token wraps a token name in double braces: "YEAR" -> "{{YEAR}}".
func Token(name string) string {
	return "{{" + name + "}}"
}

// Replacements builds the ordered replacement list for a file rule.
// Unknown token names are skipped.
func Replacements(tokens []string, v Values) []Replacement {
	reps := make([]Replacement, 0, len(tokens))
	for _, name := range tokens {
		var value string
		switch name {
		case config.TokenRepoName:
			value = v.RepoName
		case config.TokenProjectName:
			value = v.Title
		case config.TokenYear:
			value = v.Year
		default:
			continue
		}
		reps = append(reps, Replacement{Token: Token(name), Value: value})
	}
	return reps
}

// ReplaceAll applies reps in order to content. Each replacement sees the
// result of the previous ones.
func ReplaceAll(content string, reps []Replacement) string {
	for _, r := range reps {
		content = strings.ReplaceAll(content, r.Token, r.Value)
	}
	return content
}

// ReplaceInFile rewrites path in place with reps applied.
// Returns false without error if path does not exist. A file without any
// token is left untouched.
func ReplaceInFile(path string, reps []Replacement) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	content := string(data)
	updated := ReplaceAll(content, reps)
	if updated == content {
		return true, nil
	}
	return true, os.WriteFile(path, []byte(updated), info.Mode().Perm())
}

// Suggest returns entries of dir whose names resemble the missing file name,
// best match first. "README.md" suggests "Readme.md" or "README.rst".
func Suggest(dir, missing string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	base := filepath.Base(missing)
	pattern := strings.TrimSuffix(base, filepath.Ext(base))
	if pattern == "" {
		pattern = base
	}

	var out []string
	for _, m := range fuzzy.Find(pattern, names) {
		if m.Str == base {
			continue
		}
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
