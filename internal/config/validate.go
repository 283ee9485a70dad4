package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidVisibilities = []string{"private", "public"}
	ValidTokens       = []string{TokenRepoName, TokenProjectName, TokenYear}
	ValidThemeNames   = []string{"default", "none", "dracula", "nord"}
	ValidThemeModes   = []string{"auto", "light", "dark"}
)

// ValidateRepoSpec checks that spec has the "owner/name" form.
func ValidateRepoSpec(spec string) error {
	owner, name, ok := strings.Cut(spec, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("invalid repository %q: expected owner/name", spec)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Template != "" {
		if err := ValidateRepoSpec(c.Template); err != nil {
			return fmt.Errorf("template: %w", err)
		}
	}
	if err := validateEnum(c.Visibility, "visibility", ValidVisibilities); err != nil {
		return err
	}
	if err := validateFiles(c.Files); err != nil {
		return err
	}
	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	return validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes)
}

// validateFiles checks that file rules stay inside the project root and only
// name known tokens.
func validateFiles(files []FileRule) error {
	for i, f := range files {
		if f.Path == "" {
			return fmt.Errorf("files[%d]: path must not be empty", i)
		}
		if filepath.IsAbs(f.Path) || strings.HasPrefix(filepath.Clean(f.Path), "..") {
			return fmt.Errorf("files[%d] %q: path must be relative to the project root", i, f.Path)
		}
		for _, tok := range f.Tokens {
			if err := validateEnum(tok, fmt.Sprintf("files[%d] token", i), ValidTokens); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
