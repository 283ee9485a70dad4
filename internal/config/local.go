package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the manifest a template repository may ship in its
// root to declare its own placeholder files and hooks.
const LocalConfigFileName = ".newrepo.toml"

// LocalConfig holds template-provided overrides from .newrepo.toml.
// Zero values indicate "not set" (inherit from global).
type LocalConfig struct {
	Files []FileRule  `toml:"files"` // merged by path into global
	Hooks HooksConfig `toml:"-"`     // merged by name into global
}

// rawLocalConfig is used for initial TOML parsing before processing hooks
type rawLocalConfig struct {
	Files []FileRule     `toml:"files"`
	Hooks map[string]any `toml:"hooks"`
}

// LoadLocal reads the .newrepo.toml manifest from the given template checkout.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(dir string) (*LocalConfig, error) {
	configFile := filepath.Join(dir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read template config %s: %w", configFile, err)
	}

	var raw rawLocalConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse template config %s: %w", configFile, err)
	}

	local := &LocalConfig{
		Files: raw.Files,
		Hooks: parseHooksConfig(raw.Hooks),
	}

	if err := validateFiles(local.Files); err != nil {
		return nil, fmt.Errorf("%w in %s", err, configFile)
	}

	return local, nil
}

// defaultLocalConfig is the template for `newrepo config init --local`
const defaultLocalConfig = `# newrepo template manifest
# Place this file at the root of a template repository.
# Settings here extend the user's ~/.config/newrepo/config.toml for
# projects created from this template.

# Additional files whose placeholders are replaced. A path that is also
# configured globally replaces the global token list.
# [[files]]
# path = "package.json"
# tokens = ["REPO_NAME"]

# Hooks - add template-specific hooks or override global hooks
# Set enabled = false to disable a global hook for this template
#
# [hooks.setup]
# command = "npm install"
# description = "Install dependencies"
# on = ["create"]
#
# [hooks.global-hook-name]
# enabled = false
`

// DefaultLocalConfig returns the default template manifest content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}
