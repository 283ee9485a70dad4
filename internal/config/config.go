package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// Hook defines a post-create hook
type Hook struct {
	Command     string   `toml:"command"`
	Description string   `toml:"description"`
	On          []string `toml:"on"`      // commands this hook runs on (empty = only via --hook)
	Enabled     *bool    `toml:"enabled"` // nil = enabled; false disables an inherited hook
}

// IsEnabled reports whether the hook is enabled (default true).
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// HooksConfig holds hook-related configuration
type HooksConfig struct {
	Hooks map[string]Hook `toml:"-"` // parsed from [hooks.NAME] sections
}

// FileRule names a file in the project root and the placeholder tokens
// substituted in it, in order.
type FileRule struct {
	Path   string   `toml:"path"`
	Tokens []string `toml:"tokens"`
}

// ThemeConfig holds UI color settings
type ThemeConfig struct {
	Name string `toml:"name"` // preset name: default, none, dracula, nord
	Mode string `toml:"mode"` // auto, light or dark
}

// Config holds the newrepo configuration
type Config struct {
	Template         string      `toml:"template"`           // owner/name of the template repository
	Owner            string      `toml:"owner"`              // empty = resolved via the forge CLI
	Visibility       string      `toml:"visibility"`         // "private" or "public"
	Branch           string      `toml:"branch"`             // initial branch pushed to the remote
	CommitMessage    string      `toml:"commit_message"`     // message of the initial commit
	RemoteURL        string      `toml:"remote_url"`         // format with {owner} and {repo}
	CleanupOnFailure bool        `toml:"cleanup_on_failure"` // undo completed steps on failure
	Files            []FileRule  `toml:"files"`
	Hooks            HooksConfig `toml:"-"` // custom parsing needed
	Theme            ThemeConfig `toml:"theme"`
}

// Defaults
const (
	DefaultTemplate      = "darrenkuro/repo-template"
	DefaultVisibility    = "private"
	DefaultBranch        = "main"
	DefaultCommitMessage = "Initial commit"
	DefaultRemoteURL     = "https://github.com/{owner}/{repo}.git"
)

// Placeholder token names
const (
	TokenRepoName    = "REPO_NAME"
	TokenProjectName = "PROJECT_NAME"
	TokenYear        = "YEAR"
)

// DefaultFiles returns the files rewritten when the config names none.
func DefaultFiles() []FileRule {
	return []FileRule{
		{Path: "README.md", Tokens: []string{TokenRepoName, TokenProjectName}},
		{Path: "LICENSE", Tokens: []string{TokenYear}},
	}
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Template:      DefaultTemplate,
		Visibility:    DefaultVisibility,
		Branch:        DefaultBranch,
		CommitMessage: DefaultCommitMessage,
		RemoteURL:     DefaultRemoteURL,
		Files:         DefaultFiles(),
		Hooks:         HooksConfig{Hooks: map[string]Hook{}},
	}
}

// IsPublic reports whether new repositories are public by default.
func (c *Config) IsPublic() bool {
	return c.Visibility == "public"
}

// FormatRemoteURL expands {owner} and {repo} in the remote_url format.
func (c *Config) FormatRemoteURL(owner, repo string) string {
	return ExpandRemoteURL(c.RemoteURL, owner, repo)
}

// ExpandRemoteURL expands {owner} and {repo} in format.
// An empty format falls back to DefaultRemoteURL.
func ExpandRemoteURL(format, owner, repo string) string {
	if format == "" {
		format = DefaultRemoteURL
	}
	return strings.NewReplacer("{owner}", owner, "{repo}", repo).Replace(format)
}

// Path returns the path to the config file.
// NEWREPO_CONFIG overrides the default ~/.config/newrepo/config.toml;
// a leading ~ and $VARS in it are expanded.
func Path() (string, error) {
	if p := os.Getenv("NEWREPO_CONFIG"); p != "" {
		return ExpandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "newrepo", "config.toml"), nil
}

// ExpandPath expands environment variables and a leading ~ in path.
func ExpandPath(path string) (string, error) {
	return homedir.Expand(os.ExpandEnv(path))
}

// rawConfig is used for initial TOML parsing before processing hooks
type rawConfig struct {
	Template         string         `toml:"template"`
	Owner            string         `toml:"owner"`
	Visibility       string         `toml:"visibility"`
	Branch           string         `toml:"branch"`
	CommitMessage    string         `toml:"commit_message"`
	RemoteURL        string         `toml:"remote_url"`
	CleanupOnFailure bool           `toml:"cleanup_on_failure"`
	Files            []FileRule     `toml:"files"`
	Hooks            map[string]any `toml:"hooks"`
	Theme            ThemeConfig    `toml:"theme"`
}

// Load reads the config file at Path().
// Returns Default() if the file doesn't exist (no error).
// Returns error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path and applies env overrides.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			if err := applyEnvOverrides(&cfg); err != nil {
				return Default(), err
			}
			return cfg, nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Config{
		Template:         raw.Template,
		Owner:            raw.Owner,
		Visibility:       raw.Visibility,
		Branch:           raw.Branch,
		CommitMessage:    raw.CommitMessage,
		RemoteURL:        raw.RemoteURL,
		CleanupOnFailure: raw.CleanupOnFailure,
		Files:            raw.Files,
		Hooks:            parseHooksConfig(raw.Hooks),
		Theme:            raw.Theme,
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Default(), err
	}

	if err := cfg.validate(); err != nil {
		return Default(), err
	}

	// Use defaults for empty values
	d := Default()
	if cfg.Template == "" {
		cfg.Template = d.Template
	}
	if cfg.Visibility == "" {
		cfg.Visibility = d.Visibility
	}
	if cfg.Branch == "" {
		cfg.Branch = d.Branch
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = d.CommitMessage
	}
	if cfg.RemoteURL == "" {
		cfg.RemoteURL = d.RemoteURL
	}
	if len(cfg.Files) == 0 {
		cfg.Files = d.Files
	}

	return cfg, nil
}

// applyEnvOverrides applies NEWREPO_* environment variables on top of cfg.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("NEWREPO_TEMPLATE"); v != "" {
		if err := ValidateRepoSpec(v); err != nil {
			return fmt.Errorf("NEWREPO_TEMPLATE: %w", err)
		}
		cfg.Template = v
	}
	if v := os.Getenv("NEWREPO_OWNER"); v != "" {
		cfg.Owner = v
	}
	return nil
}

// parseHooksConfig extracts HooksConfig from raw TOML map
// Handles [hooks.NAME] sections
func parseHooksConfig(raw map[string]any) HooksConfig {
	hc := HooksConfig{
		Hooks: make(map[string]Hook),
	}

	for key, value := range raw {
		hookMap, ok := value.(map[string]any)
		if !ok {
			continue
		}
		hook := Hook{}
		if cmd, ok := hookMap["command"].(string); ok {
			hook.Command = cmd
		}
		if desc, ok := hookMap["description"].(string); ok {
			hook.Description = desc
		}
		if on, ok := hookMap["on"].([]any); ok {
			for _, v := range on {
				if s, ok := v.(string); ok {
					hook.On = append(hook.On, s)
				}
			}
		}
		if enabled, ok := hookMap["enabled"].(bool); ok {
			hook.Enabled = &enabled
		}
		hc.Hooks[key] = hook
	}

	return hc
}

type configKey struct{}

type workDirKey struct{}

// WithConfig attaches the config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored in ctx, or nil.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	return nil
}

// WithWorkDir attaches the working directory to the context.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory stored in ctx.
// Falls back to os.Getwd when unset or empty.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}

const defaultConfig = `# newrepo configuration

# Template repository (owner/name) new projects are created from
template = "darrenkuro/repo-template"

# Owner of new repositories. Empty asks gh for the authenticated user.
# owner = "my-org"

# Default visibility: "private" or "public" (--public overrides)
visibility = "private"

# Initial branch and commit message
branch = "main"
commit_message = "Initial commit"

# Remote added as origin. Placeholders: {owner}, {repo}
# Example for SSH: "git@github.com:{owner}/{repo}.git"
remote_url = "https://github.com/{owner}/{repo}.git"

# Undo completed steps (delete the created remote, remove copied files)
# when a later step fails. Same as --cleanup-on-failure.
cleanup_on_failure = false

# Files in the project root whose placeholders are replaced.
# Tokens: REPO_NAME -> {{REPO_NAME}}, PROJECT_NAME -> {{PROJECT_NAME}}, YEAR -> {{YEAR}}
# Missing files only produce a warning.
[[files]]
path = "README.md"
tokens = ["REPO_NAME", "PROJECT_NAME"]

[[files]]
path = "LICENSE"
tokens = ["YEAR"]

# Hooks run after the initial push. Use --hook=name to run a specific hook,
# --no-hook to skip all hooks.
#
# [hooks.code]
# command = "code {path}"
# description = "Open VS Code"
# on = ["create"]
#
# Available placeholders:
#   {path}     - absolute project path
#   {repo}     - repository name
#   {title}    - project title
#   {owner}    - repository owner
#   {url}      - remote URL
#   {trigger}  - command that triggered the hook
#   {key}      - custom variable passed via --arg key=value
#   {key:-def} - custom variable with default value if not provided

# [theme]
# name = "default"   # default, none, dracula, nord
# mode = "auto"      # auto, light, dark
`

// DefaultConfig returns the default config file content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, InitFile(path, force)
}

// InitFile writes the default config to path.
func InitFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}
