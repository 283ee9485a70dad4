package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/newrepo/internal/cmd"
	"github.com/raphi011/newrepo/internal/config"
	"github.com/raphi011/newrepo/internal/log"
)

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes.
func shellQuote(s string) string {
	// e.g., "it's" becomes 'it'\''s'
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// CommandType identifies which command is triggering the hook
type CommandType string

const (
	CommandCreate CommandType = "create"
)

// Context holds the values for placeholder substitution
type Context struct {
	Path    string            // absolute project path
	Repo    string            // repository name
	Title   string            // project title
	Owner   string            // repository owner
	URL     string            // remote URL
	Trigger string            // command that triggered the hook
	Env     map[string]string // custom variables from --arg key=value flags
	DryRun  bool              // if true, print command instead of executing
}

// HookMatch represents a hook that matched the current command
type HookMatch struct {
	Hook *config.Hook
	Name string
}

// SelectHooks determines which hooks to run based on config and CLI flags.
// If hookNames is non-empty, exactly those hooks run, ignoring their "on"
// condition. Otherwise all hooks whose "on" list matches cmdType run, sorted
// by name. Returns an error if a named hook doesn't exist.
func SelectHooks(cfg config.HooksConfig, hookNames []string, noHook bool, cmdType CommandType) ([]HookMatch, error) {
	if noHook {
		return nil, nil
	}

	if len(hookNames) > 0 {
		matches := make([]HookMatch, 0, len(hookNames))
		for _, name := range hookNames {
			hook, exists := cfg.Hooks[name]
			if !exists {
				return nil, fmt.Errorf("unknown hook %q", name)
			}
			matches = append(matches, HookMatch{Hook: &hook, Name: name})
		}
		return matches, nil
	}

	return findMatchingHooks(cfg, cmdType), nil
}

// findMatchingHooks returns all hooks that have the command type in their "on" list.
// Hooks without "on" are skipped (they only run via explicit --hook=name).
func findMatchingHooks(cfg config.HooksConfig, cmdType CommandType) []HookMatch {
	var matches []HookMatch

	for name, hook := range cfg.Hooks {
		if len(hook.On) > 0 && hookMatchesCommand(hook, cmdType) {
			matches = append(matches, HookMatch{Hook: &hook, Name: name})
		}
	}

	slices.SortFunc(matches, func(a, b HookMatch) int { return strings.Compare(a.Name, b.Name) })
	return matches
}

// hookMatchesCommand returns true if cmdType is in the hook's "on" list.
// Special value "all" matches all command types.
func hookMatchesCommand(hook config.Hook, cmdType CommandType) bool {
	for _, on := range hook.On {
		if on == "all" || on == string(cmdType) {
			return true
		}
	}
	return false
}

// RunAll runs the matched hooks in hctx.Path and returns on the first error.
func RunAll(ctx context.Context, matches []HookMatch, hctx Context) error {
	for _, match := range matches {
		if err := runHook(ctx, match.Name, match.Hook, hctx); err != nil {
			return fmt.Errorf("hook %q failed: %w", match.Name, err)
		}
	}
	return nil
}

// runHook executes a single hook with variable substitution.
func runHook(ctx context.Context, name string, hook *config.Hook, hctx Context) error {
	l := log.FromContext(ctx)
	command := SubstitutePlaceholders(hook.Command, hctx)

	if hctx.DryRun {
		l.Printf("[dry-run] %s: %s\n", name, command)
		return nil
	}

	l.Printf("Running hook '%s'...\n", name)

	if err := cmd.StreamContext(ctx, hctx.Path, "sh", "-c", command); err != nil {
		return err
	}

	if hook.Description != "" {
		l.Printf("  ✓ %s\n", hook.Description)
	}
	return nil
}

// readStdinIfPiped reads all content from stdin if it's piped (not a TTY).
// Returns empty string and nil if stdin is a TTY (interactive).
func readStdinIfPiped() (string, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// ParseArgs parses "key=value" strings into a map.
// Returns an error if any entry doesn't contain "=" or has an empty key.
func ParseArgs(args []string) (map[string]string, error) {
	return parseArgs(args, readStdinIfPiped)
}

// parseArgs is ParseArgs with an injectable stdin reader. A value of "-"
// reads stdin once and assigns it to every such key.
func parseArgs(args []string, stdin func() (string, error)) (map[string]string, error) {
	result := make(map[string]string)
	var stdinKeys []string

	for _, a := range args {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid arg format %q: expected KEY=VALUE", a)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid arg format %q: key cannot be empty", a)
		}
		if value == "-" {
			stdinKeys = append(stdinKeys, key)
		} else {
			result[key] = value
		}
	}

	if len(stdinKeys) > 0 {
		content, err := stdin()
		if err != nil {
			return nil, err
		}
		if content == "" {
			return nil, fmt.Errorf("stdin not piped: KEY=- requires piped input")
		}
		for _, key := range stdinKeys {
			result[key] = content
		}
	}

	return result, nil
}

// placeholderRegex matches {key}, {key:raw}, or {key:-default} patterns.
// Supported formats:
//   - {key}           - value is shell-quoted
//   - {key:raw}       - value is used as-is (no quoting)
//   - {key:-default}  - value is shell-quoted, uses default if key not set
var placeholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values from Context.
// Values are properly escaped to prevent command injection.
//
// Static placeholders: {path}, {repo}, {title}, {owner}, {url}, {trigger}.
// Custom placeholders come from Context.Env; a static name always wins.
// Every placeholder accepts the :raw and :-default forms.
func SubstitutePlaceholders(command string, hctx Context) string {
	static := map[string]string{
		"path":    hctx.Path,
		"repo":    hctx.Repo,
		"title":   hctx.Title,
		"owner":   hctx.Owner,
		"url":     hctx.URL,
		"trigger": hctx.Trigger,
	}

	return placeholderRegex.ReplaceAllStringFunc(command, func(match string) string {
		submatch := placeholderRegex.FindStringSubmatch(match)
		if submatch == nil {
			return match
		}
		key := submatch[1]
		isRaw := submatch[2] == ":raw"
		val := submatch[3] // default, empty if none

		if v, ok := static[key]; ok {
			val = v
		} else if v, ok := hctx.Env[key]; ok {
			val = v
		}

		if isRaw {
			return val
		}
		return shellQuote(val)
	})
}
