package hooks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/raphi011/newrepo/internal/config"
	"github.com/raphi011/newrepo/internal/log"
)

func TestSubstitutePlaceholders(t *testing.T) {
	t.Parallel()

	hctx := Context{
		Path:    "/home/user/src/my-cool-app",
		Repo:    "my-cool-app",
		Title:   "My Cool App",
		Owner:   "alice",
		URL:     "https://github.com/alice/my-cool-app.git",
		Trigger: "create",
	}

	tests := []struct {
		name     string
		command  string
		expected string
	}{
		{
			name:     "single placeholder",
			command:  "code {path}",
			expected: "code '/home/user/src/my-cool-app'",
		},
		{
			name:     "multiple placeholders",
			command:  "cd {path} && echo {title}",
			expected: "cd '/home/user/src/my-cool-app' && echo 'My Cool App'",
		},
		{
			name:     "all placeholders",
			command:  "{path} {repo} {title} {owner} {url} {trigger}",
			expected: "'/home/user/src/my-cool-app' 'my-cool-app' 'My Cool App' 'alice' 'https://github.com/alice/my-cool-app.git' 'create'",
		},
		{
			name:     "no placeholders",
			command:  "echo hello",
			expected: "echo hello",
		},
		{
			name:     "repeated placeholder",
			command:  "{repo} and {repo}",
			expected: "'my-cool-app' and 'my-cool-app'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := SubstitutePlaceholders(tt.command, hctx)
			if result != tt.expected {
				t.Errorf("SubstitutePlaceholders(%q) = %q, want %q", tt.command, result, tt.expected)
			}
		})
	}
}

func TestSubstitutePlaceholders_ShellEscaping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hctx     Context
		command  string
		expected string
	}{
		{
			name:     "path with spaces",
			hctx:     Context{Path: "/home/user/my documents/app"},
			command:  "code {path}",
			expected: "code '/home/user/my documents/app'",
		},
		{
			name:     "title with shell metacharacters",
			hctx:     Context{Title: "App; rm -rf /"},
			command:  "echo {title}",
			expected: "echo 'App; rm -rf /'",
		},
		{
			name:     "value with single quotes",
			hctx:     Context{Path: "/home/user/it's a path"},
			command:  "code {path}",
			expected: "code '/home/user/it'\\''s a path'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := SubstitutePlaceholders(tt.command, tt.hctx)
			if result != tt.expected {
				t.Errorf("SubstitutePlaceholders(%q) = %q, want %q", tt.command, result, tt.expected)
			}
		})
	}
}

func TestSubstitutePlaceholders_CustomArgs(t *testing.T) {
	t.Parallel()

	hctx := Context{
		Repo: "app",
		Env:  map[string]string{"editor": "nvim", "msg": "it's done"},
	}

	tests := []struct {
		command  string
		expected string
	}{
		{"{editor} .", "'nvim' ."},
		{"echo \"{msg:raw}\"", "echo \"it's done\""},
		{"{editor:-code} {path}", "'nvim' ''"},
		{"{missing:-code} .", "'code' ."},
		{"{missing:raw}x", "x"},
		{"{missing}", "''"},
		{"gh repo edit {owner:raw}/{repo:raw}", "gh repo edit /app"},
		{"{repo:-fallback}", "'app'"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()
			if got := SubstitutePlaceholders(tt.command, hctx); got != tt.expected {
				t.Errorf("SubstitutePlaceholders(%q) = %q, want %q", tt.command, got, tt.expected)
			}
		})
	}
}

func testHooks() config.HooksConfig {
	return config.HooksConfig{
		Hooks: map[string]config.Hook{
			"vscode":  {Command: "code {path}", On: []string{"create"}},
			"install": {Command: "npm install", On: []string{"all"}},
			"manual":  {Command: "echo manual"},
			"other":   {Command: "echo other", On: []string{"clone"}},
		},
	}
}

func TestSelectHooks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hookNames []string
		noHook    bool
		want      []string
		wantErr   bool
	}{
		{name: "on condition", want: []string{"install", "vscode"}},
		{name: "no-hook", noHook: true, want: nil},
		{name: "no-hook wins over explicit", hookNames: []string{"vscode"}, noHook: true, want: nil},
		{name: "explicit ignores on", hookNames: []string{"manual"}, want: []string{"manual"}},
		{name: "explicit keeps order", hookNames: []string{"vscode", "manual"}, want: []string{"vscode", "manual"}},
		{name: "unknown hook", hookNames: []string{"nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			matches, err := SelectHooks(testHooks(), tt.hookNames, tt.noHook, CommandCreate)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var names []string
			for _, m := range matches {
				names = append(names, m.Name)
			}
			if !slices.Equal(names, tt.want) {
				t.Errorf("SelectHooks() = %v, want %v", names, tt.want)
			}
		})
	}
}

func TestSelectHooks_EmptyConfig(t *testing.T) {
	t.Parallel()

	matches, err := SelectHooks(config.HooksConfig{}, nil, false, CommandCreate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestSelectHooks_MatchesAreCopies(t *testing.T) {
	t.Parallel()

	cfg := testHooks()
	matches, err := SelectHooks(cfg, nil, false, CommandCreate)
	if err != nil {
		t.Fatal(err)
	}
	matches[0].Hook.Command = "changed"
	if cfg.Hooks[matches[0].Name].Command == "changed" {
		t.Error("SelectHooks returned a pointer into the config map")
	}
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	noStdin := func() (string, error) { return "", nil }
	piped := func() (string, error) { return "from stdin", nil }

	tests := []struct {
		name    string
		args    []string
		stdin   func() (string, error)
		want    map[string]string
		wantErr string
	}{
		{name: "simple", args: []string{"a=1", "b=two words"}, stdin: noStdin, want: map[string]string{"a": "1", "b": "two words"}},
		{name: "value with equals", args: []string{"q=x=y"}, stdin: noStdin, want: map[string]string{"q": "x=y"}},
		{name: "empty value", args: []string{"e="}, stdin: noStdin, want: map[string]string{"e": ""}},
		{name: "stdin to all dash keys", args: []string{"a=-", "b=-", "c=3"}, stdin: piped, want: map[string]string{"a": "from stdin", "b": "from stdin", "c": "3"}},
		{name: "missing equals", args: []string{"novalue"}, stdin: noStdin, wantErr: "expected KEY=VALUE"},
		{name: "empty key", args: []string{"=x"}, stdin: noStdin, wantErr: "key cannot be empty"},
		{name: "stdin not piped", args: []string{"a=-"}, stdin: noStdin, wantErr: "stdin not piped"},
		{name: "stdin error", args: []string{"a=-"}, stdin: func() (string, error) { return "", errors.New("read failed") }, wantErr: "read failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseArgs(tt.args, tt.stdin)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("parseArgs() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseArgs() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseArgs() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("parseArgs()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestRunAll(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("hooks run through sh")
	}

	dir := t.TempDir()
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, false, false))

	matches := []HookMatch{
		{Name: "write", Hook: &config.Hook{Command: "printf %s {repo} > marker", Description: "Wrote marker"}},
		{Name: "append", Hook: &config.Hook{Command: "printf %s {tag:-v1} >> marker"}},
	}
	hctx := Context{Path: dir, Repo: "my-app", Trigger: string(CommandCreate)}

	if err := RunAll(ctx, matches, hctx); err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "marker"))
	if err != nil {
		t.Fatalf("hooks did not run in project dir: %v", err)
	}
	if string(data) != "my-appv1" {
		t.Errorf("marker = %q, want my-appv1", data)
	}
	out := buf.String()
	if !strings.Contains(out, "Running hook 'write'") || !strings.Contains(out, "✓ Wrote marker") {
		t.Errorf("log output = %q", out)
	}
}

func TestRunAll_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("hooks run through sh")
	}

	dir := t.TempDir()
	matches := []HookMatch{
		{Name: "fail", Hook: &config.Hook{Command: "exit 3"}},
		{Name: "never", Hook: &config.Hook{Command: "touch never"}},
	}

	err := RunAll(context.Background(), matches, Context{Path: dir})
	if err == nil || !strings.Contains(err.Error(), `hook "fail" failed`) {
		t.Fatalf("RunAll() error = %v, want failure of hook \"fail\"", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "never")); !os.IsNotExist(err) {
		t.Error("hook after the failing one ran")
	}
}

func TestRunAll_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, false, false))

	matches := []HookMatch{{Name: "touch", Hook: &config.Hook{Command: "touch {repo}"}}}
	if err := RunAll(ctx, matches, Context{Path: dir, Repo: "x", DryRun: true}); err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}
	if got := buf.String(); got != "[dry-run] touch: touch 'x'\n" {
		t.Errorf("output = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "x")); !os.IsNotExist(err) {
		t.Error("dry run executed the hook")
	}
}
