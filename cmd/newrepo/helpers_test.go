package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/raphi011/newrepo/internal/config"
	"github.com/raphi011/newrepo/internal/forge"
)

// stubForge records the calls that reach it and succeeds.
type stubForge struct {
	calls []string
}

func (f *stubForge) Name() string { return "gh" }

func (f *stubForge) Check(context.Context) error {
	f.calls = append(f.calls, "check")
	return nil
}

func (f *stubForge) CurrentUser(context.Context) (string, error) {
	f.calls = append(f.calls, "user")
	return "octo", nil
}

func (f *stubForge) CreateFromTemplate(context.Context, forge.CreateParams) error {
	f.calls = append(f.calls, "create")
	return nil
}

func (f *stubForge) Clone(context.Context, string, string) error {
	f.calls = append(f.calls, "clone")
	return nil
}

func (f *stubForge) Delete(context.Context, string) error {
	f.calls = append(f.calls, "delete")
	return nil
}

func (f *stubForge) TemplateExists(context.Context, string) (bool, error) {
	f.calls = append(f.calls, "view")
	return true, nil
}

// testApp returns an app writing to buffers, started in a fresh temporary
// directory and loading cfg instead of the user config.
func testApp(t *testing.T, cfg config.Config) (*app, *bytes.Buffer, *bytes.Buffer, *stubForge) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	fg := &stubForge{}
	stateDir := t.TempDir()

	a := &app{
		stdout:      &stdout,
		stderr:      &stderr,
		environ:     []string{"TERM=dumb"},
		workDir:     t.TempDir(),
		loadConfig:  func() (config.Config, error) { return cfg, nil },
		configPath:  func() (string, error) { return filepath.Join(stateDir, "config.toml"), nil },
		historyPath: func() (string, error) { return filepath.Join(stateDir, "history.json"), nil },
		forge:       func() (forge.Forge, error) { return fg, nil },
		isTerminal:  func() bool { return false },
		now:         func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
	}
	return a, &stdout, &stderr, fg
}

// execute runs the root command with args.
func execute(t *testing.T, a *app, args ...string) error {
	t.Helper()
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}
