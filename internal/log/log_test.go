package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

// emit writes one message of every kind the scaffold pipeline produces.
func emit(l *Logger) {
	l.Printf("Running hook %q\n", "code")
	l.Println("Removed 2 stale entries")
	l.Warn("file not found: %s (did you mean %s?)", "LICENSE", "LICENCE")
	l.Debug("running step", "step", "clone template")
	l.Command("/src/my-app", "git", "push", "-u", "origin", "main")(1500 * time.Microsecond)
}

func TestLogger_Modes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		verbose  bool
		quiet    bool
		want     []string
		dontWant []string
	}{
		{
			name: "default",
			want: []string{
				`Running hook "code"`,
				"Removed 2 stale entries\n",
				"Warning: file not found: LICENSE (did you mean LICENCE?)",
			},
			dontWant: []string{"running step", "git push"},
		},
		{
			name:    "verbose",
			verbose: true,
			want: []string{
				"Warning: file not found: LICENSE",
				"running step step=clone template\n",
				"[/src/my-app] $ git push -u origin main (2ms)\n",
			},
		},
		{
			name:     "quiet",
			quiet:    true,
			dontWant: []string{"hook", "stale", "Warning", "step", "git"},
		},
		{
			name:     "quiet wins over verbose",
			verbose:  true,
			quiet:    true,
			dontWant: []string{"hook", "Warning", "step", "git"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l := New(&buf, tt.verbose, tt.quiet)
			emit(l)
			got := buf.String()

			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.dontWant {
				if strings.Contains(got, w) {
					t.Errorf("output should not contain %q:\n%s", w, got)
				}
			}
			if tt.quiet && got != "" {
				t.Errorf("quiet logger wrote %q", got)
			}
			if l.IsVerbose() != (tt.verbose && !tt.quiet) {
				t.Errorf("IsVerbose() = %v", l.IsVerbose())
			}
		})
	}
}

func TestLogger_CommandWithoutDir(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, true, false).Command("", "gh", "api", "user")(40 * time.Millisecond)
	if got, want := buf.String(), "$ gh api user (40ms)\n"; got != want {
		t.Errorf("Command output = %q, want %q", got, want)
	}
}

func TestLogger_DebugDropsUnpairedKey(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, true, false).Debug("template manifest found", "files", 2, "hooks")
	if got, want := buf.String(), "template manifest found files=2\n"; got != want {
		t.Errorf("Debug output = %q, want %q", got, want)
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, false)
	if got := FromContext(WithLogger(context.Background(), l)); got != l || got.Writer() != &buf {
		t.Error("FromContext did not return the attached logger")
	}

	fallback := FromContext(context.Background())
	if fallback.Writer() != io.Discard || fallback.IsVerbose() {
		t.Error("logger without context should discard and not be verbose")
	}
	fallback.Warn("dropped")
}
