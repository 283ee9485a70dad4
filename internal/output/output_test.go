package output

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
)

func TestWithPrinter_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		ctx := WithPrinter(context.Background(), New(&buf))
		p := FromContext(ctx)
		if p == nil {
			t.Fatal("FromContext returned nil")
		}
		if p.Writer() != &buf {
			t.Error("Writer() should return the buffer passed to New")
		}
	})

	t.Run("default to stdout when not set", func(t *testing.T) {
		t.Parallel()
		p := FromContext(context.Background())
		if p == nil {
			t.Fatal("FromContext returned nil on empty context")
		}
		if p.Writer() != os.Stdout {
			t.Error("Writer() should default to os.Stdout")
		}
	})
}

func TestPrinter_Print(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	p.Print("hello", " ", "world")
	p.Printf(" %d", 42)
	p.Println()
	if got := buf.String(); got != "hello world 42\n" {
		t.Errorf("wrote %q, want %q", got, "hello world 42\n")
	}
}

func TestNewStyled_StripsANSIOnPipes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewStyled(&buf, []string{"TERM=xterm-256color"})
	p.Print("\x1b[1mbold\x1b[m")

	if got := buf.String(); got != "bold" {
		t.Errorf("styled output to buffer = %q, want %q", got, "bold")
	}
}

type sample struct {
	Name  string   `toml:"name" yaml:"name" json:"name"`
	Files []string `toml:"files" yaml:"files" json:"files"`
}

func TestPrinter_Encode(t *testing.T) {
	t.Parallel()

	v := sample{Name: "app", Files: []string{"README.md", "LICENSE"}}

	tests := []struct {
		format string
		want   []string
	}{
		{FormatTOML, []string{`name = "app"`, `files = ["README.md", "LICENSE"]`}},
		{FormatYAML, []string{"name: app", "files:", "  - README.md", "  - LICENSE"}},
		{FormatJSON, []string{`"name": "app"`, `"README.md"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := New(&buf).Encode(tt.format, v); err != nil {
				t.Fatalf("Encode(%s) failed: %v", tt.format, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("Encode(%s) output missing %q:\n%s", tt.format, w, buf.String())
				}
			}
		})
	}
}

func TestPrinter_EncodeUnknownFormat(t *testing.T) {
	t.Parallel()

	err := New(&bytes.Buffer{}).Encode("xml", sample{})
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("Encode(xml) error = %v, want unsupported format", err)
	}
}
