package styles

import (
	"io"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
)

// Status symbols
const (
	SymbolOK   = "✓"
	SymbolFail = "✗"
	SymbolWarn = "!"
)

// Hyperlink wraps text in an OSC 8 hyperlink to url.
// Returns text unchanged if url is empty.
func Hyperlink(url, text string) string {
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

// FormatRepoRef renders an owner/name reference in the accent color,
// linked to url when one is known.
func FormatRepoRef(spec, url string) string {
	if url == "" {
		return AccentStyle.Render(spec)
	}
	return Hyperlink(url, AccentStyle.Underline(true).Render(spec))
}

// NewWriter returns a writer that downsamples ANSI sequences written to w
// to the color profile detected from w and environ. Output to pipes and
// files is stripped of all escape sequences.
func NewWriter(w io.Writer, environ []string) *colorprofile.Writer {
	return colorprofile.NewWriter(w, environ)
}

// FprintError writes "Error: msg" in the error color.
func FprintError(w io.Writer, environ []string, msg string) {
	cw := NewWriter(w, environ)
	_, _ = io.WriteString(cw, ErrorStyle.Render("Error: "+msg)+"\n")
}
