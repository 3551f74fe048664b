package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// wrapWidth is the column glamour wraps rendered notes at.
const wrapWidth = 80

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return isTerminal(os.Stdout)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WriteMarkdown writes md to w, styled with glamour when w is a terminal.
// Pipes and files receive the markdown source unchanged, as does raw mode.
func WriteMarkdown(w io.Writer, md string, raw bool) error {
	if raw || !isTerminal(w) {
		_, err := io.WriteString(w, ensureNewline(md))
		return err
	}
	_, err := io.WriteString(w, RenderMarkdown(md))
	return err
}

// RenderMarkdown renders markdown for terminal output. Returns md unchanged
// if rendering fails.
func RenderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
