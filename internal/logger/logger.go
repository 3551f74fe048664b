// Package logger builds the charmbracelet/log logger used for operational
// output (server requests, background warnings). User-facing command output
// goes through internal/ui instead.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/rnwolfe/lexi/internal/config"
)

// New creates a logger writing to stderr according to cfg.
func New(cfg config.LogConfig) *log.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter creates a logger writing to w. An unknown level falls back
// to info.
func NewWithWriter(w io.Writer, cfg config.LogConfig) *log.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	formatter := log.TextFormatter
	if cfg.JSON {
		formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "lexi",
		Level:           level,
		ReportTimestamp: true,
		Formatter:       formatter,
	})
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
