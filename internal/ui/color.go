package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitColor picks the color profile for the process. Colors are dropped
// when NO_COLOR is set or stdout is not a terminal, so piped output stays
// free of escape codes.
func InitColor() {
	lipgloss.SetColorProfile(ColorProfile(os.Getenv("NO_COLOR") != "", IsStdoutTTY()))
}

// ColorProfile resolves the profile for the given environment.
func ColorProfile(noColor, tty bool) termenv.Profile {
	if noColor || !tty {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}
