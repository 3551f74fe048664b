// Package tui holds the interactive bubbletea views.
package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/rnwolfe/lexi/internal/dict"
	"github.com/rnwolfe/lexi/internal/ui"
)

// FinderOption configures a Finder.
type FinderOption func(*Finder)

// WithTitle sets the heading displayed above the finder.
func WithTitle(title string) FinderOption {
	return func(f *Finder) { f.title = title }
}

// WithPrompt sets the search prompt.
func WithPrompt(prompt string) FinderOption {
	return func(f *Finder) { f.prompt = prompt }
}

// WithHeight sets the maximum visible rows (0 = fit the terminal).
func WithHeight(h int) FinderOption {
	return func(f *Finder) { f.height = h }
}

// WithQuery pre-fills the search box.
func WithQuery(q string) FinderOption {
	return func(f *Finder) { f.query = []rune(q) }
}

// Finder is the search palette: every keystroke re-ranks the entry
// snapshot with dict.Rank, the same matcher the CLI and API use.
type Finder struct {
	title  string
	prompt string
	height int

	entries  []dict.Entry
	hits     []dict.Hit
	query    []rune
	cursor   int
	offset   int
	chosen   *dict.Entry
	canceled bool

	termWidth  int
	termHeight int
}

// NewFinder creates a Finder over entries.
func NewFinder(entries []dict.Entry, opts ...FinderOption) *Finder {
	f := &Finder{
		prompt:     "> ",
		height:     10,
		entries:    entries,
		termWidth:  80,
		termHeight: 24,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.refilter()
	return f
}

// Find shows the finder and returns the chosen entry, or nil if the user
// cancelled.
func Find(entries []dict.Entry, opts ...FinderOption) (*dict.Entry, error) {
	f := NewFinder(entries, opts...)
	m, err := tea.NewProgram(f, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("finder: %w", err)
	}
	result := m.(*Finder)
	if result.canceled {
		return nil, nil
	}
	return result.chosen, nil
}

// IsTTY returns true when stdin is connected to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Query returns the current search text.
func (f *Finder) Query() string {
	return string(f.query)
}

// Hits returns the current ranked matches.
func (f *Finder) Hits() []dict.Hit {
	return f.hits
}

func (f *Finder) Init() tea.Cmd {
	return nil
}

func (f *Finder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.termWidth = msg.Width
		f.termHeight = msg.Height
		return f, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			f.canceled = true
			return f, tea.Quit

		case tea.KeyEnter:
			if len(f.hits) > 0 {
				e := f.hits[f.cursor].Entry
				f.chosen = &e
			}
			return f, tea.Quit

		case tea.KeyUp, tea.KeyCtrlP:
			if f.cursor > 0 {
				f.cursor--
				if f.cursor < f.offset {
					f.offset = f.cursor
				}
			}
			return f, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if f.cursor < len(f.hits)-1 {
				f.cursor++
				vis := f.visibleHeight()
				if f.cursor >= f.offset+vis {
					f.offset = f.cursor - vis + 1
				}
			}
			return f, nil

		case tea.KeyBackspace:
			if len(f.query) > 0 {
				f.query = f.query[:len(f.query)-1]
				f.refilter()
			}
			return f, nil

		case tea.KeyCtrlU:
			f.query = nil
			f.refilter()
			return f, nil

		case tea.KeySpace:
			f.query = append(f.query, ' ')
			f.refilter()
			return f, nil

		case tea.KeyRunes:
			f.query = append(f.query, msg.Runes...)
			f.refilter()
			return f, nil
		}
	}
	return f, nil
}

func (f *Finder) View() string {
	var b strings.Builder

	if f.title != "" {
		b.WriteString("  " + ui.Title.Render(f.title) + "\n\n")
	}

	prompt := lipgloss.NewStyle().Foreground(ui.Terracotta).Bold(true).Render(f.prompt)
	b.WriteString("  " + prompt + string(f.query) + caret() + "\n\n")

	vis := f.visibleHeight()
	end := min(f.offset+vis, len(f.hits))

	if len(f.hits) == 0 {
		b.WriteString("  " + ui.Muted.Render("No matches") + "\n")
	} else {
		for i := f.offset; i < end; i++ {
			b.WriteString(f.renderHit(f.hits[i], i == f.cursor) + "\n")
		}
	}

	b.WriteString("\n")
	status := ui.Muted.Render(fmt.Sprintf("  %d/%d", len(f.hits), len(f.entries)))
	help := ui.Muted.Render(" · ↑↓ navigate · enter show · ctrl+u clear · esc cancel")
	b.WriteString(status + help + "\n")

	return b.String()
}

func (f *Finder) visibleHeight() int {
	h := f.height
	if h <= 0 || h > f.termHeight-6 {
		h = f.termHeight - 6
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (f *Finder) refilter() {
	f.hits = dict.Rank(string(f.query), f.entries)
	f.cursor = 0
	f.offset = 0
}

func (f *Finder) renderHit(h dict.Hit, selected bool) string {
	pointer := "  "
	primary := lipgloss.NewStyle()
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		primary = primary.Foreground(ui.Terracotta).Bold(true)
	}

	line := "  " + pointer + primary.Render(h.Entry.Primary) + "  " + ui.Secondary.Render(h.Entry.Secondary)
	// Show the notes when they are why the entry matched.
	if h.Field == dict.FieldNotes && len(f.query) > 0 && h.Entry.Notes != "" {
		line += "  " + ui.Muted.Render(truncate(h.Entry.Notes, f.termWidth/3))
	}
	return line
}

func caret() string {
	return lipgloss.NewStyle().Foreground(ui.Terracotta).Render("▎")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
