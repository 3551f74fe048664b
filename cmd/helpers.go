package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rnwolfe/lexi/internal/config"
	"github.com/rnwolfe/lexi/internal/dict"
	"github.com/rnwolfe/lexi/internal/logger"
	"github.com/rnwolfe/lexi/internal/store"
	"github.com/rnwolfe/lexi/internal/ui"
)

// stores bundles the database with the stores built on it.
type stores struct {
	db          *store.DB
	entries     *dict.Store
	suggestions *dict.SuggestionStore
}

func openStores() (*stores, error) {
	db, err := store.Open()
	if err != nil {
		return nil, err
	}
	return &stores{
		db:          db,
		entries:     dict.NewStore(db.Conn()),
		suggestions: dict.NewSuggestionStore(db.Conn()),
	}, nil
}

func (s *stores) Close() error {
	return s.db.Close()
}

// resolveEntry looks up an entry by id or unique id prefix, turning store
// sentinels into messages that say what to do next.
func resolveEntry(s *dict.Store, ref string) (dict.Entry, error) {
	e, err := s.Resolve(ref)
	switch {
	case errors.Is(err, dict.ErrNotFound):
		return dict.Entry{}, fmt.Errorf("no phrase with id %q (run %s to see ids)", ref, ui.Accent.Render("lexi list --ids"))
	case errors.Is(err, dict.ErrAmbiguousID):
		return dict.Entry{}, fmt.Errorf("id %q matches more than one phrase, type a few more characters", ref)
	}
	return e, err
}

// resolveSuggestion is resolveEntry for the review queue.
func resolveSuggestion(s *dict.SuggestionStore, ref string) (dict.Suggestion, error) {
	sg, err := s.Resolve(ref)
	switch {
	case errors.Is(err, dict.ErrNotFound):
		return dict.Suggestion{}, fmt.Errorf("no suggestion with id %q (run %s)", ref, ui.Accent.Render("lexi suggest list"))
	case errors.Is(err, dict.ErrAmbiguousID):
		return dict.Suggestion{}, fmt.Errorf("id %q matches more than one suggestion, type a few more characters", ref)
	}
	return sg, err
}

// shortID is the display form of an id, long enough to resolve in practice.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// newLogger builds the operational logger, honouring --verbose.
func newLogger(cfg *config.Config) *log.Logger {
	lc := cfg.Log
	if verbose {
		lc.Level = "debug"
	}
	return logger.New(lc)
}

// printEntry prints one phrase pair on a line.
func printEntry(e dict.Entry, withID bool) {
	line := "  " + ui.Accent.Render(e.Primary) + " " + ui.Muted.Render(ui.IconArrow) + " " + ui.Secondary.Render(e.Secondary)
	if withID {
		line = "  " + ui.Muted.Render(shortID(e.ID)) + line
	}
	fmt.Println(line)
}
