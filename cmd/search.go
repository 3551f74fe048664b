package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rnwolfe/lexi/internal/config"
	"github.com/rnwolfe/lexi/internal/dict"
	"github.com/rnwolfe/lexi/internal/tui"
	"github.com/rnwolfe/lexi/internal/ui"
	"github.com/spf13/cobra"
)

var (
	searchScores bool
	searchJSON   bool
	searchLimit  int
	searchIn     string
	findHeight   int
)

var searchCmd = &cobra.Command{
	Use:     "search <query...>",
	Aliases: []string{"s"},
	Short:   "Fuzzy-search both languages and the notes",
	Long: `Search matches when the letters of the query appear in order in the
primary text, the secondary text or the notes. Case is ignored, accents
are not, and results are ranked best first.`,
	Example: `  lexi search bou
  lexi search tallat --scores
  lexi search festa --in notes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var findCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Search as you type, then show the chosen phrase",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFind,
}

func init() {
	searchCmd.Flags().BoolVar(&searchScores, "scores", false, "Show match scores and the field that matched")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print JSON")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "Show at most n results (0 = all)")
	searchCmd.Flags().StringVar(&searchIn, "in", "", "Only results whose best match is in this field: primary, secondary or notes")

	findCmd.Flags().IntVar(&findHeight, "height", 10, "Rows of results to show (0 = fit the terminal)")
}

func runSearch(_ *cobra.Command, args []string) error {
	var only *dict.Field
	if searchIn != "" {
		var f dict.Field
		if err := f.UnmarshalText([]byte(searchIn)); err != nil {
			return fmt.Errorf("--in: %w", err)
		}
		only = &f
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.entries.List()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	// Alphabetical input makes equal scores come out alphabetically.
	hits := dict.Rank(query, dict.SortByPrimary(cfg.Languages.CollationTag(), entries))
	if only != nil {
		hits = slices.DeleteFunc(hits, func(h dict.Hit) bool { return h.Field != *only })
	}
	if searchLimit > 0 && len(hits) > searchLimit {
		hits = hits[:searchLimit]
	}

	if searchJSON {
		if searchScores {
			return writeJSON(hits)
		}
		out := make([]dict.Entry, len(hits))
		for i, h := range hits {
			out[i] = h.Entry
		}
		return writeJSON(out)
	}

	if len(hits) == 0 {
		ui.Inf(fmt.Sprintf("Nothing matches %q.", query))
		ui.Tip(fmt.Sprintf("`lexi suggest %q <translation>` if it's missing.", query))
		return nil
	}
	for _, h := range hits {
		if searchScores {
			fmt.Print(ui.Muted.Render(fmt.Sprintf("  %3d %-9s", h.Score, h.Field)))
		}
		printEntry(h.Entry, false)
	}
	return nil
}

func runFind(_ *cobra.Command, args []string) error {
	if !tui.IsTTY() {
		return fmt.Errorf("find needs an interactive terminal; use %s instead", ui.Accent.Render("lexi search"))
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.entries.List()
	if err != nil {
		return err
	}

	opts := []tui.FinderOption{
		tui.WithTitle(ui.IconLexi + "lexi"),
		tui.WithPrompt(findPrompt(cfg.Languages)),
		tui.WithHeight(findHeight),
	}
	if len(args) == 1 {
		opts = append(opts, tui.WithQuery(args[0]))
	}
	chosen, err := tui.Find(dict.SortByPrimary(cfg.Languages.CollationTag(), entries), opts...)
	if err != nil || chosen == nil {
		return err
	}
	return ui.WriteMarkdown(os.Stdout, entryMarkdown(*chosen, cfg.Languages), false)
}

// findPrompt names the language pair being searched.
func findPrompt(langs config.LanguagesConfig) string {
	if langs.Primary == "" || langs.Secondary == "" {
		return "> "
	}
	return langs.Primary + "/" + langs.Secondary + " > "
}
