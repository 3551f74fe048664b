package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rnwolfe/lexi/internal/config"
	"github.com/rnwolfe/lexi/internal/dict"
	"github.com/rnwolfe/lexi/internal/tips"
	"github.com/rnwolfe/lexi/internal/ui"
	"github.com/rnwolfe/lexi/internal/version"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lexi",
	Short: "A personal two-language phrase dictionary",
	Long: `lexi keeps the phrases you collect between two languages, finds them
with forgiving fuzzy search, and serves them to friends over a small JSON API.`,
	RunE: runDashboard,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		ui.InitColor()
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// runDashboard shows the at-a-glance status when you just type `lexi`.
func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Println(ui.Greet(cfg.User.Name))
	fmt.Println()

	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.entries.List()
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}
	pending, err := st.suggestions.Count()
	if err != nil {
		return fmt.Errorf("counting suggestions: %w", err)
	}

	ui.Kv("Phrases", fmt.Sprintf("%d", len(entries)))
	if pending > 0 {
		ui.Kv("Suggestions", ui.Warning.Render(fmt.Sprintf("%d waiting for review", pending)))
	}
	ui.Kv("Languages", cfg.Languages.Primary+" "+ui.IconArrow+" "+cfg.Languages.Secondary)
	ui.Kv("Version", version.Short())

	if e, ok := phraseOfTheDay(entries, time.Now()); ok {
		fmt.Println()
		fmt.Printf("  %s  %s %s\n", ui.Muted.Render("today:"), ui.Accent.Render(e.Primary), ui.Secondary.Render(e.Secondary))
	}

	switch {
	case len(entries) == 0:
		ui.Tip("`lexi add \"good morning\" \"bon dia\"` to start your dictionary.")
	case pending > 0:
		ui.Tip("`lexi suggest list` to review what friends sent in.")
	default:
		ui.Tip(tips.Daily(time.Now()))
	}

	fmt.Println()
	return nil
}

// phraseOfTheDay picks one entry per calendar day, stable across runs.
func phraseOfTheDay(entries []dict.Entry, now time.Time) (dict.Entry, bool) {
	if len(entries) == 0 {
		return dict.Entry{}, false
	}
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	return entries[int(day%int64(len(entries)))], true
}
