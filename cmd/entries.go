package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rnwolfe/lexi/internal/config"
	"github.com/rnwolfe/lexi/internal/dict"
	"github.com/rnwolfe/lexi/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	addNotes      string
	editPrimary   string
	editSecondary string
	editNotes     string
	listFlat      bool
	listJSON      bool
	listIDs       bool
	showRaw       bool
)

var addCmd = &cobra.Command{
	Use:   "add <primary> <secondary>",
	Short: "Add a phrase pair",
	Example: `  lexi add "Bull on fire" "Bou embolat"
  lexi add "A catted" "Un tallat" --notes "café with a drop of milk"`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every phrase, grouped by first letter",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one phrase with its notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the text or notes of a phrase",
	Long: `Change a phrase. Only the flags you pass are touched; pass --notes ""
to clear the notes.`,
	Example: `  lexi edit 3f2a --secondary "Un tallat"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a phrase",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "Usage notes (markdown)")

	listCmd.Flags().BoolVar(&listFlat, "flat", false, "Plain list in creation order, no letter groups")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON")
	listCmd.Flags().BoolVar(&listIDs, "ids", false, "Show short ids")

	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print markdown source instead of rendering it")

	bindEditFlags(editCmd.Flags())
}

func bindEditFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&editPrimary, "primary", "p", "", "New primary text")
	fs.StringVarP(&editSecondary, "secondary", "s", "", "New secondary text")
	fs.StringVarP(&editNotes, "notes", "n", "", "New notes")
}

func runAdd(_ *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	e, err := st.entries.Add(args[0], args[1], addNotes)
	if err != nil {
		return err
	}

	fmt.Printf("  %s Added %s\n", ui.Success.Render(ui.IconOk), ui.Muted.Render(shortID(e.ID)))
	printEntry(e, false)
	fmt.Println()
	return nil
}

func runList(_ *cobra.Command, _ []string) error {
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

	if listFlat {
		if listJSON {
			return writeJSON(entries)
		}
		for _, e := range entries {
			printEntry(e, listIDs)
		}
		return nil
	}

	groups := dict.GroupByLetterIn(cfg.Languages.CollationTag(), entries)
	if listJSON {
		if groups == nil {
			groups = []dict.Group{}
		}
		return writeJSON(groups)
	}

	if len(groups) == 0 {
		ui.Inf("No phrases yet.")
		ui.Tip("`lexi add <primary> <secondary>` to add one.")
		return nil
	}
	for _, g := range groups {
		fmt.Println()
		fmt.Println("  " + ui.Letter.Render(g.Letter))
		for _, e := range g.Entries {
			printEntry(e, listIDs)
		}
	}
	fmt.Println()
	fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d phrases", len(entries))))
	return nil
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	e, err := resolveEntry(st.entries, args[0])
	if err != nil {
		return err
	}
	return ui.WriteMarkdown(os.Stdout, entryMarkdown(e, cfg.Languages), showRaw)
}

// entryMarkdown renders an entry as a small markdown card.
func entryMarkdown(e dict.Entry, langs config.LanguagesConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Primary)
	fmt.Fprintf(&b, "**%s** _(%s)_\n\n", e.Secondary, langs.Secondary)
	if e.Notes != "" {
		b.WriteString(e.Notes + "\n\n")
	}
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "`%s` · added %s", e.ID, e.CreatedAt.Local().Format("2 Jan 2006"))
	if e.UpdatedAt.After(e.CreatedAt) {
		fmt.Fprintf(&b, " · edited %s", e.UpdatedAt.Local().Format("2 Jan 2006"))
	}
	b.WriteString("\n")
	return b.String()
}

func runEdit(cmd *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	e, err := resolveEntry(st.entries, args[0])
	if err != nil {
		return err
	}

	changed := 0
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "primary":
			e.Primary = editPrimary
		case "secondary":
			e.Secondary = editSecondary
		case "notes":
			e.Notes = editNotes
		default:
			return
		}
		changed++
	})
	if changed == 0 {
		return fmt.Errorf("nothing to change: pass --primary, --secondary or --notes")
	}

	updated, err := st.entries.Update(e.ID, e.Primary, e.Secondary, e.Notes)
	if err != nil {
		return err
	}
	fmt.Printf("  %s Updated %s\n", ui.Success.Render(ui.IconOk), ui.Muted.Render(shortID(updated.ID)))
	printEntry(updated, false)
	fmt.Println()
	return nil
}

func runRm(_ *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	e, err := resolveEntry(st.entries, args[0])
	if err != nil {
		return err
	}
	if err := st.entries.Delete(e.ID); err != nil {
		return err
	}
	fmt.Printf("  %s Removed %s\n", ui.Success.Render(ui.IconOk), ui.Muted.Render(e.Primary))
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
