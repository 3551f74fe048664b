package cmd

import (
	"fmt"

	"github.com/rnwolfe/lexi/internal/ui"
	"github.com/spf13/cobra"
)

var suggestNotes string

var suggestCmd = &cobra.Command{
	Use:   "suggest <primary> <secondary>",
	Short: "Propose a phrase for review",
	Long: `Suggestions wait in a review queue until approved (they become phrases)
or discarded. Friends submit them through the web API; you can add your own
here when you are not sure about a translation yet.`,
	Args: cobra.ExactArgs(2),
	RunE: runSuggest,
}

var suggestListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show pending suggestions, newest first",
	Args:    cobra.NoArgs,
	RunE:    runSuggestList,
}

var suggestApproveCmd = &cobra.Command{
	Use:     "approve <id>",
	Aliases: []string{"ok"},
	Short:   "Accept a suggestion into the dictionary",
	Args:    cobra.ExactArgs(1),
	RunE:    runSuggestApprove,
}

var suggestDiscardCmd = &cobra.Command{
	Use:     "discard <id>",
	Aliases: []string{"rm"},
	Short:   "Drop a suggestion",
	Args:    cobra.ExactArgs(1),
	RunE:    runSuggestDiscard,
}

func init() {
	suggestCmd.AddCommand(suggestListCmd)
	suggestCmd.AddCommand(suggestApproveCmd)
	suggestCmd.AddCommand(suggestDiscardCmd)

	suggestCmd.Flags().StringVarP(&suggestNotes, "notes", "n", "", "Usage notes")
}

func runSuggest(_ *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	sg, err := st.suggestions.Submit(args[0], args[1], suggestNotes)
	if err != nil {
		return err
	}
	fmt.Printf("  %s Suggested %s\n", ui.IconSuggest, ui.Muted.Render(shortID(sg.ID)))
	fmt.Printf("    %s %s %s\n", ui.Accent.Render(sg.Primary), ui.Muted.Render(ui.IconArrow), ui.Secondary.Render(sg.Secondary))
	return nil
}

func runSuggestList(_ *cobra.Command, _ []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := st.suggestions.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ui.Inf("No suggestions waiting.")
		return nil
	}

	ui.Header(fmt.Sprintf("%d suggestions", len(list)))
	for _, sg := range list {
		fmt.Printf("  %s  %s %s %s  %s\n",
			ui.Muted.Render(shortID(sg.ID)),
			ui.Accent.Render(sg.Primary),
			ui.Muted.Render(ui.IconArrow),
			ui.Secondary.Render(sg.Secondary),
			ui.Muted.Render(sg.CreatedAt.Local().Format("2 Jan 15:04")),
		)
		if sg.Notes != "" {
			fmt.Println("            " + ui.Muted.Render(sg.Notes))
		}
	}
	ui.Tip("`lexi suggest approve <id>` or `lexi suggest discard <id>`.")
	return nil
}

func runSuggestApprove(_ *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	sg, err := resolveSuggestion(st.suggestions, args[0])
	if err != nil {
		return err
	}
	e, err := st.suggestions.Approve(sg.ID)
	if err != nil {
		return err
	}
	fmt.Printf("  %s Approved as %s\n", ui.Success.Render(ui.IconOk), ui.Muted.Render(shortID(e.ID)))
	printEntry(e, false)
	return nil
}

func runSuggestDiscard(_ *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	sg, err := resolveSuggestion(st.suggestions, args[0])
	if err != nil {
		return err
	}
	if err := st.suggestions.Discard(sg.ID); err != nil {
		return err
	}
	fmt.Printf("  %s Discarded %s\n", ui.Success.Render(ui.IconOk), ui.Muted.Render(sg.Primary))
	return nil
}
