package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rnwolfe/lexi/internal/config"
	"github.com/rnwolfe/lexi/internal/speech"
	"github.com/rnwolfe/lexi/internal/ui"
	"github.com/spf13/cobra"
)

var sayLang string

var sayCmd = &cobra.Command{
	Use:   "say <id>",
	Short: "Read a phrase aloud",
	Long: `Read a phrase aloud with the system speech engine (macOS say, or
espeak-ng / espeak elsewhere). Catalan falls back to a Spanish voice when no
Catalan voice is installed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSay,
}

func init() {
	sayCmd.Flags().StringVarP(&sayLang, "lang", "l", "both", "Which side to speak: primary, secondary or both")
}

func runSay(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	type utterance struct{ text, lang string }
	var queue []utterance

	st, err := openStores()
	if err != nil {
		return err
	}
	e, err := resolveEntry(st.entries, args[0])
	st.Close()
	if err != nil {
		return err
	}

	switch sayLang {
	case "primary":
		queue = append(queue, utterance{e.Primary, cfg.Languages.Primary})
	case "secondary":
		queue = append(queue, utterance{e.Secondary, cfg.Languages.Secondary})
	case "both", "":
		queue = append(queue,
			utterance{e.Primary, cfg.Languages.Primary},
			utterance{e.Secondary, cfg.Languages.Secondary},
		)
	default:
		return fmt.Errorf("invalid --lang %q (use primary, secondary or both)", sayLang)
	}

	sp, err := speech.New(cfg.Speech.Command, cfg.Speech.Rate)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for _, u := range queue {
		fmt.Printf("  %s%s\n", ui.IconSpeak, u.text)
		if err := sp.Say(ctx, u.text, u.lang); err != nil {
			return err
		}
	}
	return nil
}
