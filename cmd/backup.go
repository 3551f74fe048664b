package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/rnwolfe/lexi/internal/backup"
	"github.com/rnwolfe/lexi/internal/config"
	"github.com/rnwolfe/lexi/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const passphraseEnv = "LEXI_BACKUP_PASSPHRASE"

var exportEncrypt bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write every phrase to a JSON backup",
	Long: `Write every phrase to a JSON backup ({"entries": [...]}). With no file the
backup goes to stdout.

--encrypt wraps the backup in an age envelope protected by a passphrase,
read from ` + passphraseEnv + ` or prompted for.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Load phrases from a backup",
	Long: `Load phrases from a backup made by export, or from a dictionary.json with
"en"/"es" keys. Phrases with a known id are overwritten; the rest are added.
Encrypted backups are detected and prompt for the passphrase.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().BoolVarP(&exportEncrypt, "encrypt", "e", false, "Encrypt the backup with a passphrase")
}

func runExport(_ *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.entries.List()
	if err != nil {
		return err
	}

	var passphrase string
	if exportEncrypt {
		if passphrase, err = readPassphrase(true); err != nil {
			return err
		}
	}

	if len(args) == 0 || args[0] == "-" {
		raw, err := backup.Encode(entries, passphrase)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(raw)
		return err
	}

	if err := backup.WriteFile(args[0], entries, passphrase); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Exported %d phrases to %s", len(entries), args[0]))
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if args[0] == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}

	entries, err := backup.Decode(raw, func() (string, error) { return readPassphrase(false) })
	if err != nil {
		return err
	}

	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := newLogger(cfg)
	for _, e := range entries {
		log.Debug("importing", "id", e.ID, "primary", e.Primary)
	}

	res, err := backup.Import(st.entries, entries)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Imported %d phrases", res.Imported))
	if res.Skipped > 0 {
		ui.Warn(fmt.Sprintf("Skipped %d entries missing primary or secondary text", res.Skipped))
	}
	return nil
}

// readPassphrase returns the backup passphrase from the environment, or
// prompts on the terminal. confirm asks twice.
func readPassphrase(confirm bool) (string, error) {
	if p := os.Getenv(passphraseEnv); p != "" {
		return p, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("backup passphrase required: set %s or run interactively", passphraseEnv)
	}

	fmt.Fprint(os.Stderr, ui.Muted.Render("  Backup passphrase: "))
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	passphrase := strings.TrimSpace(string(passBytes))
	if passphrase == "" {
		return "", fmt.Errorf("passphrase can't be empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, ui.Muted.Render("  Confirm passphrase: "))
		confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase confirmation: %w", err)
		}
		if strings.TrimSpace(string(confirmBytes)) != passphrase {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return passphrase, nil
}
