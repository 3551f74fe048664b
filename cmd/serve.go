package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rnwolfe/lexi/internal/auth"
	"github.com/rnwolfe/lexi/internal/config"
	"github.com/rnwolfe/lexi/internal/server"
	"github.com/rnwolfe/lexi/internal/ui"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveSecure bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dictionary as a JSON API",
	Long: `Serve the dictionary over HTTP. Anyone can read and send suggestions;
editing needs the admin password (server.admin_password, or
LEXI_ADMIN_PASSWORD). With no password set the API is read-only.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from server.addr)")
	serveCmd.Flags().BoolVar(&serveSecure, "secure-cookies", false, "Mark the session cookie Secure (behind TLS)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	log := newLogger(cfg)
	gate := auth.New(cfg.Server.Password(), time.Duration(cfg.Server.SessionDays)*24*time.Hour)
	if !gate.Enabled() {
		ui.Warn("No admin password set: the API is read-only. Set one with `lexi config set server.admin_password`.")
	}

	srv := server.New(st.entries, st.suggestions, gate, server.Options{
		Collation:     cfg.Languages.CollationTag(),
		Logger:        log,
		SecureCookies: serveSecure,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	log.Info("stopped")
	return nil
}
