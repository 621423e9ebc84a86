package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OpenNSW/formflow/internal/app"
	"github.com/OpenNSW/formflow/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the host bridge HTTP server.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		if err := a.Serve(ctx); err != nil {
			a.Close()
			return err
		}
		return nil
	},
}
