package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/OpenNSW/formflow/internal/app"
	"github.com/OpenNSW/formflow/internal/config"
	"github.com/OpenNSW/formflow/internal/form"
	"github.com/OpenNSW/formflow/internal/handler"
)

var (
	entityID string
	userID   string
)

var orderCmd = &cobra.Command{
	Use:   "order --entity-id <id> [--user-id <id>]",
	Short: "Create an order for a contact.",
	Long: `Create an order for a contact by triggering the order workflow.
Identifiers may be given with or without surrounding braces, e.g. "{abc-123}".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHandler(cmd, handler.TypeOrder, form.StaticContext{Entity: entityID, User: userID})
	},
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Request an inventory quantity update.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHandler(cmd, handler.TypeInventory, form.StaticContext{})
	},
}

func init() {
	orderCmd.Flags().StringVar(&entityID, "entity-id", "", "identifier of the contact record")
	orderCmd.Flags().StringVar(&userID, "user-id", "", "identifier of the acting user")
}

// runHandler invokes one handler and waits until its outcome has been printed or the
// user interrupts.
func runHandler(cmd *cobra.Command, t handler.Type, fc form.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	// Close drains the notifications still queued on the loop.
	defer a.Close()

	h, err := a.Factory.Build(t)
	if err != nil {
		return err
	}

	inv, err := h.Invoke(ctx, handler.BasicHost{
		Context:  fc,
		Notifier: newConsoleNotifier(cmd.OutOrStdout()),
	})
	if err != nil {
		return err
	}

	select {
	case <-inv.Done():
	case <-ctx.Done():
		return context.Cause(ctx)
	}
	if inv.State() == handler.StateNotifiedError {
		return errors.New("workflow request failed")
	}
	return nil
}
