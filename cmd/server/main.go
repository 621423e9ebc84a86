package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/OpenNSW/formflow/internal/app"
	"github.com/OpenNSW/formflow/internal/config"
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Cancelled on interrupt to start the graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}

	slog.Info("server configuration",
		"port", cfg.Server.Port,
		"inbox_size", cfg.Server.InboxSize,
	)

	if err := a.Serve(ctx); err != nil {
		a.Close()
		log.Fatalf("server error: %v", err)
	}
}
