// Package app wires configuration, endpoints and the runtime collaborators shared by the
// server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/OpenNSW/formflow/internal/config"
	"github.com/OpenNSW/formflow/internal/endpoints"
	"github.com/OpenNSW/formflow/internal/eventloop"
	"github.com/OpenNSW/formflow/internal/handler"
	"github.com/OpenNSW/formflow/internal/hostbridge"
	"github.com/OpenNSW/formflow/internal/logging"
	"github.com/OpenNSW/formflow/internal/transport"
)

const shutdownTimeout = 30 * time.Second

// App holds the long-lived pieces every entry point needs.
type App struct {
	Config  *config.Config
	Loop    *eventloop.Loop
	Factory handler.Factory
}

// New installs the default logger, loads the endpoint registry and starts the event loop.
// Callers must Close the returned App.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	slog.SetDefault(logging.New(cfg.Log.Level, cfg.Log.Format))

	registry, err := endpoints.Load(ctx, cfg.Endpoints)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow endpoints: %w", err)
	}
	slog.Info("workflow endpoints loaded",
		"source", cfg.Endpoints.Source,
		"endpoints", registry.Names())

	loop := eventloop.New()
	deps := handler.Deps{
		Sender:    transport.NewClient(nil),
		Scheduler: loop,
	}
	return &App{
		Config:  cfg,
		Loop:    loop,
		Factory: handler.NewFactory(registry, deps, cfg.Handlers),
	}, nil
}

// Close drains the event loop. Results of requests still in flight are dropped.
func (a *App) Close() {
	a.Loop.Close()
}

// Serve runs the host bridge until ctx is cancelled, then shuts the HTTP server down
// before closing the event loop.
func (a *App) Serve(ctx context.Context) error {
	cfg := a.Config

	slog.Info("CORS configuration",
		"allowed_origins", cfg.CORS.AllowedOrigins,
		"allowed_methods", cfg.CORS.AllowedMethods,
		"allowed_headers", cfg.CORS.AllowedHeaders,
		"allow_credentials", cfg.CORS.AllowCredentials,
		"max_age", cfg.CORS.MaxAge,
	)

	bridge, err := hostbridge.NewServer(a.Factory, hostbridge.NewInbox(cfg.Server.InboxSize), cfg.CORS)
	if err != nil {
		return fmt.Errorf("failed to create host bridge: %w", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           bridge.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	}
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	} else {
		slog.Info("server gracefully stopped")
	}

	slog.Info("stopping event loop...")
	a.Close()

	slog.Info("server stopped")
	return nil
}
