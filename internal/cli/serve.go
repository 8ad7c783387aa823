package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/runnerr0/homehub/internal/api"
	"github.com/runnerr0/homehub/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	return withApp(c.globals, func(a *app) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return c.run(ctx, a)
	})
}

// run serves until ctx is done or the server fails.
func (c *ServeCommand) run(ctx context.Context, a *app) error {
	cfg := a.cfg.Server
	if c.Host != "" {
		cfg.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Port = c.Port
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid --port %d", cfg.Port)
	}

	handler := api.NewHandler(a.catalog, a.favorites, a.cfg.Mortgage)
	srv := api.NewServer(cfg, handler, a.log)

	unsubscribe := a.favorites.Subscribe(func() {
		a.log.Debug("Favorites changed", logger.Fields{"count": a.favorites.Count(context.Background())})
	})
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	if !jsonOutput(c.globals) {
		fmt.Printf("HomeHub API listening on http://%s/api/v1 (Ctrl+C to stop)\n", srv.Addr())
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("stop server: %w", err)
	}
	return <-errCh
}
