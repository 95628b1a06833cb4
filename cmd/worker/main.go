package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sponza/internal/app/bootstrap"
)

// Worker process entrypoint: campaign expiration sweeps and outbox relay.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildWorker()
	if err != nil {
		slog.Error("worker bootstrap failed", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("worker shutdown failed", "error", err.Error())
		}
	}()

	if err := app.Run(ctx); err != nil {
		slog.Error("worker run failed", "error", err.Error())
		os.Exit(1)
	}
}
