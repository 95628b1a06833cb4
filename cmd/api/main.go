package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sponza/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI()
	if err != nil {
		slog.Error("api bootstrap failed", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("api shutdown failed", "error", err.Error())
		}
	}()

	if err := app.Run(ctx); err != nil {
		slog.Error("api run failed", "error", err.Error())
		os.Exit(1)
	}
}
