package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	recommendationservice "sponza/contexts/matchmaking/recommendation-service"
	postgresadapter "sponza/contexts/matchmaking/recommendation-service/adapters/postgres"
	workerapp "sponza/contexts/matchmaking/recommendation-service/application/workers"
	"sponza/internal/platform/config"
	"sponza/internal/platform/db"
	"sponza/internal/platform/httpserver"
	"sponza/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	expirer       workerapp.CampaignExpirer
	outboxRelay   workerapp.OutboxRelay
	enableExpirer bool
	enableRelay   bool
	pollInterval  time.Duration
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	// Without a DSN the API serves the seeded in-memory adapter, which keeps
	// local development and demos runnable with no infrastructure.
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		module := recommendationservice.NewInMemoryModule(logger)
		logger.Warn("POSTGRES_DSN not set, serving in-memory store",
			"event", "bootstrap_memory_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
		return &APIApp{server: server, logger: logger}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := recommendationservice.NewModule(recommendationservice.Dependencies{
		Influencers:  repo,
		Campaigns:    repo,
		Applications: repo,
		Clock:        postgresadapter.SystemClock{},
		Logger:       logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	repo := postgresadapter.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		expirer: workerapp.CampaignExpirer{
			Campaigns: repo,
			Clock:     postgresadapter.SystemClock{},
			BatchSize: cfg.ExpirerBatchSize,
			Logger:    logger,
		},
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: bus,
			Clock:     postgresadapter.SystemClock{},
			BatchSize: cfg.ExpirerBatchSize,
			Logger:    logger,
		},
		enableExpirer: cfg.EnableCampaignExpirer,
		enableRelay:   cfg.EnableOutboxRelay,
		pollInterval:  cfg.WorkerPollInterval,
		logger:        logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"expirer_enabled", w.enableExpirer,
		"relay_enabled", w.enableRelay,
	)

	for {
		if w.enableExpirer {
			if err := w.expirer.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.enableRelay {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
