package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	pollservice "agora/contexts/governance/poll-service"
	pollpostgres "agora/contexts/governance/poll-service/adapters/postgres"
	pollworkers "agora/contexts/governance/poll-service/application/workers"
	voterregistry "agora/contexts/identity-access/voter-registry"
	"agora/contexts/identity-access/voter-registry/adapters/fake"
	registrypostgres "agora/contexts/identity-access/voter-registry/adapters/postgres"
	registryports "agora/contexts/identity-access/voter-registry/ports"
	"agora/internal/platform/config"
	"agora/internal/platform/db"
	"agora/internal/platform/httpserver"
	"agora/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  pollworkers.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	registryRepo := registrypostgres.NewRepository(pg.DB, logger)
	registryModule := voterregistry.NewModule(voterregistry.Dependencies{
		Voters:      registryRepo,
		Eligibility: eligibilityClient(cfg),
		Clock:       registrypostgres.SystemClock{},
		IDGen:       registrypostgres.UUIDGenerator{},
		Logger:      logger,
	})

	pollRepo := pollpostgres.NewRepository(pg.DB, logger)
	pollModule := pollservice.NewModule(pollservice.Dependencies{
		Topics:   pollRepo,
		Sessions: pollRepo,
		Votes:    pollRepo,
		Voters:   registryRepo,
		Outbox:   pollRepo,
		UoW:      pollRepo,
		Clock:    pollpostgres.SystemClock{},
		IDGen:    pollpostgres.UUIDGenerator{},
		Logger:   logger,
	})

	server := httpserver.New(pollModule, registryModule, logger, normalizeAddr(cfg.HTTPPort))
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

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := pollpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: pollworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     pollpostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
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
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
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

func eligibilityClient(cfg config.Config) registryports.EligibilityClient {
	if cfg.EligibilityAlwaysAble {
		return fake.AlwaysAbleClient{}
	}
	return fake.NewEligibilityClient(time.Now().UnixNano())
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
