package app

import (
	"context"
	"fmt"
	"time"

	"campusnet-service/internal/config"
	"campusnet-service/internal/domain"
	"campusnet-service/internal/generator"
	"campusnet-service/internal/logging"
	"campusnet-service/internal/repository/memory"
	"campusnet-service/internal/repository/postgres"
	"campusnet-service/internal/stats"
	"campusnet-service/internal/timeline"
	"campusnet-service/internal/worker"
)

const (
	shutdownTimeout = 30 * time.Second
	dbPingTimeout   = 5 * time.Second
)

func provideConfig() (*config.Config, error) { return config.Load() }

func provideLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(cfg.LogLevel)
}

func provideShutdownManager(logger *logging.Logger) *ShutdownManager {
	return NewShutdownManager(shutdownTimeout, logger)
}

func provideRepository(ctx context.Context, cfg *config.Config, logger *logging.Logger) (domain.MeasurementRepository, func(), error) {
	switch cfg.DbDriver {
	case config.DriverPostgres:
		repo, err := postgres.New(ctx, postgres.Config{DSN: cfg.DbDsn, PingTimeout: dbPingTimeout})
		if err != nil {
			return nil, nil, fmt.Errorf("postgres repository: %w", err)
		}
		logger.Info("using postgres repository")
		return repo, func() { _ = repo.Close() }, nil
	default:
		logger.Info("using in-memory repository")
		return memory.New(), func() {}, nil
	}
}

func provideTimeline(cfg *config.Config, logger *logging.Logger) (*timeline.Store, func(), error) {
	store, err := timeline.Open(cfg.TimelinePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open timeline store: %w", err)
	}
	if cfg.TimelinePath == "" {
		logger.Info("timeline store running in memory")
	} else {
		logger.Info("timeline store opened", "path", cfg.TimelinePath)
	}
	return store, func() { _ = store.Close() }, nil
}

func provideStatsService(repo domain.MeasurementRepository) *stats.Service {
	return stats.New(repo)
}

func provideGeneratorConfig(cfg *config.Config) generator.Config {
	return generator.Config{
		Interval:  cfg.Sampler.Interval,
		BatchSize: cfg.Sampler.BatchSize,
	}
}

func provideWorkerPool(cfg *config.Config, repo domain.MeasurementRepository, tl *timeline.Store, logger *logging.Logger) *worker.Pool {
	return worker.New(cfg.WorkerPoolSize, repo, tl, logger)
}
