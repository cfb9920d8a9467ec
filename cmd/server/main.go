package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/UnknownOlympus/athena/internal/server"
	"github.com/UnknownOlympus/athena/internal/services/employees"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// main is the entry point of the API server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := sl.New(cfg.Env, os.Stdout)

	if cfg.Env != sl.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	store, closeStore, err := openStore(ctx, logger, cfg, appMetrics)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open employee store", sl.Err(err))
		os.Exit(1)
	}
	defer closeStore()

	staff := employees.NewStaff(logger, store, appMetrics)
	api := server.New(logger, cfg.HTTP, staff, appMetrics)

	grp, grpCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		return api.Run(grpCtx)
	})

	grp.Go(func() error {
		return server.StartMonitoringServer(
			grpCtx, logger, reg, store, cfg.HTTP.MonitoringPort, cfg.HTTP.ShutdownTimeout)
	})

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "storage", cfg.Storage.Driver)

	if err = grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "Application stopped with error", sl.Err(err))
		closeStore()
		os.Exit(1) //nolint:gocritic // the store is closed above
	}

	logger.InfoContext(ctx, "Application stopped gracefully...")
}

// openStore returns the configured employee store and a function releasing it.
func openStore(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	appMetrics *metrics.Metrics,
) (repository.EmployeeRepoIface, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		dbpool, err := repository.NewDatabase(ctx, log,
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
		}

		return repository.NewEmployeeRepository(dbpool, appMetrics), dbpool.Close, nil
	default:
		var seed []models.Employee
		if cfg.Storage.Seed {
			seed = repository.DefaultSeed()
		}

		return repository.NewMemoryRepository(seed...), func() {}, nil
	}
}
