package main

import (
	"context"
	"os"

	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
)

const migrationsDir = "migrations"

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	dbpool, dbErr := repository.NewDatabase(ctx, logger,
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if dbErr != nil {
		logger.ErrorContext(ctx, "Failed to connect to DB", sl.Err(dbErr))
		os.Exit(1)
	}
	defer dbpool.Close()

	dtb := stdlib.OpenDBFromPool(dbpool)
	defer dtb.Close()

	if migrationErr := goose.Up(dtb, migrationsDir); migrationErr != nil {
		logger.ErrorContext(ctx, "Failed to apply migrations", sl.Err(migrationErr))
		dbpool.Close()
		os.Exit(1) //nolint:gocritic // the pool is closed above
	}

	logger.InfoContext(ctx, "Migrations applied successfully", "dir", migrationsDir)
}
