package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/elabz/job-ingestion/internal/archive"
	"github.com/elabz/job-ingestion/internal/config"
	"github.com/elabz/job-ingestion/internal/storage"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	store, err := storage.New(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	if cfg.ClickHouseDSN != "" {
		sink, err := archive.New(ctx, archive.Options{
			DSN:             cfg.ClickHouseDSN,
			Username:        cfg.ClickHouseUsername,
			Password:        cfg.ClickHousePassword,
			Database:        cfg.ClickHouseDatabase,
			MaxOpenConns:    2,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Minute,
		}, logger)
		if err != nil {
			logger.Fatal("failed to connect to clickhouse", zap.Error(err))
		}
		defer sink.Close()

		if err := sink.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to create archive table", zap.Error(err))
		}
	}

	logger.Info("all migrations completed successfully")
}
