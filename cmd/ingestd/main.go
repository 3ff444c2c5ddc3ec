package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/elabz/job-ingestion/internal/api"
	"github.com/elabz/job-ingestion/internal/approval"
	"github.com/elabz/job-ingestion/internal/approval/rules"
	"github.com/elabz/job-ingestion/internal/archive"
	"github.com/elabz/job-ingestion/internal/config"
	"github.com/elabz/job-ingestion/internal/ingest"
	"github.com/elabz/job-ingestion/internal/mapper"
	"github.com/elabz/job-ingestion/internal/messaging"
	"github.com/elabz/job-ingestion/internal/status"
	"github.com/elabz/job-ingestion/internal/storage"
	"github.com/elabz/job-ingestion/internal/telemetry"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newStore(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (*storage.Store, error) {
	store, err := storage.New(context.Background(), cfg.PostgresDSN, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			store.Close()
			return nil
		},
	})
	return store, nil
}

// newArchiveSink is optional: without a ClickHouse DSN the pipeline runs
// with archiving disabled.
func newArchiveSink(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (*archive.Sink, error) {
	if cfg.ClickHouseDSN == "" {
		logger.Info("clickhouse not configured, archiving disabled")
		return nil, nil
	}
	sink, err := archive.New(context.Background(), archive.Options{
		DSN:             cfg.ClickHouseDSN,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	}, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return sink.Close()
		},
	})
	return sink, nil
}

// newNATSConnection is optional: without a NATS URL batches arrive over
// HTTP only and decision events are not emitted.
func newNATSConnection(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (*nats.Conn, error) {
	if cfg.NATSURL == "" {
		logger.Info("NATS not configured, messaging disabled")
		return nil, nil
	}
	conn, err := messaging.Connect(cfg.NATSURL, cfg.NATSConnTimeout)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			conn.Close()
			return nil
		},
	})
	return conn, nil
}

func newStatusStore(cfg *config.Config, logger *zap.Logger) status.Store {
	if cfg.RedisAddr == "" {
		logger.Info("redis not configured, using in-memory status store")
		return status.NewMemoryStore()
	}
	return status.NewRedisStore(status.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.StatusTTL,
	})
}

func newEngine(cfg *config.Config) (*approval.Engine, error) {
	return approval.NewEngine(rules.Default(rules.Config{
		MinDescriptionLength: cfg.MinDescriptionLength,
		MinAnnualSalaryUSD:   cfg.MinAnnualSalaryUSD,
		MinHourlyRateUSD:     cfg.MinHourlyRateUSD,
	})...)
}

func newOrchestrator(
	cfg *config.Config,
	m *mapper.Mapper,
	engine *approval.Engine,
	store *storage.Store,
	statuses status.Store,
	conn *nats.Conn,
	sink *archive.Sink,
	logger *zap.Logger,
) *ingest.Orchestrator {
	var publisher ingest.DecisionPublisher
	if conn != nil {
		publisher = messaging.NewPublisher(conn, logger)
	}
	var archiver ingest.Archiver
	if sink != nil {
		archiver = sink
	}
	return ingest.New(m, engine, store, statuses, publisher, archiver, logger)
}

func startHTTPServer(server *api.Server, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(),
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("starting HTTP server", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})
}

func ensureSchemas(store *storage.Store, sink *archive.Sink, logger *zap.Logger) error {
	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	if sink != nil {
		if err := sink.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	logger.Info("storage schemas ready")
	return nil
}

func initTracing(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) error {
	if cfg.OTELCollectorURL == "" {
		return nil
	}
	shutdown, err := telemetry.InitTracer(context.Background(), "job-ingestion-service", cfg.OTELCollectorURL)
	if err != nil {
		return err
	}
	logger.Info("tracing initialized", zap.String("collector", cfg.OTELCollectorURL))
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			shutdown()
			return nil
		},
	})
	return nil
}

func registerSubscriptions(conn *nats.Conn, orchestrator *ingest.Orchestrator, logger *zap.Logger, lc fx.Lifecycle) error {
	if conn == nil {
		return nil
	}
	handler := messaging.NewHandler(logger, conn, orchestrator)
	return handler.RegisterSubscriptions(lc)
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newStore,
			newArchiveSink,
			newNATSConnection,
			newStatusStore,
			newEngine,
			mapper.New,
			newOrchestrator,
			api.New,
		),
		fx.Invoke(
			initTracing,
			ensureSchemas,
			startHTTPServer,
			registerSubscriptions,
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
