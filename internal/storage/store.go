// Package storage persists approved and rejected jobs in Postgres. Both
// tables are insert-only from the pipeline's perspective.
package storage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/elabz/job-ingestion/internal/models"
	"github.com/elabz/job-ingestion/internal/xerrors"
)

// Store wraps a pgx pool and exposes the narrow repository surface the
// orchestrator needs.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func New(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, xerrors.InvalidInput("parsing postgres dsn", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, xerrors.Unavailable("connecting to postgres", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, xerrors.Unavailable("pinging postgres", err)
	}
	return &Store{pool: pool, logger: logger}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema applies any pending migrations.
func (s *Store) EnsureSchema(ctx context.Context) error {
	migrator := NewMigrator(s.pool, s.logger)
	if err := migrator.CreateMigrationsTable(ctx); err != nil {
		return err
	}
	applied, err := migrator.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	for _, migration := range All() {
		if _, ok := applied[migration.Version]; ok {
			continue
		}
		s.logger.Info("applying migration",
			zap.Int("version", migration.Version),
			zap.String("description", migration.Description))
		if err := migrator.ApplyMigration(ctx, migration); err != nil {
			return err
		}
	}
	return nil
}

// SaveApproved writes one approved job inside a scoped session.
func (s *Store) SaveApproved(ctx context.Context, rec models.CanonicalRecord) error {
	session, err := s.OpenSession(ctx)
	if err != nil {
		return err
	}
	return session.Close(ctx, session.SaveJob(ctx, rec))
}

// SaveRejected writes one rejected job with its reasons inside a scoped
// session.
func (s *Store) SaveRejected(ctx context.Context, rec models.CanonicalRecord, reasons string) error {
	session, err := s.OpenSession(ctx)
	if err != nil {
		return err
	}
	return session.Close(ctx, session.SaveRejectedJob(ctx, rec, reasons))
}
