package storage

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/elabz/job-ingestion/internal/xerrors"
)

// Session scopes one record's writes to a transaction: acquire, write,
// commit-or-rollback, release. No dangling resources on any exit path.
type Session struct {
	tx pgx.Tx
}

func (s *Store) OpenSession(ctx context.Context) (*Session, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, xerrors.Unavailable("opening session", err)
	}
	return &Session{tx: tx}, nil
}

// Close commits the session when err is nil, otherwise rolls back and
// returns the original error.
func (s *Session) Close(ctx context.Context, err error) error {
	if err != nil {
		_ = s.tx.Rollback(ctx)
		return err
	}
	if commitErr := s.tx.Commit(ctx); commitErr != nil {
		return xerrors.Internal("committing session", commitErr)
	}
	return nil
}
