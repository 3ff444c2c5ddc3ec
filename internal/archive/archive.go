// Package archive appends every ingested record to ClickHouse for
// analytics. Writes are best-effort: failures are logged by the caller and
// never affect batch counters.
package archive

import (
	"context"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"github.com/elabz/job-ingestion/internal/xerrors"
)

type Options struct {
	DSN             string
	Username        string
	Password        string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Entry is one archived ingestion outcome.
type Entry struct {
	BatchID    string
	Index      int
	ExternalID string
	SchemaTag  string
	Approved   bool
	Reasons    []string
	RawData    string
	IngestedAt time.Time
}

// Sink writes entries to the ingested_records table.
type Sink struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

func New(ctx context.Context, opts Options, logger *zap.Logger) (*Sink, error) {
	hostAndParams := strings.Split(opts.DSN, "?")
	host := hostAndParams[0]

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     []string{host},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		DialTimeout:     time.Second * 30,
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
	})
	if err != nil {
		return nil, xerrors.Unavailable("creating clickhouse connection", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, xerrors.Unavailable("pinging clickhouse", err)
	}

	return &Sink{conn: conn, logger: logger}, nil
}

func (s *Sink) Close() error {
	return s.conn.Close()
}

// EnsureSchema creates the archive table when missing.
func (s *Sink) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ingested_records (
			batch_id String,
			record_index Int32,
			external_id String,
			schema_tag String,
			approved Bool,
			reasons Array(String),
			raw_data String,
			ingested_at DateTime
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(ingested_at)
		ORDER BY (batch_id, record_index)
		SETTINGS index_granularity = 8192
	`
	if err := s.conn.Exec(ctx, query); err != nil {
		return xerrors.Internal("creating ingested_records table", err)
	}
	return nil
}

// Archive appends one entry.
func (s *Sink) Archive(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO ingested_records (
			batch_id, record_index, external_id, schema_tag,
			approved, reasons, raw_data, ingested_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if err := s.conn.Exec(ctx, query,
		entry.BatchID,
		int32(entry.Index),
		entry.ExternalID,
		entry.SchemaTag,
		entry.Approved,
		entry.Reasons,
		entry.RawData,
		entry.IngestedAt,
	); err != nil {
		return xerrors.Internal("inserting archive entry", err)
	}
	return nil
}
