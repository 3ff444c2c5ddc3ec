package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/elabz/job-ingestion/internal/xerrors"
)

type Migration struct {
	Version     int
	Description string
	Up          string
	Down        string
}

type Migrator struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, logger *zap.Logger) *Migrator {
	return &Migrator{pool: pool, logger: logger}
}

func (m *Migrator) CreateMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := m.pool.Exec(ctx, query); err != nil {
		return xerrors.Internal("creating migrations table", err)
	}
	return nil
}

func (m *Migrator) GetAppliedMigrations(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.pool.Query(ctx, "SELECT version, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, xerrors.Internal("querying migrations", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, xerrors.Internal("scanning migration row", err)
		}
		applied[version] = appliedAt
	}
	return applied, rows.Err()
}

func (m *Migrator) ApplyMigration(ctx context.Context, migration Migration) error {
	if _, err := m.pool.Exec(ctx, migration.Up); err != nil {
		return xerrors.Internal("applying migration", err)
	}
	if _, err := m.pool.Exec(ctx,
		"INSERT INTO schema_migrations (version, description) VALUES ($1, $2)",
		migration.Version, migration.Description); err != nil {
		return xerrors.Internal("recording migration", err)
	}
	return nil
}

func (m *Migrator) RollbackMigration(ctx context.Context, migration Migration) error {
	if _, err := m.pool.Exec(ctx, migration.Down); err != nil {
		return xerrors.Internal("rolling back migration", err)
	}
	if _, err := m.pool.Exec(ctx,
		"DELETE FROM schema_migrations WHERE version = $1", migration.Version); err != nil {
		return xerrors.Internal("removing migration record", err)
	}
	return nil
}

// canonicalColumnsDDL is shared by the jobs and rejected_jobs tables.
const canonicalColumnsDDL = `
	external_id VARCHAR(255) NOT NULL,
	title TEXT NOT NULL,
	short_description TEXT,
	full_description TEXT,
	salary_min NUMERIC(12, 2),
	salary_max NUMERIC(12, 2),
	estimated_salary_min NUMERIC(12, 2),
	estimated_salary_max NUMERIC(12, 2),
	base_salary VARCHAR(100),
	salary_currency VARCHAR(8) NOT NULL DEFAULT 'USD',
	salary_unit VARCHAR(16) NOT NULL DEFAULT 'annual',
	is_salary_estimate BOOLEAN,
	is_salary_confidential BOOLEAN,
	company_name VARCHAR(255),
	is_company_confidential BOOLEAN,
	primary_location VARCHAR(255),
	zipcode VARCHAR(20),
	county VARCHAR(100),
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	years_experience VARCHAR(50),
	years_experience_id INT,
	industry_name VARCHAR(255),
	industry_id INT,
	job_type_id INT,
	remote_flag VARCHAR(50),
	posting_date TIMESTAMPTZ,
	entry_date TIMESTAMPTZ,
	update_date TIMESTAMPTZ,
	external_application_url TEXT,
	seo_job_link TEXT,
	seo_location VARCHAR(255),
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	allows_external_apply BOOLEAN NOT NULL DEFAULT TRUE,
	is_promoted BOOLEAN NOT NULL DEFAULT FALSE,
	is_featured BOOLEAN NOT NULL DEFAULT FALSE,
	is_marketing BOOLEAN NOT NULL DEFAULT FALSE,
	recruiter_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
	score DOUBLE PRECISION,
	locations_data JSONB,
	classifications_data JSONB,
	posted_dates JSONB,
	candidate_residency JSONB,
	questions JSONB,
	featured_data JSONB,
	additional_metadata JSONB,
	collapse_key VARCHAR(255),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()`

var createJobsTables = Migration{
	Version:     1,
	Description: "Create jobs and rejected_jobs tables",
	Up: `
		CREATE TABLE IF NOT EXISTS jobs (
			id BIGSERIAL PRIMARY KEY,` + canonicalColumnsDDL + `,
			approval_status VARCHAR(16) NOT NULL DEFAULT 'APPROVED'
		);
		CREATE INDEX IF NOT EXISTS idx_jobs_external_id ON jobs (external_id);
		CREATE TABLE IF NOT EXISTS rejected_jobs (
			id BIGSERIAL PRIMARY KEY,` + canonicalColumnsDDL + `,
			rejection_reasons TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rejected_jobs_external_id ON rejected_jobs (external_id);
	`,
	Down: `DROP TABLE IF EXISTS jobs; DROP TABLE IF EXISTS rejected_jobs;`,
}

var createCollapseKeyIndexes = Migration{
	Version:     2,
	Description: "Index collapse_key for dedup lookups",
	Up: `
		CREATE INDEX IF NOT EXISTS idx_jobs_collapse_key ON jobs (collapse_key);
		CREATE INDEX IF NOT EXISTS idx_rejected_jobs_collapse_key ON rejected_jobs (collapse_key);
	`,
	Down: `DROP INDEX IF EXISTS idx_jobs_collapse_key; DROP INDEX IF EXISTS idx_rejected_jobs_collapse_key;`,
}

// All returns the migration set in order.
func All() []Migration {
	return []Migration{
		createJobsTables,
		createCollapseKeyIndexes,
	}
}
