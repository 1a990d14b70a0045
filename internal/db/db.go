// Package db provides PostgreSQL database access for assessment storage.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS assessments (
	id              UUID PRIMARY KEY,
	catalog         TEXT NOT NULL,
	respondent_hash TEXT NOT NULL DEFAULT '',
	answers         JSONB NOT NULL,
	measurements    JSONB,
	result          JSONB NOT NULL,
	summary         TEXT NOT NULL DEFAULT '',
	gap_count       INTEGER NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_assessments_respondent ON assessments (respondent_hash);
`

// EnsureSchema creates the assessments table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveAssessment inserts an assessment. Saving the same ID twice is a no-op.
func (db *DB) SaveAssessment(ctx context.Context, a *Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO assessments (id, catalog, respondent_hash, answers, measurements, result, summary, gap_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()))
		 ON CONFLICT (id) DO NOTHING`,
		a.ID, a.Catalog, a.RespondentHash, a.Answers, nullableJSON(a.Measurements), a.Result, a.Summary, a.GapCount, nullableTime(a),
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment %s: %w", a.ID, err)
	}
	return nil
}

// GetAssessment retrieves an assessment by ID, or nil when it does not exist
func (db *DB) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	var a Assessment
	var answers, measurements, result []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, catalog, respondent_hash, answers, measurements, result, summary, gap_count, created_at
		 FROM assessments WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Catalog, &a.RespondentHash, &answers, &measurements, &result, &a.Summary, &a.GapCount, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	a.Answers = answers
	a.Measurements = measurements
	a.Result = result
	return &a, nil
}

// ListAssessments returns the most recent assessments, optionally filtered by respondent
func (db *DB) ListAssessments(ctx context.Context, filters AssessmentFilters) ([]Assessment, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, catalog, respondent_hash, summary, gap_count, created_at FROM assessments`
	args := []any{}
	if filters.RespondentHash != "" {
		query += ` WHERE respondent_hash = $1`
		args = append(args, filters.RespondentHash)
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.Catalog, &a.RespondentHash, &a.Summary, &a.GapCount, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

func nullableTime(a *Assessment) any {
	if a.CreatedAt.IsZero() {
		return nil
	}
	return a.CreatedAt
}
