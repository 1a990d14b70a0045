package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteSink is the local, append-only fallback store
type SQLiteSink struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (and creates if needed) the local fallback database at path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("persistence: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persistence: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("persistence: %s: %w", p, err)
		}
	}

	s := &SQLiteSink{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSink) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS assessments (
			id              TEXT PRIMARY KEY,
			created_at      TEXT NOT NULL,
			catalog         TEXT NOT NULL,
			respondent_hash TEXT NOT NULL DEFAULT '',
			gap_count       INTEGER NOT NULL DEFAULT 0,
			payload         TEXT NOT NULL,
			synced_at       TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_assessments_pending ON assessments(synced_at, created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("persistence: migrate: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// Name implements Sink.
func (s *SQLiteSink) Name() string { return "local file " + s.path }

// Append implements Sink.
func (s *SQLiteSink) Append(ctx context.Context, rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("persistence: marshal record: %w", err)
	}

	gaps := 0
	if rec.Result != nil {
		gaps = len(rec.Result.Gaps)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, created_at, catalog, respondent_hash, gap_count, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.CreatedAt.UTC().Format(timeLayout), rec.Catalog, rec.RespondentHash, gaps, string(payload),
	)
	if err != nil {
		return fmt.Errorf("persistence: insert record: %w", err)
	}
	return nil
}

// Get returns a locally stored record, or nil when it does not exist.
func (s *SQLiteSink) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM assessments WHERE id = ?`, id.String()).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persistence: get record: %w", err)
	}
	return decodeRecord(payload)
}

// List returns the most recent records, newest first.
func (s *SQLiteSink) List(ctx context.Context, limit int) ([]*Record, error) {
	return s.query(ctx, `SELECT payload FROM assessments ORDER BY created_at DESC LIMIT ?`, limit)
}

// Pending returns records not yet replayed to a remote sink, oldest first.
func (s *SQLiteSink) Pending(ctx context.Context, limit int) ([]*Record, error) {
	return s.query(ctx, `SELECT payload FROM assessments WHERE synced_at IS NULL ORDER BY created_at ASC LIMIT ?`, limit)
}

// MarkSynced records that a locally held record reached the remote sink.
func (s *SQLiteSink) MarkSynced(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE assessments SET synced_at = ? WHERE id = ?`,
		time.Now().UTC().Format(timeLayout), id,
	)
	if err != nil {
		return fmt.Errorf("persistence: mark synced: %w", err)
	}
	return nil
}

func (s *SQLiteSink) query(ctx context.Context, q string, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("persistence: query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("persistence: scan record: %w", err)
		}
		rec, err := decodeRecord(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func decodeRecord(payload string) (*Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("persistence: decode record: %w", err)
	}
	return &rec, nil
}
