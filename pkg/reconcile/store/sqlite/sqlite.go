package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/reconcile/pkg/reconcile/internalerr"
	"github.com/cognicore/reconcile/pkg/reconcile/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
	source_id TEXT PRIMARY KEY,
	raw_text TEXT NOT NULL,
	fetched_at TEXT
);

CREATE TABLE IF NOT EXISTS records (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT UNIQUE NOT NULL,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	source_id TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_source ON records(source_id);

CREATE TABLE IF NOT EXISTS record_updates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	record_id TEXT NOT NULL,
	previous_body TEXT NOT NULL,
	new_body TEXT NOT NULL,
	score REAL NOT NULL,
	applied_at TEXT NOT NULL,
	FOREIGN KEY(record_id) REFERENCES records(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_record_updates_run ON record_updates(run_id);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertDocument inserts or updates a document
func (s *sqliteStore) UpsertDocument(ctx context.Context, d store.Document) error {
	if d.SourceID == "" {
		return fmt.Errorf("document source id: %w", internalerr.ErrInvalidInput)
	}
	fetched := ""
	if !d.FetchedAt.IsZero() {
		fetched = d.FetchedAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO documents (source_id, raw_text, fetched_at) VALUES (?, ?, ?)
ON CONFLICT(source_id) DO UPDATE SET
	raw_text=excluded.raw_text,
	fetched_at=excluded.fetched_at;
`, d.SourceID, d.RawText, fetched)
	return err
}

// GetDocument retrieves a document by source ID
func (s *sqliteStore) GetDocument(ctx context.Context, sourceID string) (store.Document, bool, error) {
	var (
		d       store.Document
		fetched sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT source_id, raw_text, fetched_at FROM documents WHERE source_id = ?`, sourceID,
	).Scan(&d.SourceID, &d.RawText, &fetched)
	if err == sql.ErrNoRows {
		return store.Document{}, false, nil
	}
	if err != nil {
		return store.Document{}, false, err
	}
	d.FetchedAt = parseTime(fetched.String)
	return d, true, nil
}

// UpsertRecord inserts or updates a record, keeping its original position
func (s *sqliteStore) UpsertRecord(ctx context.Context, r store.Record) error {
	if r.ID == "" {
		return fmt.Errorf("record id: %w", internalerr.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO records (id, title, body, source_id) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title=excluded.title,
	body=excluded.body,
	source_id=excluded.source_id;
`, r.ID, r.Title, r.Body, r.SourceID)
	return err
}

// GetRecord retrieves a record by ID
func (s *sqliteStore) GetRecord(ctx context.Context, id string) (store.Record, bool, error) {
	var r store.Record
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, body, source_id FROM records WHERE id = ?`, id,
	).Scan(&r.ID, &r.Title, &r.Body, &r.SourceID)
	if err == sql.ErrNoRows {
		return store.Record{}, false, nil
	}
	if err != nil {
		return store.Record{}, false, err
	}
	return r, true, nil
}

// RecordsBySource groups all records with a source ID, each group in insertion order
func (s *sqliteStore) RecordsBySource(ctx context.Context) (map[string][]store.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, body, source_id
FROM records
WHERE source_id != ''
ORDER BY seq;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]store.Record)
	for rows.Next() {
		var r store.Record
		if err := rows.Scan(&r.ID, &r.Title, &r.Body, &r.SourceID); err != nil {
			return nil, err
		}
		out[r.SourceID] = append(out[r.SourceID], r)
	}
	return out, rows.Err()
}

// ApplyUpdate replaces a record body and writes an audit row in one transaction
func (s *sqliteStore) ApplyUpdate(ctx context.Context, u store.Update) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var previous string
	err = tx.QueryRowContext(ctx, `SELECT body FROM records WHERE id = ?`, u.RecordID).Scan(&previous)
	if err == sql.ErrNoRows {
		return fmt.Errorf("record %s: %w", u.RecordID, internalerr.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE records SET body = ? WHERE id = ?`, u.NewBody, u.RecordID); err != nil {
		return err
	}

	applied := u.AppliedAt
	if applied.IsZero() {
		applied = time.Now()
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO record_updates (run_id, record_id, previous_body, new_body, score, applied_at)
VALUES (?, ?, ?, ?, ?, ?);
`, u.RunID, u.RecordID, previous, u.NewBody, u.Score, applied.UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdatesForRun lists the audit rows of one run in the order they were applied
func (s *sqliteStore) UpdatesForRun(ctx context.Context, runID string) ([]store.Update, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, record_id, previous_body, new_body, score, applied_at
FROM record_updates
WHERE run_id = ?
ORDER BY id;
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Update
	for rows.Next() {
		var (
			u       store.Update
			applied string
		)
		if err := rows.Scan(&u.RunID, &u.RecordID, &u.PreviousBody, &u.NewBody, &u.Score, &applied); err != nil {
			return nil, err
		}
		u.AppliedAt = parseTime(applied)
		out = append(out, u)
	}
	return out, rows.Err()
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
