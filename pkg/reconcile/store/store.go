package store

import (
	"context"
	"time"
)

// DocumentStore gives read access to retrieved digests.
type DocumentStore interface {
	// GetDocument returns the digest for sourceID; ok is false when absent.
	GetDocument(ctx context.Context, sourceID string) (Document, bool, error)
}

// RecordStore gives access to the records fanned out from digests.
type RecordStore interface {
	// RecordsBySource returns every record keyed by its source ID.
	RecordsBySource(ctx context.Context) (map[string][]Record, error)
	// ApplyUpdate replaces a record body.
	ApplyUpdate(ctx context.Context, u Update) error
}

// Store is the full persistence interface used by the CLI.
type Store interface {
	DocumentStore
	RecordStore
	Close() error

	UpsertDocument(ctx context.Context, d Document) error
	UpsertRecord(ctx context.Context, r Record) error
	GetRecord(ctx context.Context, id string) (Record, bool, error)
	UpdatesForRun(ctx context.Context, runID string) ([]Update, error)
}

// Document is a retrieved digest, identified by its source (retrieval URL).
type Document struct {
	SourceID  string
	RawText   string
	FetchedAt time.Time
}

// Record is one fanned-out record derived from a digest.
type Record struct {
	ID       string
	Title    string
	Body     string
	SourceID string
}

// Update is a body replacement together with its audit data.
type Update struct {
	RunID        string
	RecordID     string
	PreviousBody string
	NewBody      string
	Score        float64
	AppliedAt    time.Time
}
