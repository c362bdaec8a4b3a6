package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/reconcile/pkg/reconcile/internalerr"
	"github.com/cognicore/reconcile/pkg/reconcile/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	docs    map[string]store.Document
	records map[string]store.Record
	order   []string // record IDs in insertion order
	updates []store.Update
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		docs:    make(map[string]store.Document),
		records: make(map[string]store.Record),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertDocument inserts or replaces a document, keyed by source ID.
func (s *Store) UpsertDocument(ctx context.Context, d store.Document) error {
	if d.SourceID == "" {
		return fmt.Errorf("document source id: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.SourceID] = d
	return nil
}

// GetDocument returns a document by source ID.
func (s *Store) GetDocument(ctx context.Context, sourceID string) (store.Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[sourceID]
	return d, ok, nil
}

// UpsertRecord inserts or replaces a record, keyed by ID.
func (s *Store) UpsertRecord(ctx context.Context, r store.Record) error {
	if r.ID == "" {
		return fmt.Errorf("record id: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.records[r.ID] = r
	return nil
}

// GetRecord returns a record by ID.
func (s *Store) GetRecord(ctx context.Context, id string) (store.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok, nil
}

// RecordsBySource groups records by source ID, each group in insertion order.
func (s *Store) RecordsBySource(ctx context.Context) (map[string][]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]store.Record)
	for _, id := range s.order {
		r := s.records[id]
		if r.SourceID == "" {
			continue
		}
		out[r.SourceID] = append(out[r.SourceID], r)
	}
	return out, nil
}

// ApplyUpdate replaces a record body and keeps the update for auditing.
func (s *Store) ApplyUpdate(ctx context.Context, u store.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[u.RecordID]
	if !ok {
		return fmt.Errorf("record %s: %w", u.RecordID, internalerr.ErrNotFound)
	}
	if u.AppliedAt.IsZero() {
		u.AppliedAt = time.Now().UTC()
	}
	u.PreviousBody = r.Body
	r.Body = u.NewBody
	s.records[u.RecordID] = r
	s.updates = append(s.updates, u)
	return nil
}

// UpdatesForRun returns applied updates of one run, oldest first.
func (s *Store) UpdatesForRun(ctx context.Context, runID string) ([]store.Update, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.Update
	for _, u := range s.updates {
		if u.RunID == runID {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppliedAt.Before(out[j].AppliedAt)
	})
	return out, nil
}
