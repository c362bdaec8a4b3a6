package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/reconcile/pkg/reconcile/internalerr"
	"github.com/cognicore/reconcile/pkg/reconcile/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestSQLiteDocuments tests document upsert and lookup
func TestSQLiteDocuments(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	doc := store.Document{
		SourceID:  "https://example.com/digest-1",
		RawText:   "Am Montag, 3. Juni, ...\nAm Dienstag, 4. Juni, ...",
		FetchedAt: time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC),
	}
	if err := st.UpsertDocument(ctx, doc); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}

	got, found, err := st.GetDocument(ctx, doc.SourceID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if !found {
		t.Fatal("Document should be found")
	}
	if got.RawText != doc.RawText {
		t.Errorf("RawText mismatch: got %q", got.RawText)
	}
	if !got.FetchedAt.Equal(doc.FetchedAt) {
		t.Errorf("FetchedAt mismatch: got %v, want %v", got.FetchedAt, doc.FetchedAt)
	}

	doc.RawText = "replaced"
	if err := st.UpsertDocument(ctx, doc); err != nil {
		t.Fatalf("second UpsertDocument: %v", err)
	}
	got, _, _ = st.GetDocument(ctx, doc.SourceID)
	if got.RawText != "replaced" {
		t.Errorf("Document should be replaced, got %q", got.RawText)
	}

	if _, found, err := st.GetDocument(ctx, "https://example.com/missing"); err != nil || found {
		t.Errorf("Missing document: found=%v err=%v", found, err)
	}
}

// TestSQLiteRecordsBySource tests grouping and insertion order
func TestSQLiteRecordsBySource(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	recs := []store.Record{
		{ID: "b", Title: "Einbruch in Schwabing", Body: "x", SourceID: "s1"},
		{ID: "a", Title: "Betrug in Pasing", Body: "y", SourceID: "s1"},
		{ID: "c", Title: "Unfall in Sendling", Body: "z", SourceID: "s2"},
		{ID: "d", Title: "ohne Quelle", Body: "w"},
	}
	for _, r := range recs {
		if err := st.UpsertRecord(ctx, r); err != nil {
			t.Fatalf("UpsertRecord(%s): %v", r.ID, err)
		}
	}
	if err := st.UpsertRecord(ctx, store.Record{ID: "b", Title: "Einbruch in Schwabing", Body: "x2", SourceID: "s1"}); err != nil {
		t.Fatalf("re-UpsertRecord: %v", err)
	}

	groups, err := st.RecordsBySource(ctx)
	if err != nil {
		t.Fatalf("RecordsBySource: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	s1 := groups["s1"]
	if len(s1) != 2 || s1[0].ID != "b" || s1[1].ID != "a" {
		t.Errorf("Unexpected order in s1: %+v", s1)
	}
	if s1[0].Body != "x2" {
		t.Errorf("Upsert should replace body, got %q", s1[0].Body)
	}

	if err := st.UpsertRecord(ctx, store.Record{}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

// TestSQLiteApplyUpdateAudit tests body replacement and the audit trail
func TestSQLiteApplyUpdateAudit(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if err := st.UpsertRecord(ctx, store.Record{ID: "r1", Title: "t", Body: "old body", SourceID: "s"}); err != nil {
		t.Fatal(err)
	}

	at := time.Date(2024, 6, 5, 9, 30, 0, 0, time.UTC)
	u := store.Update{RunID: "01HZX", RecordID: "r1", NewBody: "new body", Score: 16, AppliedAt: at}
	if err := st.ApplyUpdate(ctx, u); err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}

	rec, found, err := st.GetRecord(ctx, "r1")
	if err != nil || !found {
		t.Fatalf("GetRecord: found=%v err=%v", found, err)
	}
	if rec.Body != "new body" {
		t.Errorf("Body should be updated, got %q", rec.Body)
	}

	updates, err := st.UpdatesForRun(ctx, "01HZX")
	if err != nil {
		t.Fatalf("UpdatesForRun: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("Expected 1 audit row, got %d", len(updates))
	}
	got := updates[0]
	if got.PreviousBody != "old body" || got.NewBody != "new body" || got.Score != 16 {
		t.Errorf("Unexpected audit row: %+v", got)
	}
	if !got.AppliedAt.Equal(at) {
		t.Errorf("AppliedAt mismatch: %v", got.AppliedAt)
	}

	err = st.ApplyUpdate(ctx, store.Update{RunID: "01HZX", RecordID: "missing", NewBody: "x"})
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if updates, _ := st.UpdatesForRun(ctx, "01HZX"); len(updates) != 1 {
		t.Errorf("Failed update must not leave an audit row, got %d", len(updates))
	}
}

// TestSQLiteReopen tests that data survives closing the database
func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.UpsertRecord(ctx, store.Record{ID: "r1", Title: "t", Body: "b", SourceID: "s"}); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	if _, found, err := st.GetRecord(ctx, "r1"); err != nil || !found {
		t.Errorf("Record should survive reopen: found=%v err=%v", found, err)
	}
}
