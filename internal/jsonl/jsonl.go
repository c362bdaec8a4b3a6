package jsonl

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cognicore/reconcile/pkg/reconcile/store"
)

// DocumentItem is one digest line. Either Text or HTML carries the body.
type DocumentItem struct {
	SourceID  string    `json:"source_id"`
	Text      string    `json:"text"`
	HTML      string    `json:"html"`
	FetchedAt time.Time `json:"fetched_at"`
}

// RecordItem is one fanned-out record line.
type RecordItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	SourceID string `json:"source_id"`
}

// Document converts the item, rendering HTML bodies to plain text.
func (d DocumentItem) Document() store.Document {
	text := d.Text
	if text == "" && d.HTML != "" {
		text = HTMLToText(d.HTML)
	}
	return store.Document{SourceID: d.SourceID, RawText: text, FetchedAt: d.FetchedAt}
}

// Record converts the item.
func (r RecordItem) Record() store.Record {
	return store.Record{ID: r.ID, Title: r.Title, Body: r.Body, SourceID: r.SourceID}
}

// LoadDocuments loads digests from a JSONL file, skipping malformed lines.
func LoadDocuments(path string) ([]store.Document, error) {
	items, err := load[DocumentItem](path)
	if err != nil {
		return nil, err
	}
	docs := make([]store.Document, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.SourceID) == "" {
			log.Printf("Warning: skipping document without source_id in %s", path)
			continue
		}
		docs = append(docs, it.Document())
	}
	return docs, nil
}

// LoadRecords loads records from a JSONL file, skipping malformed lines.
func LoadRecords(path string) ([]store.Record, error) {
	items, err := load[RecordItem](path)
	if err != nil {
		return nil, err
	}
	recs := make([]store.Record, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			log.Printf("Warning: skipping record without id in %s", path)
			continue
		}
		recs = append(recs, it.Record())
	}
	return recs, nil
}

func load[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var items []T
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item T
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid items found in %s", path)
	}
	return items, nil
}
