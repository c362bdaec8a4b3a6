package reconcile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/reconcile/pkg/reconcile/internalerr"
)

// Counts aggregates a run.
type Counts struct {
	Groups           int `json:"groups"`
	Singletons       int `json:"singletons"`
	Updated          int `json:"updated"`
	NoOp             int `json:"no_op"`
	LocationMismatch int `json:"location_mismatch"`
	NoSourceDocument int `json:"no_source_document"`
	DocumentErrors   int `json:"document_errors"`
	TooFewSections   int `json:"too_few_sections"`
	Unmatched        int `json:"unmatched"`
	UpdateErrors     int `json:"update_errors"`
}

// Report summarizes one reconciliation run.
type Report struct {
	RunID      string        `json:"run_id"`
	DryRun     bool          `json:"dry_run"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Counts     Counts        `json:"counts"`
	Groups     []GroupResult `json:"groups"`
}

func (rep *Report) add(g GroupResult) {
	rep.Groups = append(rep.Groups, g)
	c := &rep.Counts
	c.Groups++

	switch g.Status {
	case StatusSingleton:
		c.Singletons++
	case StatusNoSourceDocument:
		c.NoSourceDocument++
	case StatusDocumentError:
		c.DocumentErrors++
	case StatusTooFewSections:
		c.TooFewSections++
	}

	c.Unmatched += len(g.Unmatched)
	for _, m := range g.Matches {
		switch m.Outcome {
		case Updated:
			c.Updated++
		case NoOp:
			c.NoOp++
		case LocationMismatch:
			c.LocationMismatch++
		case UpdateFailed:
			c.UpdateErrors++
		}
	}
}

// Errors returns the group and update errors of the run in group order.
// Confidence decisions (location mismatches, groups without a positive
// match) are not errors and are left out.
func (rep Report) Errors() []error {
	var out []error
	for _, g := range rep.Groups {
		if g.Err != nil && !errors.Is(g.Err, internalerr.ErrNoPositiveMatch) {
			out = append(out, g.Err)
		}
		for _, m := range g.Matches {
			if m.Outcome == UpdateFailed && m.Err != nil {
				out = append(out, m.Err)
			}
		}
	}
	return out
}

// Summary renders the counts for humans.
func (rep Report) Summary() string {
	var b strings.Builder
	mode := "applied"
	if rep.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(&b, "run %s (%s)\n", rep.RunID, mode)

	c := rep.Counts
	rows := []struct {
		label string
		n     int
	}{
		{"groups", c.Groups},
		{"singletons", c.Singletons},
		{"updated", c.Updated},
		{"no-op", c.NoOp},
		{"location-mismatch", c.LocationMismatch},
		{"no-source-document", c.NoSourceDocument},
		{"document-errors", c.DocumentErrors},
		{"too-few-sections", c.TooFewSections},
		{"unmatched", c.Unmatched},
		{"update-errors", c.UpdateErrors},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "  %-20s %d\n", row.label, row.n)
	}
	return b.String()
}
