package reconcile

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cognicore/reconcile/pkg/reconcile/features"
	"github.com/cognicore/reconcile/pkg/reconcile/gazetteer"
	"github.com/cognicore/reconcile/pkg/reconcile/internalerr"
	"github.com/cognicore/reconcile/pkg/reconcile/match"
	"github.com/cognicore/reconcile/pkg/reconcile/score"
	"github.com/cognicore/reconcile/pkg/reconcile/segment"
	"github.com/cognicore/reconcile/pkg/reconcile/store"
	"github.com/cognicore/reconcile/pkg/reconcile/verify"
)

// Reconciler re-attaches digest sections to the records fanned out from them.
type Reconciler struct {
	docs      store.DocumentStore
	records   store.RecordStore
	segmenter *segment.Segmenter
	extractor *features.Extractor
	scorer    *score.Scorer
	dryRun    bool
	log       *zap.Logger
	now       func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Reconciler. Only the stores are required.
type Options struct {
	Documents store.DocumentStore
	Records   store.RecordStore
	Segmenter *segment.Segmenter
	Extractor *features.Extractor
	Scorer    *score.Scorer
	DryRun    bool
	Logger    *zap.Logger
	Now       func() time.Time
}

// New creates a Reconciler, filling unset components with defaults.
func New(opts Options) (*Reconciler, error) {
	if opts.Documents == nil || opts.Records == nil {
		return nil, fmt.Errorf("reconciler needs document and record stores: %w", internalerr.ErrInvalidConfig)
	}
	r := &Reconciler{
		docs:      opts.Documents,
		records:   opts.Records,
		segmenter: opts.Segmenter,
		extractor: opts.Extractor,
		scorer:    opts.Scorer,
		dryRun:    opts.DryRun,
		log:       opts.Logger,
		now:       opts.Now,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
	if r.segmenter == nil {
		r.segmenter = segment.New()
	}
	if r.extractor == nil {
		ext, err := features.NewExtractor(gazetteer.Default(), features.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		r.extractor = ext
	}
	if r.scorer == nil {
		r.scorer = score.NewScorer(score.DefaultWeights())
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r, nil
}

// Outcome is what happened to one proposed match.
type Outcome string

const (
	Updated          Outcome = "updated"
	NoOp             Outcome = "no-op"
	LocationMismatch Outcome = "location-mismatch"
	UpdateFailed     Outcome = "update-error"
)

// Match is one proposed record/section pairing and its fate.
type Match struct {
	RecordID     string  `json:"record_id"`
	Title        string  `json:"title"`
	SectionIndex int     `json:"section_index"`
	Score        float64 `json:"score"`
	Outcome      Outcome `json:"outcome"`
	Reason       string  `json:"reason,omitempty"`
	Applied      bool    `json:"applied"`
	ProposedBody string  `json:"proposed_body"`
	Err          error   `json:"-"`
}

// Proposal is the pure result of matching one digest against its records.
type Proposal struct {
	Sections  []segment.Section
	Strategy  string
	Matrix    score.Matrix
	Matches   []Match  // outcomes are Updated (meaning "accepted"), NoOp or LocationMismatch
	Unmatched []string // record IDs without a positive-score section
}

// Propose segments rawText and matches records to sections. It performs no
// I/O. With fewer than two sections nothing is matched.
func (r *Reconciler) Propose(rawText string, records []store.Record) Proposal {
	seg := r.segmenter.Split(rawText)
	p := Proposal{Sections: seg.Sections, Strategy: seg.Strategy}
	if len(p.Sections) < 2 {
		return p
	}

	sets := make([]features.FeatureSet, len(records))
	for i, rec := range records {
		sets[i] = r.extractor.Extract(rec.Title)
	}
	texts := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		texts[i] = s.Text
	}
	p.Matrix = r.scorer.Matrix(sets, texts)

	matched := make([]bool, len(records))
	for _, a := range match.Greedy(p.Matrix) {
		rec := records[a.Record]
		matched[a.Record] = true
		proposed := texts[a.Section]

		m := Match{
			RecordID:     rec.ID,
			Title:        rec.Title,
			SectionIndex: a.Section,
			Score:        a.Score,
			ProposedBody: proposed,
		}
		verdict := verify.Verify(sets[a.Record], rec.Body, proposed)
		switch verdict.Outcome {
		case verify.LocationMismatch:
			m.Outcome = LocationMismatch
			m.Reason = verdict.Reason
			m.Err = internalerr.ErrLocationMismatch
		case verify.NoOp:
			m.Outcome = NoOp
		default:
			m.Outcome = Updated
		}
		p.Matches = append(p.Matches, m)
	}

	for i, rec := range records {
		if !matched[i] {
			p.Unmatched = append(p.Unmatched, rec.ID)
		}
	}
	return p
}

// GroupStatus says how far a group got through the pipeline.
type GroupStatus string

const (
	StatusReconciled       GroupStatus = "reconciled"
	StatusSingleton        GroupStatus = "singleton"
	StatusNoSourceDocument GroupStatus = "no-source-document"
	StatusDocumentError    GroupStatus = "document-error"
	StatusTooFewSections   GroupStatus = "too-few-sections"
)

// GroupResult is the outcome of reconciling the records of one digest.
type GroupResult struct {
	SourceID  string      `json:"source_id"`
	Records   int         `json:"records"`
	Sections  int         `json:"sections"`
	Strategy  string      `json:"strategy,omitempty"`
	Status    GroupStatus `json:"status"`
	Matches   []Match     `json:"matches,omitempty"`
	Unmatched []string    `json:"unmatched,omitempty"`
	Err       error       `json:"-"`
}

// ReconcileGroup runs the pipeline for the records sharing sourceID and
// applies accepted bodies unless the reconciler is in dry-run mode. Failures
// are recorded on the result; they never stop the caller.
func (r *Reconciler) ReconcileGroup(ctx context.Context, runID, sourceID string, records []store.Record) GroupResult {
	res := GroupResult{SourceID: sourceID, Records: len(records)}
	log := r.log.With(zap.String("run_id", runID), zap.String("source_id", sourceID))

	if len(records) < 2 {
		res.Status = StatusSingleton
		return res
	}

	doc, ok, err := r.docs.GetDocument(ctx, sourceID)
	if err != nil {
		res.Status = StatusDocumentError
		res.Err = fmt.Errorf("get document %s: %w", sourceID, err)
		log.Error("document lookup failed", zap.Error(err))
		return res
	}
	if !ok {
		res.Status = StatusNoSourceDocument
		res.Err = fmt.Errorf("%s: %w", sourceID, internalerr.ErrMissingDocument)
		log.Info("source document missing", zap.Int("records", len(records)))
		return res
	}

	p := r.Propose(doc.RawText, records)
	res.Sections = len(p.Sections)
	res.Strategy = p.Strategy
	if len(p.Sections) < 2 {
		res.Status = StatusTooFewSections
		res.Err = fmt.Errorf("%s: %w", sourceID, internalerr.ErrUnsegmentable)
		log.Debug("too few sections", zap.Int("sections", len(p.Sections)))
		return res
	}

	res.Status = StatusReconciled
	res.Unmatched = p.Unmatched
	if len(p.Matches) == 0 {
		res.Err = fmt.Errorf("%s: %w", sourceID, internalerr.ErrNoPositiveMatch)
	}

	for _, m := range p.Matches {
		switch m.Outcome {
		case LocationMismatch:
			log.Info("match rejected",
				zap.String("record_id", m.RecordID),
				zap.Int("section", m.SectionIndex),
				zap.Float64("score", m.Score),
				zap.String("reason", m.Reason))
		case Updated:
			if !r.dryRun {
				m = r.apply(ctx, log, runID, m)
			}
		}
		res.Matches = append(res.Matches, m)
	}

	log.Debug("group reconciled",
		zap.String("strategy", res.Strategy),
		zap.Int("records", res.Records),
		zap.Int("sections", res.Sections),
		zap.Int("matches", len(res.Matches)))
	return res
}

func (r *Reconciler) apply(ctx context.Context, log *zap.Logger, runID string, m Match) Match {
	err := r.records.ApplyUpdate(ctx, store.Update{
		RunID:     runID,
		RecordID:  m.RecordID,
		NewBody:   m.ProposedBody,
		Score:     m.Score,
		AppliedAt: r.now(),
	})
	if err != nil {
		m.Outcome = UpdateFailed
		m.Err = fmt.Errorf("record %s: %w: %w", m.RecordID, internalerr.ErrUpdate, err)
		log.Error("update failed", zap.String("record_id", m.RecordID), zap.Error(err))
		return m
	}
	m.Applied = true
	return m
}

// Run reconciles every group in the record store. Only a failure to list
// records is returned as an error.
func (r *Reconciler) Run(ctx context.Context) (Report, error) {
	report := Report{
		RunID:     r.newRunID(),
		DryRun:    r.dryRun,
		StartedAt: r.now(),
	}

	groups, err := r.records.RecordsBySource(ctx)
	if err != nil {
		return report, fmt.Errorf("list records: %w", err)
	}

	sourceIDs := make([]string, 0, len(groups))
	for id := range groups {
		sourceIDs = append(sourceIDs, id)
	}
	sort.Strings(sourceIDs)

	for _, id := range sourceIDs {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = r.now()
			return report, err
		}
		report.add(r.ReconcileGroup(ctx, report.RunID, id, groups[id]))
	}

	report.FinishedAt = r.now()
	r.log.Info("reconciliation finished",
		zap.String("run_id", report.RunID),
		zap.Bool("dry_run", report.DryRun),
		zap.Int("groups", report.Counts.Groups),
		zap.Int("updated", report.Counts.Updated),
		zap.Int("no_op", report.Counts.NoOp),
		zap.Int("location_mismatch", report.Counts.LocationMismatch),
		zap.Int("update_errors", report.Counts.UpdateErrors))
	return report, nil
}

func (r *Reconciler) newRunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(r.now()), r.entropy).String()
}
