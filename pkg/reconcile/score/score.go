package score

import (
	"strings"

	"github.com/cognicore/reconcile/pkg/reconcile/features"
)

// Weights defines how much each kind of evidence is worth.
// Location dominates, content corroborates, age confirms.
type Weights struct {
	Location float64 // per location token found in the section
	Content  float64 // per content token found in the section
	Age      float64 // once, if the age phrase is found
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{Location: 10.0, Content: 2.0, Age: 3.0}
}

// Scorer computes record/section compatibility scores.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Breakdown explains a score.
type Breakdown struct {
	Locations []string
	Content   []string
	AgeHit    bool
	Location  float64
	ContentW  float64
	AgeW      float64
	Total     float64
}

// Score returns the compatibility of fs with a section text.
//
// score = wL·|locations in text| + wC·|content in text| + wA·[age in text]
func (s *Scorer) Score(fs features.FeatureSet, text string) float64 {
	return s.ScoreWithBreakdown(fs, text).Total
}

// ScoreWithBreakdown returns the score with its components.
func (s *Scorer) ScoreWithBreakdown(fs features.FeatureSet, text string) Breakdown {
	lower := strings.ToLower(text)
	var b Breakdown

	for _, loc := range fs.Locations {
		if strings.Contains(lower, strings.ToLower(loc)) {
			b.Locations = append(b.Locations, loc)
		}
	}
	for _, tok := range fs.Content {
		if strings.Contains(lower, strings.ToLower(tok)) {
			b.Content = append(b.Content, tok)
		}
	}
	b.AgeHit = ageFound(fs, text, lower)

	b.Location = s.weights.Location * float64(len(b.Locations))
	b.ContentW = s.weights.Content * float64(len(b.Content))
	if b.AgeHit {
		b.AgeW = s.weights.Age
	}
	b.Total = b.Location + b.ContentW + b.AgeW
	return b
}

func ageFound(fs features.FeatureSet, text, lower string) bool {
	if !fs.HasAge() {
		return false
	}
	if strings.Contains(lower, fs.Age+"-jährig") {
		return true
	}
	return fs.AgePhrase != "" && strings.Contains(text, fs.AgePhrase)
}

// Matrix is a dense, read-only table of scores indexed by
// (record index, section index).
type Matrix struct {
	rows, cols int
	values     []float64
}

// NewMatrix builds a matrix from a row-major slice of rows.
func NewMatrix(values [][]float64) Matrix {
	m := Matrix{rows: len(values)}
	if m.rows > 0 {
		m.cols = len(values[0])
	}
	m.values = make([]float64, m.rows*m.cols)
	for i, row := range values {
		for j := 0; j < m.cols && j < len(row); j++ {
			m.values[i*m.cols+j] = row[j]
		}
	}
	return m
}

// Matrix scores every feature set against every section text.
func (s *Scorer) Matrix(sets []features.FeatureSet, sections []string) Matrix {
	m := Matrix{rows: len(sets), cols: len(sections)}
	m.values = make([]float64, m.rows*m.cols)
	for i, fs := range sets {
		for j, text := range sections {
			m.values[i*m.cols+j] = s.Score(fs, text)
		}
	}
	return m
}

// Rows returns the number of records.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of sections.
func (m Matrix) Cols() int { return m.cols }

// At returns the score of record i against section j.
func (m Matrix) At(i, j int) float64 {
	return m.values[i*m.cols+j]
}
