// Package match resolves a score matrix into a one-to-one assignment.
//
// The assignment is greedy: take the best remaining pair, retire its record
// and its section, repeat. It does not maximize the total score. Location
// evidence is weighted so that one strong signal usually dominates a row,
// which keeps contested pairs rare.
package match

import "github.com/cognicore/reconcile/pkg/reconcile/score"

// Assignment pairs a record index with a section index.
type Assignment struct {
	Record  int
	Section int
	Score   float64
}

// Greedy returns at most min(rows, cols) assignments with positive scores,
// in the order they were chosen. Ties go to the first pair in row-major order.
func Greedy(m score.Matrix) []Assignment {
	usedRec := make([]bool, m.Rows())
	usedSec := make([]bool, m.Cols())

	var out []Assignment
	for len(out) < m.Rows() && len(out) < m.Cols() {
		best := Assignment{Record: -1, Section: -1}
		for i := 0; i < m.Rows(); i++ {
			if usedRec[i] {
				continue
			}
			for j := 0; j < m.Cols(); j++ {
				if usedSec[j] {
					continue
				}
				if v := m.At(i, j); v > best.Score {
					best = Assignment{Record: i, Section: j, Score: v}
				}
			}
		}
		if best.Record < 0 {
			break
		}
		usedRec[best.Record] = true
		usedSec[best.Section] = true
		out = append(out, best)
	}
	return out
}
