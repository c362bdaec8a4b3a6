package match

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/cognicore/reconcile/pkg/reconcile/score"
)

func TestGreedyDiagonal(t *testing.T) {
	m := score.NewMatrix([][]float64{
		{10, 2},
		{2, 12},
	})
	got := Greedy(m)
	want := []Assignment{{Record: 1, Section: 1, Score: 12}, {Record: 0, Section: 0, Score: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Greedy = %v, want %v", got, want)
	}
}

func TestGreedyIsNotOptimal(t *testing.T) {
	// The optimal assignment (0,1)+(1,0) scores 18; greedy takes 10 and stops.
	m := score.NewMatrix([][]float64{
		{10, 9},
		{9, 0},
	})
	got := Greedy(m)
	want := []Assignment{{Record: 0, Section: 0, Score: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Greedy = %v, want %v", got, want)
	}
}

func TestGreedyTiesFirstSeen(t *testing.T) {
	m := score.NewMatrix([][]float64{
		{5, 5},
		{5, 5},
	})
	got := Greedy(m)
	want := []Assignment{{Record: 0, Section: 0, Score: 5}, {Record: 1, Section: 1, Score: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Greedy = %v, want %v", got, want)
	}
}

func TestGreedyNoPositive(t *testing.T) {
	m := score.NewMatrix([][]float64{{0, 0}, {0, 0}})
	if got := Greedy(m); len(got) != 0 {
		t.Errorf("Expected no assignments, got %v", got)
	}
	if got := Greedy(score.NewMatrix(nil)); len(got) != 0 {
		t.Errorf("Expected no assignments on empty matrix, got %v", got)
	}
}

func TestGreedyProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		rows, cols := 1+rng.Intn(6), 1+rng.Intn(6)
		values := make([][]float64, rows)
		for i := range values {
			values[i] = make([]float64, cols)
			for j := range values[i] {
				// Mostly zeros with a few strong and weak signals.
				switch rng.Intn(4) {
				case 0:
					values[i][j] = float64(10 * (1 + rng.Intn(2)))
				case 1:
					values[i][j] = float64(2 * rng.Intn(3))
				}
			}
		}
		m := score.NewMatrix(values)
		got := Greedy(m)

		if len(got) > rows || len(got) > cols {
			t.Fatalf("Assignment count %d exceeds min(%d,%d)", len(got), rows, cols)
		}
		seenRec := map[int]bool{}
		seenSec := map[int]bool{}
		for _, a := range got {
			if seenRec[a.Record] || seenSec[a.Section] {
				t.Fatalf("Index reused in %v", got)
			}
			seenRec[a.Record], seenSec[a.Section] = true, true
			if a.Score <= 0 {
				t.Fatalf("Non-positive assignment %v", a)
			}
			if a.Score != m.At(a.Record, a.Section) {
				t.Fatalf("Assignment score %v does not match matrix", a)
			}
		}
		if !reflect.DeepEqual(got, Greedy(m)) {
			t.Fatal("Greedy should be deterministic")
		}
	}
}
