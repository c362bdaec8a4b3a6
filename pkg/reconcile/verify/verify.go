package verify

import (
	"strings"

	"github.com/cognicore/reconcile/pkg/reconcile/features"
)

// Outcome classifies a proposed match.
type Outcome string

const (
	Accept           Outcome = "accept"
	NoOp             Outcome = "no-op"
	LocationMismatch Outcome = "location-mismatch"
)

// Verdict is the result of verifying one proposed match.
type Verdict struct {
	Outcome Outcome
	Reason  string
}

// Verify re-checks a proposed section against the record's location tokens.
// A title naming places must see at least one of them in the chosen text;
// content overlap alone is not enough. A proposal equal to the current body
// is a no-op.
func Verify(fs features.FeatureSet, currentBody, proposed string) Verdict {
	if len(fs.Locations) > 0 && !containsAnyFold(proposed, fs.Locations) {
		return Verdict{
			Outcome: LocationMismatch,
			Reason:  "none of " + strings.Join(fs.Locations, ", ") + " in proposed text",
		}
	}
	if proposed == currentBody {
		return Verdict{Outcome: NoOp}
	}
	return Verdict{Outcome: Accept}
}

func containsAnyFold(text string, tokens []string) bool {
	lower := strings.ToLower(text)
	for _, tok := range tokens {
		if strings.Contains(lower, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}
