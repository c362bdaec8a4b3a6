package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultPreambleThreshold is the number of characters of text before the
// first weekday marker beyond which that leading text is treated as a
// non-incident preamble and dropped.
const DefaultPreambleThreshold = 1000

// FallbackStrategy names the result when no strategy produced a split.
const FallbackStrategy = "fallback"

var (
	// "Am Montag, 3. Juni ..." introduces most incidents.
	weekdayMarker = regexp.MustCompile(`Am (?:Montag|Dienstag|Mittwoch|Donnerstag|Freitag|Samstag|Sonntag),`)
	caseMarker    = regexp.MustCompile(`(?i)Fall \d+:`)
	periodMarker  = regexp.MustCompile(`Im Zeitraum (?:von|zwischen)|In der Zeit von|Während des Zeitraums|Am \d{1,2}\.\d{1,2}\.(?:\d{2,4})?`)

	// Table-of-contents entries look like "1234   Raub in Schwabing".
	tocEntry = regexp.MustCompile(`^\s*\d{2,}[ \t]{2,}`)
)

const furtherInfoMarker = "weitere informationen"

// Section is one incident-sized slice of a digest.
type Section struct {
	Index int
	Text  string
}

// Strategy is one rule of the segmentation cascade.
// Split reports ok only when it produced at least two non-empty segments.
type Strategy interface {
	Name() string
	Split(text string) (segments []string, ok bool)
}

// MarkerStrategy splits in front of every match of a pattern. The match
// itself stays at the head of the following segment.
type MarkerStrategy struct {
	name    string
	pattern *regexp.Regexp
}

// NewMarkerStrategy creates a zero-width split strategy on pattern.
func NewMarkerStrategy(name string, pattern *regexp.Regexp) MarkerStrategy {
	return MarkerStrategy{name: name, pattern: pattern}
}

// Name implements Strategy.
func (m MarkerStrategy) Name() string { return m.name }

// Split implements Strategy.
func (m MarkerStrategy) Split(text string) ([]string, bool) {
	segments := SplitBefore(text, m.pattern)
	if len(segments) < 2 {
		return nil, false
	}
	return segments, true
}

// Weekday splits on "Am <Wochentag>," markers.
func Weekday() Strategy { return NewMarkerStrategy("weekday", weekdayMarker) }

// Case splits on "Fall N:" markers.
func Case() Strategy { return NewMarkerStrategy("case", caseMarker) }

// Period splits on time-window phrases and explicit numeric dates.
func Period() Strategy { return NewMarkerStrategy("period", periodMarker) }

// DefaultStrategies returns the cascade in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{Weekday(), Case(), Period()}
}

// Segmenter splits a raw digest into ordered candidate sections.
type Segmenter struct {
	strategies        []Strategy
	preambleThreshold int
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithStrategies replaces the cascade.
func WithStrategies(strategies ...Strategy) Option {
	return func(s *Segmenter) { s.strategies = strategies }
}

// WithPreambleThreshold sets the preamble cut-off in characters.
func WithPreambleThreshold(n int) Option {
	return func(s *Segmenter) {
		if n >= 0 {
			s.preambleThreshold = n
		}
	}
}

// New creates a Segmenter with the default cascade.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		strategies:        DefaultStrategies(),
		preambleThreshold: DefaultPreambleThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of one segmentation, including the rule that won.
type Result struct {
	Sections []Section
	Strategy string
}

// Segment returns the ordered sections of raw. It never returns an empty slice.
func (s *Segmenter) Segment(raw string) []Section {
	return s.Split(raw).Sections
}

// Split runs the cascade and reports which strategy produced the sections.
func (s *Segmenter) Split(raw string) Result {
	text := StripPrefix(raw)
	if strings.TrimSpace(text) == "" {
		text = raw
	}
	text = StripPreamble(text, s.preambleThreshold)

	for _, strategy := range s.strategies {
		if segments, ok := strategy.Split(text); ok {
			return Result{Sections: toSections(segments), Strategy: strategy.Name()}
		}
	}

	whole := strings.TrimSpace(text)
	if whole == "" {
		whole = raw
	}
	return Result{Sections: toSections([]string{whole}), Strategy: FallbackStrategy}
}

// StripPrefix drops leading table-of-contents entries, "Weitere
// Informationen" marker lines and blank lines. Scanning stops at the first
// other line.
func StripPrefix(text string) string {
	cut := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || tocEntry.MatchString(line) || isFurtherInfo(trimmed) {
			cut += len(line)
			continue
		}
		break
	}
	return text[cut:]
}

func isFurtherInfo(line string) bool {
	return strings.HasPrefix(strings.ToLower(line), furtherInfoMarker)
}

// StripPreamble drops everything before the first weekday marker when that
// marker sits more than threshold characters into the text.
func StripPreamble(text string, threshold int) string {
	loc := weekdayMarker.FindStringIndex(text)
	if loc == nil {
		return text
	}
	if utf8.RuneCountInString(text[:loc[0]]) > threshold {
		return text[loc[0]:]
	}
	return text
}

// SplitBefore cuts text in front of every match of pattern and returns the
// trimmed, non-empty pieces in order. Text before the first match is kept.
func SplitBefore(text string, pattern *regexp.Regexp) []string {
	var segments []string
	prev := 0
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		if loc[0] > prev {
			segments = appendTrimmed(segments, text[prev:loc[0]])
		}
		prev = loc[0]
	}
	return appendTrimmed(segments, text[prev:])
}

func appendTrimmed(segments []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		segments = append(segments, s)
	}
	return segments
}

func toSections(segments []string) []Section {
	sections := make([]Section, len(segments))
	for i, seg := range segments {
		sections[i] = Section{Index: i, Text: seg}
	}
	return sections
}
