package features

import (
	"regexp"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/reconcile/pkg/reconcile/gazetteer"
)

// DefaultCacheSize bounds the number of memoized titles.
const DefaultCacheSize = 256

// agePattern captures "41-jähriger", "8-Jährige" and similar.
var agePattern = regexp.MustCompile(`(\d{1,2})-([Jj]ährig)`)

// FeatureSet is everything the scorer needs to know about a record title.
type FeatureSet struct {
	Locations []string // gazetteer places found in the title, table order
	Content   []string // body synonyms of every crime type named in the title
	Age       string   // numeric part of an age phrase, empty if absent
	AgePhrase string   // age phrase stem exactly as written, e.g. "41-jährig"
}

// HasAge reports whether the title carried an age phrase.
func (f FeatureSet) HasAge() bool { return f.Age != "" }

// Extractor derives FeatureSets from titles. It is safe for concurrent use;
// results are memoized by title.
type Extractor struct {
	gaz   *gazetteer.Gazetteer
	cache *lru.Cache[string, FeatureSet]
}

// NewExtractor creates an extractor over gaz. A cacheSize <= 0 uses DefaultCacheSize.
func NewExtractor(gaz *gazetteer.Gazetteer, cacheSize int) (*Extractor, error) {
	if gaz == nil {
		gaz = gazetteer.Default()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, FeatureSet](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Extractor{gaz: gaz, cache: cache}, nil
}

// Extract returns the FeatureSet of title.
func (e *Extractor) Extract(title string) FeatureSet {
	if fs, ok := e.cache.Get(title); ok {
		return fs.clone()
	}
	fs := Extract(e.gaz, title)
	e.cache.Add(title, fs)
	return fs.clone()
}

// Extract computes the FeatureSet of title without memoization.
func Extract(gaz *gazetteer.Gazetteer, title string) FeatureSet {
	lower := strings.ToLower(title)
	var fs FeatureSet

	for _, place := range gaz.Places() {
		if strings.Contains(lower, strings.ToLower(place)) {
			fs.Locations = append(fs.Locations, place)
		}
	}

	seen := make(map[string]struct{})
	for _, key := range gaz.CrimeKeys() {
		if !strings.Contains(lower, key) {
			continue
		}
		for _, syn := range gaz.Synonyms(key) {
			if _, ok := seen[syn]; ok {
				continue
			}
			seen[syn] = struct{}{}
			fs.Content = append(fs.Content, syn)
		}
	}
	sort.Strings(fs.Content)

	if m := agePattern.FindStringSubmatch(title); m != nil {
		fs.Age = m[1]
		fs.AgePhrase = m[1] + "-" + m[2]
	}

	return fs
}

func (f FeatureSet) clone() FeatureSet {
	out := f
	if f.Locations != nil {
		out.Locations = append([]string(nil), f.Locations...)
	}
	if f.Content != nil {
		out.Content = append([]string(nil), f.Content...)
	}
	return out
}
