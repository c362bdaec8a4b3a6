package gazetteer

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Gazetteer holds the static vocabulary used for feature extraction:
// - Places: neighbourhoods and nearby towns of the covered area
// - Crime types: a key expected in titles mapped to synonym phrases expected in bodies
//
// Lookups are plain substring tests on lower-cased text. There are no word
// boundaries, so "Laim" also hits "Berg am Laim".
type Gazetteer struct {
	places     []string
	crimeTypes map[string][]string // lowercase key -> lowercase synonyms
	crimeKeys  []string            // sorted keys of crimeTypes
}

// New creates a gazetteer from explicit tables.
// Place names keep their spelling; crime keys and synonyms are lower-cased.
func New(places []string, crimeTypes map[string][]string) *Gazetteer {
	g := &Gazetteer{
		crimeTypes: make(map[string][]string, len(crimeTypes)),
	}

	seen := make(map[string]struct{}, len(places))
	for _, p := range places {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(p)]; ok {
			continue
		}
		seen[strings.ToLower(p)] = struct{}{}
		g.places = append(g.places, p)
	}

	for key, synonyms := range crimeTypes {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		normalized := make([]string, 0, len(synonyms))
		for _, s := range synonyms {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				normalized = append(normalized, s)
			}
		}
		g.crimeTypes[key] = append(g.crimeTypes[key], normalized...)
	}
	for key := range g.crimeTypes {
		g.crimeKeys = append(g.crimeKeys, key)
	}
	sort.Strings(g.crimeKeys)

	return g
}

// Default returns the built-in gazetteer for the Munich police digests.
func Default() *Gazetteer {
	return New(defaultPlaces, defaultCrimeTypes)
}

// Places returns the place names in table order.
func (g *Gazetteer) Places() []string {
	out := make([]string, len(g.places))
	copy(out, g.places)
	return out
}

// CrimeKeys returns the crime-type keys in sorted order.
func (g *Gazetteer) CrimeKeys() []string {
	out := make([]string, len(g.crimeKeys))
	copy(out, g.crimeKeys)
	return out
}

// Synonyms returns the body phrases registered for a crime-type key.
func (g *Gazetteer) Synonyms(key string) []string {
	syn := g.crimeTypes[strings.ToLower(key)]
	out := make([]string, len(syn))
	copy(out, syn)
	return out
}

// file is the on-disk YAML layout.
//
//	places: [Schwabing, Pasing]
//	crime_types:
//	  raub: [raub, überfall, beraubt]
type file struct {
	Places     []string            `yaml:"places"`
	CrimeTypes map[string][]string `yaml:"crime_types"`
}

// LoadFromYAML loads a gazetteer from a YAML file.
// A section missing from the file falls back to the built-in table.
func LoadFromYAML(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes gazetteer YAML.
func Parse(data []byte) (*Gazetteer, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse gazetteer: %w", err)
	}

	places := f.Places
	if len(places) == 0 {
		places = defaultPlaces
	}
	crimeTypes := f.CrimeTypes
	if len(crimeTypes) == 0 {
		crimeTypes = defaultCrimeTypes
	}
	return New(places, crimeTypes), nil
}
