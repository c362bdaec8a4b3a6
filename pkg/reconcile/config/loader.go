package config

import (
	"fmt"

	"github.com/cognicore/reconcile/pkg/reconcile/features"
	"github.com/cognicore/reconcile/pkg/reconcile/gazetteer"
	"github.com/cognicore/reconcile/pkg/reconcile/score"
	"github.com/cognicore/reconcile/pkg/reconcile/segment"
)

// Components holds the engine parts built from a Config
type Components struct {
	Gazetteer *gazetteer.Gazetteer
	Extractor *features.Extractor
	Segmenter *segment.Segmenter
	Scorer    *score.Scorer
}

// Build constructs the engine components described by the configuration
func (c Config) Build() (*Components, error) {
	comp := &Components{}

	if c.Gazetteer != "" {
		gaz, err := gazetteer.LoadFromYAML(c.Gazetteer)
		if err != nil {
			return nil, fmt.Errorf("load gazetteer: %w", err)
		}
		comp.Gazetteer = gaz
	} else {
		comp.Gazetteer = gazetteer.Default()
	}

	ext, err := features.NewExtractor(comp.Gazetteer, c.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("feature cache: %w", err)
	}
	comp.Extractor = ext

	comp.Segmenter = segment.New(segment.WithPreambleThreshold(c.PreambleThreshold))
	comp.Scorer = score.NewScorer(c.ScoreWeights())

	return comp, nil
}
