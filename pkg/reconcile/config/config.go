package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/reconcile/pkg/reconcile/features"
	"github.com/cognicore/reconcile/pkg/reconcile/internalerr"
	"github.com/cognicore/reconcile/pkg/reconcile/score"
	"github.com/cognicore/reconcile/pkg/reconcile/segment"
)

// Config is the YAML run configuration.
//
//	database: reconcile.db
//	dry_run: false
//	gazetteer: gazetteer.yaml
//	cache_size: 256
//	preamble_threshold: 1000
//	weights: {location: 10, content: 2, age: 3}
//	log: {env: local, level: info}
type Config struct {
	Database          string  `yaml:"database"`
	DryRun            bool    `yaml:"dry_run"`
	Gazetteer         string  `yaml:"gazetteer"`
	CacheSize         int     `yaml:"cache_size"`
	PreambleThreshold int     `yaml:"preamble_threshold"`
	Weights           Weights `yaml:"weights"`
	Log               Log     `yaml:"log"`
}

// Weights mirrors score.Weights for YAML.
type Weights struct {
	Location float64 `yaml:"location"`
	Content  float64 `yaml:"content"`
	Age      float64 `yaml:"age"`
}

// Log selects the logger flavour.
type Log struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	w := score.DefaultWeights()
	return Config{
		Database:          "reconcile.db",
		CacheSize:         features.DefaultCacheSize,
		PreambleThreshold: segment.DefaultPreambleThreshold,
		Weights:           Weights{Location: w.Location, Content: w.Content, Age: w.Age},
		Log:               Log{Env: "local", Level: "info"},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot use.
func (c Config) Validate() error {
	if c.Weights.Location < 0 || c.Weights.Content < 0 || c.Weights.Age < 0 {
		return fmt.Errorf("weights must be non-negative: %w", internalerr.ErrInvalidConfig)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive: %w", internalerr.ErrInvalidConfig)
	}
	if c.PreambleThreshold < 0 {
		return fmt.Errorf("preamble_threshold must be non-negative: %w", internalerr.ErrInvalidConfig)
	}
	switch c.Log.Env {
	case "prod", "local", "dev", "docker":
	default:
		return fmt.Errorf("unknown log env %q: %w", c.Log.Env, internalerr.ErrInvalidConfig)
	}
	return nil
}

// ScoreWeights converts the YAML weights.
func (c Config) ScoreWeights() score.Weights {
	return score.Weights{
		Location: c.Weights.Location,
		Content:  c.Weights.Content,
		Age:      c.Weights.Age,
	}
}
