package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/reconcile/pkg/reconcile/config"
	"github.com/cognicore/reconcile/pkg/reconcile/store"
	"github.com/cognicore/reconcile/pkg/reconcile/store/sqlite"
)

// loadConfig reads --config and applies --db on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Database = db
	}
	if cfg.Database == "" {
		return config.Config{}, errors.New("--db required")
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	st, err := sqlite.OpenSQLite(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Database, err)
	}
	return st, nil
}
