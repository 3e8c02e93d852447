package cmd

import (
	"fmt"
	"os"

	"github.com/wildpath/wildpath/internal/config"
	"github.com/wildpath/wildpath/internal/store"
)

// getDB finds the wildpath root and returns an open pattern store along
// with the resolved paths and loaded config.
func getDB() (*store.DB, *config.Paths, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get working directory: %w", err)
	}

	root, err := config.FindRoot(cwd)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("not in a wildpath directory: run 'wildpath init' first")
	}

	paths := config.ResolvePaths(root)

	cfg, err := config.Load(paths.Config)
	if err != nil {
		cfg = config.Default()
	}

	db, err := store.Open(paths.DB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	return db, paths, cfg, nil
}

// resolveSet returns the explicit set name, or the configured default.
func resolveSet(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Match.DefaultSet != "" {
		return cfg.Match.DefaultSet
	}
	return "default"
}
