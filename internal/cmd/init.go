package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wildpath/wildpath/internal/config"
	"github.com/wildpath/wildpath/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a wildpath pattern store",
	Long: `Initialize a wildpath pattern store in the current directory.

This creates a .wildpath/ directory with:
  - config.yaml     Configuration file
  - patterns.db     SQLite pattern store
  - patterns.jsonl  JSONL export (git-tracked)`,
	RunE: runInit,
}

var initQuiet bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initQuiet, "quiet", "q", false, "Suppress output")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Check if already initialized
	if config.Exists(cwd) {
		if !initQuiet {
			fmt.Println("Already initialized in", filepath.Join(cwd, config.DirName))
		}
		return nil
	}

	paths := config.ResolvePaths(cwd)
	if err := os.MkdirAll(paths.Root, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", paths.Root, err)
	}

	if !initQuiet {
		fmt.Println("✓ Created", paths.Root)
	}

	if err := config.Default().Save(paths.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if !initQuiet {
		fmt.Println("✓ Created", config.ConfigFile)
	}

	db, err := store.Open(paths.DB)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	db.Close()

	if !initQuiet {
		fmt.Println("✓ Initialized SQLite database")
	}

	if err := os.WriteFile(paths.JSONL, []byte{}, 0644); err != nil {
		return fmt.Errorf("create jsonl file: %w", err)
	}

	if !initQuiet {
		fmt.Println("✓ Created", config.JSONLFile)
	}

	return nil
}
