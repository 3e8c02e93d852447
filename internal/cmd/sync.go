package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildpath/wildpath/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the pattern store to JSONL",
	Long: `Write every stored pattern to the git-tracked patterns.jsonl file.

Example:
  wildpath export`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import patterns from JSONL",
	Long: `Load patterns from patterns.jsonl into the store. Patterns already
present are skipped.

Example:
  wildpath import`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	db, paths, _, err := getDB()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Export(store.NewJSONL(paths.JSONL))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("✓ exported %d pattern(s) to %s\n", n, paths.JSONL)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	db, paths, _, err := getDB()
	if err != nil {
		return err
	}
	defer db.Close()

	added, skipped, err := db.Import(store.NewJSONL(paths.JSONL))
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Printf("✓ imported %d pattern(s), %d already present\n", added, skipped)
	return nil
}
