package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wildpath/wildpath/internal/config"
	"github.com/wildpath/wildpath/internal/harvest"
	"github.com/wildpath/wildpath/internal/pattern"
	"github.com/wildpath/wildpath/internal/store"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest <driver>",
	Short: "Load patterns from a SQL database",
	Long: `Run a single-column query against a live database and add each row
to a pattern set.

Supported drivers: postgres, mysql, sqlite

Connection strings are read from the environment, with .env in the
project root loaded first. Default env vars: WILDPATH_POSTGRES_URL,
WILDPATH_MYSQL_URL, WILDPATH_SQLITE_PATH.

Examples:
  wildpath harvest postgres --query "SELECT route FROM endpoints" --set routes
  wildpath harvest sqlite --query "SELECT pattern FROM rules" --dry-run
  wildpath harvest mysql --query "SELECT p FROM acl" --env ACL_DB_URL`,
	Args: cobra.ExactArgs(1),
	RunE: runHarvest,
}

var (
	harvestQuery  string
	harvestSet    string
	harvestEnv    string
	harvestSyntax string
	harvestDryRun bool
)

func init() {
	rootCmd.AddCommand(harvestCmd)
	harvestCmd.Flags().StringVar(&harvestQuery, "query", "", "Single-column SQL query (required)")
	harvestCmd.Flags().StringVar(&harvestSet, "set", "", "Target pattern set (default from config)")
	harvestCmd.Flags().StringVar(&harvestEnv, "env", "", "Env var holding the connection string")
	harvestCmd.Flags().StringVar(&harvestSyntax, "syntax", "", "Pattern syntax: field or glob")
	harvestCmd.Flags().BoolVar(&harvestDryRun, "dry-run", false, "Print rows without storing them")
	harvestCmd.MarkFlagRequired("query")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	driver := args[0]

	db, paths, cfg, err := getDB()
	if err != nil {
		return err
	}
	defer db.Close()

	// Best effort — .env may not exist
	godotenv.Load(filepath.Join(filepath.Dir(paths.Root), config.EnvFile))

	envVar := harvestEnv
	if envVar == "" {
		envVar = harvest.DefaultEnvVar(driver)
	}
	if envVar == "" {
		return fmt.Errorf("could not determine env var for driver %q", driver)
	}

	connStr := os.Getenv(envVar)
	if connStr == "" {
		return fmt.Errorf("connection string not found: set %s in .env or environment", envVar)
	}

	src, err := harvest.ForDriver(driver)
	if err != nil {
		return err
	}
	if err := src.Connect(connStr); err != nil {
		return err
	}
	defer src.Close()

	rows, err := src.Fetch(context.Background(), harvestQuery)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	setName := resolveSet(harvestSet, cfg)
	syntax := pattern.Syntax(harvestSyntax)
	if harvestSyntax == "" {
		syntax = pattern.Syntax(cfg.Match.Syntax)
	}
	if !syntax.IsValid() {
		return fmt.Errorf("invalid syntax %q (field or glob)", syntax)
	}

	if harvestDryRun {
		for _, raw := range rows {
			fmt.Println(raw)
		}
		fmt.Fprintf(os.Stderr, "%d row(s), none stored (dry run)\n", len(rows))
		return nil
	}

	var added, skipped, invalid int
	for _, raw := range rows {
		_, err := db.Add(setName, raw, syntax)
		switch {
		case err == nil:
			added++
		case errors.Is(err, store.ErrDuplicate):
			skipped++
		default:
			invalid++
			fmt.Fprintf(os.Stderr, "skipping %q: %v\n", raw, err)
		}
	}

	fmt.Printf("✓ harvested %d pattern(s) into %s (%d duplicate, %d invalid)\n",
		added, setName, skipped, invalid)
	return nil
}
