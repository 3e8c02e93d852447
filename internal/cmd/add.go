package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildpath/wildpath/internal/pattern"
)

var addCmd = &cobra.Command{
	Use:   "add <pattern>...",
	Short: "Add patterns to a set",
	Long: `Add one or more patterns to a pattern set.

Patterns are comma-delimited field lists where * matches exactly one
path field. With --syntax glob, patterns are doublestar globs instead.

Examples:
  wildpath add a,b,c
  wildpath add 'api,*,get' 'api,users,*' --set routes
  wildpath add 'src/**' --syntax glob --set sources`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addSet    string
	addSyntax string
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addSet, "set", "", "Pattern set name (default from config)")
	addCmd.Flags().StringVar(&addSyntax, "syntax", "", "Pattern syntax: field or glob")
}

func runAdd(cmd *cobra.Command, args []string) error {
	db, _, cfg, err := getDB()
	if err != nil {
		return err
	}
	defer db.Close()

	setName := resolveSet(addSet, cfg)
	syntax := pattern.Syntax(addSyntax)
	if addSyntax == "" {
		syntax = pattern.Syntax(cfg.Match.Syntax)
	}
	if !syntax.IsValid() {
		return fmt.Errorf("invalid syntax %q (field or glob)", syntax)
	}

	for _, raw := range args {
		e, err := db.Add(setName, raw, syntax)
		if err != nil {
			return fmt.Errorf("add %q: %w", raw, err)
		}
		fmt.Printf("✓ %s → %s\n", e.Raw, setName)
	}
	return nil
}
