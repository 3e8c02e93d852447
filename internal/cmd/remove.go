package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <pattern>...",
	Short: "Remove patterns from a set",
	Long: `Remove one or more patterns from a pattern set.

Examples:
  wildpath remove a,b,c
  wildpath remove 'api,*,get' --set routes`,
	Aliases: []string{"rm"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRemove,
}

var removeSet string

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().StringVar(&removeSet, "set", "", "Pattern set name (default from config)")
}

func runRemove(cmd *cobra.Command, args []string) error {
	db, _, cfg, err := getDB()
	if err != nil {
		return err
	}
	defer db.Close()

	setName := resolveSet(removeSet, cfg)
	for _, raw := range args {
		if err := db.Remove(setName, raw); err != nil {
			return err
		}
		fmt.Printf("✓ removed %s from %s\n", raw, setName)
	}
	return nil
}
