package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored patterns",
	Long: `List patterns in the store with optional filtering.

Examples:
  wildpath list
  wildpath list --set routes
  wildpath list --sets
  wildpath list --json`,
	Aliases: []string{"ls"},
	RunE:    runList,
}

var (
	listSet      string
	listSetsOnly bool
	listJSON     bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSet, "set", "", "Filter by set name")
	listCmd.Flags().BoolVar(&listSetsOnly, "sets", false, "List set names only")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	db, _, _, err := getDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if listSetsOnly {
		sets, err := db.Sets()
		if err != nil {
			return err
		}
		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{"sets": sets})
		}
		for _, s := range sets {
			fmt.Println(s)
		}
		return nil
	}

	entries, err := db.List(listSet)
	if err != nil {
		return fmt.Errorf("list patterns: %w", err)
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"patterns": entries,
			"count":    len(entries),
		})
	}

	if len(entries) == 0 {
		fmt.Println("No patterns found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SET\tPATTERN\tSYNTAX\tWILDCARDS")
	fmt.Fprintln(w, "───\t───────\t──────\t─────────")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.Set, e.Raw, e.Syntax, e.Wildcards)
	}
	w.Flush()

	fmt.Printf("\n%d pattern(s)\n", len(entries))
	return nil
}
