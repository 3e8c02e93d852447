// Package cmd provides the CLI commands for wildpath.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "wildpath",
	Short: "Best-match path pattern matching",
	Long: `Wildpath matches slash-delimited paths against comma-delimited
patterns where * matches exactly one field. For each path it reports the
best-matching pattern: an exact match wins outright, otherwise the fewest
wildcards, with ties going to the pattern whose leftmost wildcard sits
furthest to the right.

Pattern sets can be kept in a local store, harvested from SQL databases,
and matched concurrently across paths or across shards of a large set.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{printf "wildpath %s\ncommit: %s\nbuilt: %s\n" .Version "` + Commit + `" "` + BuildDate + `"}}`)
}
