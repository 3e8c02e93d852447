package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildpath/wildpath/internal/engine"
	"github.com/wildpath/wildpath/internal/stream"
)

var matchCmd = &cobra.Command{
	Use:   "match <path>...",
	Short: "Match paths against a stored pattern set",
	Long: `Match one or more paths against a pattern set from the local store.
Large sets are sharded across goroutines per path.

Examples:
  wildpath match api/users/list
  wildpath match api/users/list static/css/main --set routes
  wildpath match api/users/list --shard-size 1000 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

var (
	matchSet       string
	matchShardSize int
	matchJSON      bool
)

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVar(&matchSet, "set", "", "Pattern set name (default from config)")
	matchCmd.Flags().IntVar(&matchShardSize, "shard-size", 0, "Patterns per shard (0 = engine default)")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "Output as JSON")
}

func runMatch(cmd *cobra.Command, args []string) error {
	db, _, cfg, err := getDB()
	if err != nil {
		return err
	}
	defer db.Close()

	setName := resolveSet(matchSet, cfg)
	set, err := db.LoadSet(setName)
	if err != nil {
		return fmt.Errorf("load set %q: %w", setName, err)
	}

	shardSize := matchShardSize
	if shardSize == 0 {
		shardSize = cfg.Engine.ShardSize
	}

	e := engine.New(set, engine.Options{
		Workers:   cfg.Engine.Workers,
		ShardSize: shardSize,
	})

	ctx := context.Background()
	matches := make([]engine.Match, 0, len(args))
	for _, path := range args {
		m, err := e.MatchOne(ctx, path)
		if err != nil {
			return err
		}
		matches = append(matches, m)
	}

	if matchJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"set":     setName,
			"matches": matches,
		})
	}

	lines := make([]string, len(matches))
	for i, m := range matches {
		if m.Matched {
			lines[i] = m.Pattern
		} else {
			lines[i] = stream.NoMatch
		}
	}
	return stream.WriteResults(cmd.OutOrStdout(), lines)
}
