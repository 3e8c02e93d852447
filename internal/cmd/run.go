package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wildpath/wildpath/internal/config"
	"github.com/wildpath/wildpath/internal/engine"
	"github.com/wildpath/wildpath/internal/pattern"
	"github.com/wildpath/wildpath/internal/stream"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Match a batch of paths from stdin or a file",
	Long: `Read the count-prefixed batch format and print one result per path:

  <number of patterns>
  <pattern lines>
  <number of paths>
  <path lines>

Output is one line per path, in input order: the best-matching pattern,
or NO MATCH.

Examples:
  wildpath run < batch.txt
  wildpath run batch.txt --workers 8
  wildpath run batch.txt --syntax glob --json
  wildpath run batch.txt --timeout 30s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

var (
	runWorkers int
	runTimeout time.Duration
	runSyntax  string
	runJSON    bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 0, "Worker count (0 = number of CPUs)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Abort matching after this duration")
	runCmd.Flags().StringVar(&runSyntax, "syntax", "", "Pattern syntax: field or glob")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Output as JSON")
}

func runRun(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	in, err := stream.Read(r)
	if err != nil {
		return err
	}

	cfg := loadConfigBestEffort()
	syntax := pattern.Syntax(runSyntax)
	if runSyntax == "" {
		syntax = pattern.Syntax(cfg.Match.Syntax)
	}
	if !syntax.IsValid() {
		return fmt.Errorf("invalid syntax %q (field or glob)", syntax)
	}

	set, err := pattern.NewSet(syntax, in.Patterns)
	if err != nil {
		return err
	}

	workers := runWorkers
	if workers == 0 {
		workers = cfg.Engine.Workers
	}
	timeout := runTimeout
	if timeout == 0 {
		timeout = cfg.Engine.Timeout
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	e := engine.New(set, engine.Options{Workers: workers})
	matches, err := e.MatchAll(ctx, in.Paths)
	if err != nil {
		return err
	}

	if runJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"matches": matches,
			"count":   len(matches),
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

// loadConfigBestEffort loads the config if run inside a wildpath
// directory, falling back to defaults otherwise.
func loadConfigBestEffort() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Default()
	}
	root, err := config.FindRoot(cwd)
	if err != nil {
		return config.Default()
	}
	cfg, err := config.Load(config.ResolvePaths(root).Config)
	if err != nil {
		return config.Default()
	}
	return cfg
}
