package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wildpath/wildpath/internal/engine"
)

var benchCmd = &cobra.Command{
	Use:   "bench <path-file>",
	Short: "Compare matching strategies over a stored set",
	Long: `Time the sequential scan, the per-path worker pool, and the sharded
single-path scan against a stored pattern set. The path file holds one
path per line.

Examples:
  wildpath bench paths.txt --set routes
  wildpath bench paths.txt --workers 16 --shard-size 1000`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

var (
	benchSet       string
	benchWorkers   int
	benchShardSize int
)

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringVar(&benchSet, "set", "", "Pattern set name (default from config)")
	benchCmd.Flags().IntVarP(&benchWorkers, "workers", "w", 0, "Worker count (0 = number of CPUs)")
	benchCmd.Flags().IntVar(&benchShardSize, "shard-size", 0, "Patterns per shard (0 = engine default)")
}

func runBench(cmd *cobra.Command, args []string) error {
	db, _, cfg, err := getDB()
	if err != nil {
		return err
	}
	defer db.Close()

	setName := resolveSet(benchSet, cfg)
	set, err := db.LoadSet(setName)
	if err != nil {
		return fmt.Errorf("load set %q: %w", setName, err)
	}

	paths, err := readPathFile(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no paths in %s", args[0])
	}

	workers := benchWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx := context.Background()

	seq := engine.New(set, engine.Options{Workers: 1})
	seqStart := time.Now()
	if _, err := seq.MatchAll(ctx, paths); err != nil {
		return err
	}
	seqDur := time.Since(seqStart)

	par := engine.New(set, engine.Options{Workers: workers})
	parStart := time.Now()
	if _, err := par.MatchAll(ctx, paths); err != nil {
		return err
	}
	parDur := time.Since(parStart)

	shardSize := benchShardSize
	if shardSize <= 0 {
		shardSize = cfg.Engine.ShardSize
	}
	sharded := engine.New(set, engine.Options{ShardSize: shardSize})
	shardStart := time.Now()
	for _, p := range paths {
		if _, err := sharded.MatchOne(ctx, p); err != nil {
			return err
		}
	}
	shardDur := time.Since(shardStart)

	fmt.Printf("%d pattern(s), %d path(s)\n\n", set.Len(), len(paths))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tTIME\tSPEEDUP")
	fmt.Fprintln(w, "────────\t────\t───────")
	fmt.Fprintf(w, "sequential\t%s\t1.00x\n", seqDur.Round(time.Microsecond))
	fmt.Fprintf(w, "fan-out (%d workers)\t%s\t%.2fx\n",
		workers, parDur.Round(time.Microsecond), speedup(seqDur, parDur))
	fmt.Fprintf(w, "sharded (%d/shard)\t%s\t%.2fx\n",
		shardSize, shardDur.Round(time.Microsecond), speedup(seqDur, shardDur))
	return w.Flush()
}

func readPathFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open path file: %w", err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read path file: %w", err)
	}
	return paths, nil
}

func speedup(base, other time.Duration) float64 {
	if other == 0 {
		return 0
	}
	return float64(base) / float64(other)
}
