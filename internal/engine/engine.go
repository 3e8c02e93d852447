// Package engine runs pattern matching concurrently over many paths or
// over shards of a large pattern set.
package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/wildpath/wildpath/internal/pattern"
)

// DefaultShardSize is the pattern count per shard for MatchOne.
const DefaultShardSize = 4096

// Options control engine concurrency.
type Options struct {
	Workers   int // fan-out width for MatchAll; 0 means NumCPU
	ShardSize int // patterns per shard for MatchOne; 0 means DefaultShardSize
}

// Engine matches paths against an immutable pattern set.
type Engine struct {
	set  *pattern.Set
	opts Options
}

// New creates an engine over the set.
func New(set *pattern.Set, opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.ShardSize <= 0 {
		opts.ShardSize = DefaultShardSize
	}
	return &Engine{set: set, opts: opts}
}

// Match is the result for a single path.
type Match struct {
	Path    string          `json:"path"`
	Pattern string          `json:"pattern,omitempty"`
	Matched bool            `json:"matched"`
	Result  *pattern.Result `json:"-"`
}

// MatchAll matches every path, fanning paths out across a fixed worker
// pool. Results are returned in input order regardless of completion
// order. The first error cancels remaining work and is returned; on
// error the partial results are discarded.
func (e *Engine) MatchAll(ctx context.Context, paths []string) ([]Match, error) {
	results := make([]Match, len(paths))

	type job struct {
		index int
		path  string
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job)

	g.Go(func() error {
		defer close(jobs)
		for i, p := range paths {
			select {
			case jobs <- job{index: i, path: p}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < e.opts.Workers; w++ {
		g.Go(func() error {
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[j.index] = e.matchPath(j.path)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("match paths: %w", err)
	}
	return results, nil
}

// MatchOne matches a single path, sharding the pattern set across
// goroutines when it exceeds one shard. Shard-local bests merge with
// pattern.CompareResult, so the answer is identical to a sequential
// scan for any shard size. An exact match cancels sibling shards.
func (e *Engine) MatchOne(ctx context.Context, path string) (Match, error) {
	n := e.set.Len()
	if n <= e.opts.ShardSize {
		return e.matchPath(path), nil
	}

	shards := (n + e.opts.ShardSize - 1) / e.opts.ShardSize
	locals := make([]*pattern.Result, shards)

	shardCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, shardCtx := errgroup.WithContext(shardCtx)
	for s := 0; s < shards; s++ {
		s := s
		lo := s * e.opts.ShardSize
		hi := lo + e.opts.ShardSize
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			if err := shardCtx.Err(); err != nil {
				return err
			}
			if r, ok := e.set.BestRange(path, lo, hi); ok {
				locals[s] = &r
				if r.Exact {
					cancel()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !foundExact(locals) {
		return Match{}, fmt.Errorf("match %q: %w", path, err)
	}

	var best *pattern.Result
	for _, r := range locals {
		if r == nil {
			continue
		}
		if best == nil || pattern.CompareResult(*r, *best) < 0 {
			best = r
		}
	}

	m := Match{Path: path}
	if best != nil {
		m.Matched = true
		m.Pattern = best.Raw
		m.Result = best
	}
	return m, nil
}

func (e *Engine) matchPath(path string) Match {
	m := Match{Path: path}
	if r, ok := e.set.Best(path); ok {
		m.Matched = true
		m.Pattern = r.Raw
		m.Result = &r
	}
	return m
}

func foundExact(locals []*pattern.Result) bool {
	for _, r := range locals {
		if r != nil && r.Exact {
			return true
		}
	}
	return false
}
