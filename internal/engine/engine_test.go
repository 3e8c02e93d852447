package engine

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/wildpath/wildpath/internal/pattern"
)

func newTestSet(t *testing.T, raws []string) *pattern.Set {
	t.Helper()
	set, err := pattern.NewSet(pattern.SyntaxField, raws)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	return set
}

func TestMatchAllPreservesInputOrder(t *testing.T) {
	set := newTestSet(t, []string{"a,*,c", "*,b,c", "x,y,z"})
	paths := []string{"a/b/c", "x/y/z", "no/match/here", "a/q/c"}

	want := []Match{
		{Path: "a/b/c", Pattern: "a,*,c", Matched: true},
		{Path: "x/y/z", Pattern: "x,y,z", Matched: true},
		{Path: "no/match/here", Matched: false},
		{Path: "a/q/c", Pattern: "a,*,c", Matched: true},
	}

	for _, workers := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			e := New(set, Options{Workers: workers})
			got, err := e.MatchAll(context.Background(), paths)
			if err != nil {
				t.Fatalf("MatchAll: %v", err)
			}
			for i := range got {
				got[i].Result = nil
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("MatchAll = %+v, want %+v", got, want)
			}
		})
	}
}

func TestMatchAllAgreesWithSequential(t *testing.T) {
	// A larger randomized-shape set: every path's concurrent answer
	// must equal the workers=1 answer.
	var raws []string
	for i := 0; i < 50; i++ {
		raws = append(raws, fmt.Sprintf("svc%d,*,get", i))
		raws = append(raws, fmt.Sprintf("svc%d,users,%d", i, i))
	}
	set := newTestSet(t, raws)

	var paths []string
	for i := 0; i < 200; i++ {
		paths = append(paths, fmt.Sprintf("svc%d/users/%d", i%60, i%60))
	}

	seq := New(set, Options{Workers: 1})
	want, err := seq.MatchAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("sequential MatchAll: %v", err)
	}

	par := New(set, Options{Workers: 8})
	got, err := par.MatchAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("parallel MatchAll: %v", err)
	}

	for i := range want {
		if got[i].Pattern != want[i].Pattern || got[i].Matched != want[i].Matched {
			t.Errorf("path %q: parallel = %+v, sequential = %+v", paths[i], got[i], want[i])
		}
	}
}

func TestMatchAllCancelled(t *testing.T) {
	set := newTestSet(t, []string{"a,b,c"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths := make([]string, 10000)
	for i := range paths {
		paths[i] = "a/b/c"
	}

	e := New(set, Options{Workers: 4})
	if _, err := e.MatchAll(ctx, paths); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestMatchAllTimeout(t *testing.T) {
	set := newTestSet(t, []string{"a,b,c"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	paths := make([]string, 10000)
	for i := range paths {
		paths[i] = "a/b/c"
	}

	e := New(set, Options{Workers: 4})
	if _, err := e.MatchAll(ctx, paths); err == nil {
		t.Error("expected error from expired deadline")
	}
}

func TestMatchOneShardedAgreesWithSequential(t *testing.T) {
	var raws []string
	for i := 0; i < 500; i++ {
		raws = append(raws, fmt.Sprintf("n%d,*,z", i))
	}
	raws = append(raws, "n7,*,*")
	raws = append(raws, "*,m,z")

	set := newTestSet(t, raws)
	path := "n7/m/z"

	seq := New(set, Options{ShardSize: set.Len() + 1})
	want, err := seq.MatchOne(context.Background(), path)
	if err != nil {
		t.Fatalf("sequential MatchOne: %v", err)
	}

	for _, shard := range []int{1, 7, 64, 499} {
		t.Run(fmt.Sprintf("shard=%d", shard), func(t *testing.T) {
			e := New(set, Options{ShardSize: shard})
			got, err := e.MatchOne(context.Background(), path)
			if err != nil {
				t.Fatalf("MatchOne: %v", err)
			}
			if got.Pattern != want.Pattern || got.Matched != want.Matched {
				t.Errorf("shard %d: got %q, want %q", shard, got.Pattern, want.Pattern)
			}
		})
	}
}

func TestMatchOneExactShortCircuit(t *testing.T) {
	var raws []string
	for i := 0; i < 300; i++ {
		raws = append(raws, fmt.Sprintf("a,b,c%d", i))
	}
	raws = append(raws, "a,b,c")
	raws = append(raws, "a,*,c")

	set := newTestSet(t, raws)
	e := New(set, Options{ShardSize: 10})

	got, err := e.MatchOne(context.Background(), "a/b/c")
	if err != nil {
		t.Fatalf("MatchOne: %v", err)
	}
	if got.Pattern != "a,b,c" {
		t.Errorf("got %q, want exact match a,b,c", got.Pattern)
	}
}

func TestMatchOneNoMatch(t *testing.T) {
	set := newTestSet(t, []string{"a,b,c", "x,*,z"})
	e := New(set, Options{})

	got, err := e.MatchOne(context.Background(), "q/r/s")
	if err != nil {
		t.Fatalf("MatchOne: %v", err)
	}
	if got.Matched {
		t.Errorf("expected no match, got %q", got.Pattern)
	}
}
