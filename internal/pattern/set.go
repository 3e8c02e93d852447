package pattern

import "fmt"

// Result identifies the winning pattern of a scan along with the
// ranking data needed to merge results from partial scans.
type Result struct {
	Raw      string
	Index    int  // position in the set, for deterministic merging
	Cost     int  // lower is better: wildcard count, or negated glob literals
	TieScore int  // higher is better: wildcard (or meta) index sum
	Exact    bool // an exact result ends the scan
}

// CompareResult orders scan results: an exact result first, then lower
// cost, then higher tie score, then lower set index. Exact dominance
// keeps a sharded scan merged with this ordering indistinguishable from
// a sequential one, which stops at the exact match without ranking it.
func CompareResult(a, b Result) int {
	if a.Exact != b.Exact {
		if a.Exact {
			return -1
		}
		return 1
	}
	if a.Cost != b.Cost {
		return a.Cost - b.Cost
	}
	if a.TieScore != b.TieScore {
		return b.TieScore - a.TieScore
	}
	return a.Index - b.Index
}

// Set is an immutable parsed pattern set in a single syntax. It is safe
// for concurrent readers.
type Set struct {
	syntax Syntax
	fields []Pattern
	globs  []GlobPattern
}

// NewSet parses raws under the given syntax.
func NewSet(syntax Syntax, raws []string) (*Set, error) {
	s := &Set{syntax: syntax}
	switch syntax {
	case SyntaxField:
		pats, err := ParseAll(raws)
		if err != nil {
			return nil, err
		}
		s.fields = pats
	case SyntaxGlob:
		s.globs = make([]GlobPattern, 0, len(raws))
		for i, raw := range raws {
			g, err := ParseGlob(raw)
			if err != nil {
				return nil, fmt.Errorf("pattern %d: %w", i+1, err)
			}
			s.globs = append(s.globs, g)
		}
	default:
		return nil, fmt.Errorf("unknown syntax %q", syntax)
	}
	return s, nil
}

// Syntax returns the set's syntax.
func (s *Set) Syntax() Syntax {
	return s.syntax
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int {
	if s.syntax == SyntaxGlob {
		return len(s.globs)
	}
	return len(s.fields)
}

// Best scans the whole set for the best match.
func (s *Set) Best(path string) (Result, bool) {
	return s.BestRange(path, 0, s.Len())
}

// BestRange scans patterns [lo, hi) for the best match. Results from
// disjoint ranges merge with CompareResult.
func (s *Set) BestRange(path string, lo, hi int) (best Result, ok bool) {
	if s.syntax == SyntaxGlob {
		return s.bestGlob(path, lo, hi)
	}

	pathFields := SplitPath(path)
	for i := lo; i < hi; i++ {
		p := s.fields[i]
		if !Match(pathFields, p) {
			continue
		}
		r := Result{
			Raw:      p.Raw,
			Index:    i,
			Cost:     p.Wildcards,
			TieScore: p.IndexSum,
			Exact:    p.Exact(),
		}
		if r.Exact {
			return r, true
		}
		if !ok || CompareResult(r, best) < 0 {
			best = r
			ok = true
		}
	}
	return best, ok
}

func (s *Set) bestGlob(path string, lo, hi int) (best Result, ok bool) {
	for i := lo; i < hi; i++ {
		g := s.globs[i]
		if !MatchGlob(path, g) {
			continue
		}
		r := Result{
			Raw:      g.Raw,
			Index:    i,
			Cost:     -g.Literals,
			TieScore: g.MetaIndexSum,
			Exact:    g.Exact(),
		}
		if r.Exact {
			return r, true
		}
		if !ok || CompareResult(r, best) < 0 {
			best = r
			ok = true
		}
	}
	return best, ok
}
