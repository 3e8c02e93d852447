package pattern

// Match reports whether the pattern matches the path fields: same
// number of fields, and every non-wildcard field equal at its position.
func Match(pathFields []string, p Pattern) bool {
	if len(pathFields) != len(p.Fields) {
		return false
	}
	for i, f := range p.Fields {
		if f != Wildcard && f != pathFields[i] {
			return false
		}
	}
	return true
}

// Compare orders two matching patterns by match quality. It returns a
// negative value if a is the better match, positive if b is, and zero
// if the patterns rank identically. Fewer wildcards wins; ties go to
// the pattern whose leftmost wildcard is furthest to the right, which
// for same-count patterns is the one with the higher wildcard index sum.
func Compare(a, b Pattern) int {
	if a.Wildcards != b.Wildcards {
		return a.Wildcards - b.Wildcards
	}
	return b.IndexSum - a.IndexSum
}

// Best finds the best-matching pattern for the path fields. An exact
// match (no wildcards) short-circuits the scan; pattern sets contain no
// duplicates, so at most one exact match exists. When no pattern
// matches, ok is false.
func Best(pathFields []string, pats []Pattern) (best Pattern, ok bool) {
	for _, p := range pats {
		if !Match(pathFields, p) {
			continue
		}
		if p.Exact() {
			return p, true
		}
		if !ok || Compare(p, best) < 0 {
			best = p
			ok = true
		}
	}
	return best, ok
}
