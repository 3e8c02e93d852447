package pattern

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobPattern is a parsed doublestar glob, matched against the whole
// slash-joined path rather than field by field.
type GlobPattern struct {
	Raw          string
	Literals     int // count of non-meta characters, more is a better match
	MetaIndexSum int // sum of meta character indexes, used for tie-breaks
}

// globMeta are the characters doublestar treats specially.
const globMeta = `*?[]{}\`

// ParseGlob parses and validates a doublestar glob. Leading and
// trailing slashes are stripped so globs and paths normalize the same
// way.
func ParseGlob(raw string) (GlobPattern, error) {
	trimmed := strings.Trim(raw, PathDelimiter)
	if trimmed == "" {
		return GlobPattern{}, ErrEmptyPattern
	}
	if !isASCII(trimmed) {
		return GlobPattern{}, fmt.Errorf("%w: %q", ErrNonASCII, raw)
	}
	if !doublestar.ValidatePattern(trimmed) {
		return GlobPattern{}, fmt.Errorf("invalid glob %q", raw)
	}

	g := GlobPattern{Raw: trimmed}
	for i := 0; i < len(trimmed); i++ {
		if strings.IndexByte(globMeta, trimmed[i]) >= 0 {
			g.MetaIndexSum += i
		} else {
			g.Literals++
		}
	}
	return g, nil
}

// MatchGlob reports whether the glob matches the normalized path.
func MatchGlob(path string, g GlobPattern) bool {
	matched, err := doublestar.Match(g.Raw, strings.Trim(path, PathDelimiter))
	return err == nil && matched
}

// Exact returns true if the glob contains no meta characters and can
// only match its own literal text.
func (g GlobPattern) Exact() bool {
	return g.Literals == len(g.Raw)
}
