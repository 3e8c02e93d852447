// Package pattern provides parsing and matching for comma-delimited
// path patterns.
package pattern

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// Wildcard is the field value that matches any single path field.
	Wildcard = "*"
	// FieldDelimiter separates fields in a pattern.
	FieldDelimiter = ","
	// PathDelimiter separates fields in a path.
	PathDelimiter = "/"
)

// Syntax selects how pattern text is interpreted.
type Syntax string

const (
	// SyntaxField is the default comma-delimited field syntax where *
	// matches exactly one field.
	SyntaxField Syntax = "field"
	// SyntaxGlob interprets patterns as doublestar globs over the
	// slash-joined path.
	SyntaxGlob Syntax = "glob"
)

// ValidSyntaxes returns all supported syntaxes.
func ValidSyntaxes() []Syntax {
	return []Syntax{SyntaxField, SyntaxGlob}
}

// IsValid returns true if the syntax is supported.
func (s Syntax) IsValid() bool {
	for _, valid := range ValidSyntaxes() {
		if s == valid {
			return true
		}
	}
	return false
}

var (
	// ErrEmptyPattern is returned when a pattern has no fields.
	ErrEmptyPattern = errors.New("pattern cannot be empty")

	// ErrEmptyField is returned when a pattern contains an empty field.
	ErrEmptyField = errors.New("pattern fields cannot be empty")

	// ErrNonASCII is returned when a pattern contains non-ASCII characters.
	ErrNonASCII = errors.New("pattern must be ASCII")
)

// Pattern is a parsed pattern ready for matching. Wildcards and their
// index sum are precomputed so Best never rescans fields while ranking.
type Pattern struct {
	Raw       string   // normalized text, no leading/trailing delimiters
	Fields    []string // split on FieldDelimiter
	Wildcards int      // number of wildcard fields
	IndexSum  int      // sum of wildcard field indexes, used for tie-breaks
}

// Parse parses raw pattern text in the field syntax. Leading and
// trailing delimiters are stripped before splitting.
func Parse(raw string) (Pattern, error) {
	trimmed := strings.Trim(raw, FieldDelimiter)
	if trimmed == "" {
		return Pattern{}, ErrEmptyPattern
	}
	if !isASCII(trimmed) {
		return Pattern{}, fmt.Errorf("%w: %q", ErrNonASCII, raw)
	}

	fields := strings.Split(trimmed, FieldDelimiter)
	p := Pattern{Raw: trimmed, Fields: fields}
	for i, f := range fields {
		if f == "" {
			return Pattern{}, fmt.Errorf("%w: field %d of %q", ErrEmptyField, i+1, raw)
		}
		if f == Wildcard {
			p.Wildcards++
			p.IndexSum += i
		}
	}
	return p, nil
}

// ParseAll parses a slice of raw patterns, reporting the position of the
// first failure.
func ParseAll(raws []string) ([]Pattern, error) {
	pats := make([]Pattern, 0, len(raws))
	for i, raw := range raws {
		p, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i+1, err)
		}
		pats = append(pats, p)
	}
	return pats, nil
}

// SplitPath splits a path into fields, ignoring leading and trailing
// slashes.
func SplitPath(path string) []string {
	return strings.Split(strings.Trim(path, PathDelimiter), PathDelimiter)
}

// Exact returns true if the pattern contains no wildcards.
func (p Pattern) Exact() bool {
	return p.Wildcards == 0
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
