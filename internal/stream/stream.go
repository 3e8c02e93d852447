// Package stream reads and writes the count-prefixed text protocol:
// a pattern count, that many pattern lines, a path count, that many
// path lines; results come back one line per path in input order.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NoMatch is the output line for a path no pattern matches.
const NoMatch = "NO MATCH"

// Input is a fully read request: raw pattern lines and path lines.
type Input struct {
	Patterns []string
	Paths    []string
}

// Read parses the protocol from r. Counts must be non-negative
// integers; a short read is an error naming the offending line.
func Read(r io.Reader) (*Input, error) {
	scanner := bufio.NewScanner(r)

	// Long path lines are legal input.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNum := 0
	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNum++
		return strings.TrimRight(scanner.Text(), "\r"), true
	}

	count := func(what string) (int, error) {
		line, ok := next()
		if !ok {
			return 0, fmt.Errorf("line %d: missing %s count", lineNum+1, what)
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("line %d: invalid %s count %q", lineNum, what, line)
		}
		return n, nil
	}

	lines := func(n int, what string) ([]string, error) {
		out := make([]string, 0, n)
		for i := 0; i < n; i++ {
			line, ok := next()
			if !ok {
				return nil, fmt.Errorf("line %d: expected %d %s lines, got %d", lineNum+1, n, what, i)
			}
			out = append(out, line)
		}
		return out, nil
	}

	n, err := count("pattern")
	if err != nil {
		return nil, err
	}
	patterns, err := lines(n, "pattern")
	if err != nil {
		return nil, err
	}

	m, err := count("path")
	if err != nil {
		return nil, err
	}
	paths, err := lines(m, "path")
	if err != nil {
		return nil, err
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return &Input{Patterns: patterns, Paths: paths}, nil
}

// WriteResults writes one line per result: the winning pattern text, or
// NO MATCH. The writer is buffered and flushed once.
func WriteResults(w io.Writer, results []string) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := fmt.Fprintln(bw, r); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
