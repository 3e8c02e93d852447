package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONL handles reading and writing pattern entries to JSONL files.
type JSONL struct {
	path string
}

// NewJSONL creates a new JSONL handler for the given file path.
func NewJSONL(path string) *JSONL {
	return &JSONL{path: path}
}

// Path returns the JSONL file path.
func (j *JSONL) Path() string {
	return j.path
}

// ReadAll reads all entries from the JSONL file. A missing file is an
// empty export, not an error.
func (j *JSONL) ReadAll() ([]*Entry, error) {
	file, err := os.Open(j.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open jsonl file: %w", err)
	}
	defer file.Close()

	var entries []*Entry
	scanner := bufio.NewScanner(file)

	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", lineNum, err)
		}
		entries = append(entries, &e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read jsonl file: %w", err)
	}

	return entries, nil
}

// WriteAll writes all entries to the JSONL file (overwrites existing).
func (j *JSONL) WriteAll(entries []*Entry) error {
	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := j.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)

	for _, e := range entries {
		if err := encoder.Encode(e); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("encode pattern %q: %w", e.Raw, err)
		}
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(tmpPath, j.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Export writes every stored pattern to the JSONL file.
func (d *DB) Export(j *JSONL) (int, error) {
	entries, err := d.List("")
	if err != nil {
		return 0, err
	}
	if err := j.WriteAll(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Import loads entries from the JSONL file into the database, skipping
// patterns already present. It returns added and skipped counts.
func (d *DB) Import(j *JSONL) (added, skipped int, err error) {
	entries, err := j.ReadAll()
	if err != nil {
		return 0, 0, err
	}

	for i, e := range entries {
		if _, err := d.Add(e.Set, e.Raw, e.Syntax); err != nil {
			if errors.Is(err, ErrDuplicate) {
				skipped++
				continue
			}
			return added, skipped, fmt.Errorf("import line %d: %w", i+1, err)
		}
		added++
	}
	return added, skipped, nil
}
