package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/wildpath/wildpath/internal/pattern"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "patterns.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAddAndList(t *testing.T) {
	db := openTestDB(t)

	for _, raw := range []string{"a,b,c", "a,*,c", "*,*,c"} {
		if _, err := db.Add("default", raw, pattern.SyntaxField); err != nil {
			t.Fatalf("add %q: %v", raw, err)
		}
	}

	entries, err := db.List("default")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[1].Raw != "a,*,c" || entries[1].Wildcards != 1 {
		t.Errorf("entry 1 = %+v, want a,*,c with 1 wildcard", entries[1])
	}
}

func TestAddNormalizesRaw(t *testing.T) {
	db := openTestDB(t)

	e, err := db.Add("default", ",a,b,", pattern.SyntaxField)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Raw != "a,b" {
		t.Errorf("raw = %q, want a,b", e.Raw)
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.Add("default", "a,b", pattern.SyntaxField); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := db.Add("default", "a,b", pattern.SyntaxField)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("second add error = %v, want ErrDuplicate", err)
	}

	// Same pattern in a different set is fine.
	if _, err := db.Add("other", "a,b", pattern.SyntaxField); err != nil {
		t.Errorf("add to other set: %v", err)
	}
}

func TestAddRejectsInvalidPattern(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.Add("default", "a,,b", pattern.SyntaxField); err == nil {
		t.Error("expected error for empty field")
	}
}

func TestAddRejectsSyntaxMismatch(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.Add("default", "a,b", pattern.SyntaxField); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := db.Add("default", "src/**", pattern.SyntaxGlob)
	if !errors.Is(err, ErrSyntaxMismatch) {
		t.Errorf("error = %v, want ErrSyntaxMismatch", err)
	}
}

func TestRemove(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.Add("default", "a,b", pattern.SyntaxField); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := db.Remove("default", "a,b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := db.Remove("default", "a,b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove again error = %v, want ErrNotFound", err)
	}
}

func TestLoadSet(t *testing.T) {
	db := openTestDB(t)

	for _, raw := range []string{"a,b,c", "a,*,c"} {
		if _, err := db.Add("routes", raw, pattern.SyntaxField); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	set, err := db.LoadSet("routes")
	if err != nil {
		t.Fatalf("load set: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("set len = %d, want 2", set.Len())
	}
	if r, ok := set.Best("a/b/c"); !ok || r.Raw != "a,b,c" {
		t.Errorf("best = %v %v, want a,b,c", r, ok)
	}

	if _, err := db.LoadSet("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("load missing set error = %v, want ErrNotFound", err)
	}
}

func TestSets(t *testing.T) {
	db := openTestDB(t)

	db.Add("b", "x,y", pattern.SyntaxField)
	db.Add("a", "x,y", pattern.SyntaxField)

	sets, err := db.Sets()
	if err != nil {
		t.Fatalf("sets: %v", err)
	}
	if len(sets) != 2 || sets[0] != "a" || sets[1] != "b" {
		t.Errorf("sets = %v, want [a b]", sets)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	src, err := Open(filepath.Join(tmpDir, "src.db"))
	if err != nil {
		t.Fatalf("open src: %v", err)
	}
	defer src.Close()

	for _, raw := range []string{"a,b,c", "a,*,c", "x,y"} {
		if _, err := src.Add("default", raw, pattern.SyntaxField); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	jsonl := NewJSONL(filepath.Join(tmpDir, "patterns.jsonl"))
	n, err := src.Export(jsonl)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 3 {
		t.Errorf("exported %d, want 3", n)
	}

	dst, err := Open(filepath.Join(tmpDir, "dst.db"))
	if err != nil {
		t.Fatalf("open dst: %v", err)
	}
	defer dst.Close()

	added, skipped, err := dst.Import(jsonl)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if added != 3 || skipped != 0 {
		t.Errorf("added %d skipped %d, want 3/0", added, skipped)
	}

	// Re-import skips everything.
	added, skipped, err = dst.Import(jsonl)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if added != 0 || skipped != 3 {
		t.Errorf("added %d skipped %d, want 0/3", added, skipped)
	}
}

func TestJSONLMissingFile(t *testing.T) {
	j := NewJSONL(filepath.Join(t.TempDir(), "nope.jsonl"))
	entries, err := j.ReadAll()
	if err != nil {
		t.Fatalf("read missing file: %v", err)
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil", entries)
	}
}
