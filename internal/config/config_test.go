package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, DirName, ConfigFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg := Default()
	cfg.Engine.Workers = 4
	cfg.Engine.Timeout = 30 * time.Second
	cfg.Match.Syntax = "glob"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Engine.Workers != 4 {
		t.Errorf("workers = %d, want 4", loaded.Engine.Workers)
	}
	if loaded.Engine.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", loaded.Engine.Timeout)
	}
	if loaded.Match.Syntax != "glob" {
		t.Errorf("syntax = %q, want glob", loaded.Match.Syntax)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, DirName, ConfigFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := Default().Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Setenv("WILDPATH_WORKERS", "7")
	t.Setenv("WILDPATH_SYNTAX", "glob")
	t.Setenv("WILDPATH_TIMEOUT", "5s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.Workers != 7 {
		t.Errorf("workers = %d, want 7 from env", cfg.Engine.Workers)
	}
	if cfg.Match.Syntax != "glob" {
		t.Errorf("syntax = %q, want glob from env", cfg.Match.Syntax)
	}
	if cfg.Engine.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s from env", cfg.Engine.Timeout)
	}
}

func TestFindRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, DirName), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	root, err := FindRoot(nested)
	if err != nil {
		t.Fatalf("find root: %v", err)
	}
	// Resolve symlinks so macOS /tmp vs /private/tmp compares equal.
	wantRoot, _ := filepath.EvalSymlinks(tmpDir)
	gotRoot, _ := filepath.EvalSymlinks(root)
	if gotRoot != wantRoot {
		t.Errorf("root = %q, want %q", gotRoot, wantRoot)
	}
}

func TestFindRootNotFound(t *testing.T) {
	tmpDir := t.TempDir()
	if _, err := FindRoot(tmpDir); err == nil {
		t.Error("expected error outside a wildpath directory")
	}
}
