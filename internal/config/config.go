// Package config handles wildpath configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DirName is the name of the wildpath directory.
	DirName = ".wildpath"
	// ConfigFile is the name of the config file.
	ConfigFile = "config.yaml"
	// DBFile is the name of the SQLite database file.
	DBFile = "patterns.db"
	// JSONLFile is the name of the JSONL export file.
	JSONLFile = "patterns.jsonl"
	// EnvFile is the dotenv file loaded best-effort for overrides and
	// harvest credentials.
	EnvFile = ".env"
)

// Config represents the wildpath configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Match  MatchConfig  `yaml:"match"`
}

// EngineConfig holds concurrency settings.
type EngineConfig struct {
	Workers   int           `yaml:"workers"`    // 0 means NumCPU
	ShardSize int           `yaml:"shard_size"` // 0 means engine default
	Timeout   time.Duration `yaml:"timeout"`    // 0 means no deadline
}

// MatchConfig holds matching defaults.
type MatchConfig struct {
	Syntax     string `yaml:"syntax"`      // field or glob
	DefaultSet string `yaml:"default_set"` // set used when --set is omitted
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{},
		Match: MatchConfig{
			Syntax:     "field",
			DefaultSet: "default",
		},
	}
}

// Load reads the configuration from a file and applies WILDPATH_* env
// overrides. A .env at the project root is honored first, best effort.
func Load(path string) (*Config, error) {
	godotenv.Load(filepath.Join(filepath.Dir(path), "..", EnvFile))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WILDPATH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.Workers = n
		}
	}
	if v := os.Getenv("WILDPATH_SHARD_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.ShardSize = n
		}
	}
	if v := os.Getenv("WILDPATH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Engine.Timeout = d
		}
	}
	if v := os.Getenv("WILDPATH_SYNTAX"); v != "" {
		c.Match.Syntax = v
	}
	if v := os.Getenv("WILDPATH_DEFAULT_SET"); v != "" {
		c.Match.DefaultSet = v
	}
}

// Paths holds the resolved paths for a wildpath installation.
type Paths struct {
	Root   string // .wildpath directory
	Config string // config.yaml
	DB     string // patterns.db
	JSONL  string // patterns.jsonl
}

// ResolvePaths returns the paths for a wildpath installation rooted at
// the given directory.
func ResolvePaths(root string) *Paths {
	dir := filepath.Join(root, DirName)
	return &Paths{
		Root:   dir,
		Config: filepath.Join(dir, ConfigFile),
		DB:     filepath.Join(dir, DBFile),
		JSONL:  filepath.Join(dir, JSONLFile),
	}
}

// FindRoot searches for a .wildpath directory starting from the given
// path and walking up the directory tree.
func FindRoot(startPath string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	current := absPath
	for {
		dir := filepath.Join(current, DirName)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached root
			return "", fmt.Errorf("not a wildpath directory (or any parent): %s", startPath)
		}
		current = parent
	}
}

// Exists checks if a wildpath installation exists at the given path.
func Exists(path string) bool {
	dir := filepath.Join(path, DirName)
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
