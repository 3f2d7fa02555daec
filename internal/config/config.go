package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tallybook/tally/internal/blobstore"
	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// FileName is the default config file name.
const FileName = "tally.yaml"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Storage        StorageConfig  `yaml:"storage"`
	Log            LogConfig      `yaml:"log"`
	SeedCategories []SeedCategory `yaml:"seed_categories,omitempty"`
}

// StorageConfig selects where the ledger blob lives.
type StorageConfig struct {
	Backend string `yaml:"backend"` // memory, file or sqlite
	Path    string `yaml:"path"`    // directory (file) or database file (sqlite), relative to the config
	Key     string `yaml:"key"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// SeedCategory is a category a fresh ledger starts with.
type SeedCategory struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// Load reads a tally.yaml file from disk. A relative storage path is
// resolved against the directory holding the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Storage.Path != "" && !filepath.IsAbs(cfg.Storage.Path) {
		cfg.Storage.Path = filepath.Join(filepath.Dir(path), cfg.Storage.Path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: blobstore.BackendFile,
			Path:    "data",
			Key:     ledger.DefaultKey,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Validate checks the values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case blobstore.BackendMemory:
	case blobstore.BackendFile, blobstore.BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("invalid config: storage.path is required for the %s backend", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("invalid config: unknown storage.backend %q", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("invalid config: storage.key is required")
	}
	seen := make(map[int64]bool, len(c.SeedCategories))
	for _, sc := range c.SeedCategories {
		if sc.ID <= 0 {
			return fmt.Errorf("invalid config: seed category %q needs a positive id, got %d", sc.Name, sc.ID)
		}
		if sc.Name == "" {
			return fmt.Errorf("invalid config: seed category %d has no name", sc.ID)
		}
		if !model.CategoryKind(sc.Kind).Valid() {
			return fmt.Errorf("invalid config: seed category %q has unknown kind %q", sc.Name, sc.Kind)
		}
		if seen[sc.ID] {
			return fmt.Errorf("invalid config: duplicate seed category id %d", sc.ID)
		}
		seen[sc.ID] = true
	}
	return nil
}

// Seed converts the configured seed categories. It returns nil when none
// are configured, leaving the ledger defaults in place.
func (c *Config) Seed() []model.Category {
	if len(c.SeedCategories) == 0 {
		return nil
	}
	out := make([]model.Category, 0, len(c.SeedCategories))
	for _, sc := range c.SeedCategories {
		out = append(out, model.Category{ID: sc.ID, Name: sc.Name, Kind: model.CategoryKind(sc.Kind)})
	}
	return out
}
