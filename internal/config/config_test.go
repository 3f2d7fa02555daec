package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Path = "ledger.db"
	cfg.SeedCategories = []SeedCategory{
		{ID: 1, Name: "Rent", Kind: "expense"},
		{ID: 2, Name: "Wages", Kind: "income"},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", got.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, "ledger.db"), got.Storage.Path, "relative paths resolve against the config dir")
	assert.Equal(t, cfg.Storage.Key, got.Storage.Key)
	assert.Equal(t, cfg.Log, got.Log)
	assert.Equal(t, cfg.SeedCategories, got.SeedCategories)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "data", cfg.Storage.Path)
	assert.Equal(t, "meu_financeiro_db", cfg.Storage.Key)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.SeedCategories)
	assert.Nil(t, cfg.Seed())
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "meu_financeiro_db", cfg.Storage.Key)
}

func TestLoad_AbsolutePathUntouched(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere")
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: file\n  path: "+abs+"\n  key: k\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Storage.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "unknown storage.backend"},
		{"missing path", func(c *Config) { c.Storage.Path = "" }, "storage.path is required"},
		{"missing key", func(c *Config) { c.Storage.Key = "" }, "storage.key is required"},
		{"bad seed kind", func(c *Config) {
			c.SeedCategories = []SeedCategory{{ID: 1, Name: "X", Kind: "Despesa"}}
		}, "unknown kind"},
		{"unnamed seed", func(c *Config) {
			c.SeedCategories = []SeedCategory{{ID: 1, Kind: "expense"}}
		}, "has no name"},
		{"zero seed id", func(c *Config) {
			c.SeedCategories = []SeedCategory{{ID: 0, Name: "Rent", Kind: "expense"}}
		}, "needs a positive id"},
		{"negative seed id", func(c *Config) {
			c.SeedCategories = []SeedCategory{{ID: -3, Name: "Rent", Kind: "expense"}}
		}, "needs a positive id"},
		{"duplicate seed id", func(c *Config) {
			c.SeedCategories = []SeedCategory{{ID: 1, Name: "A", Kind: "expense"}, {ID: 1, Name: "B", Kind: "income"}}
		}, "duplicate seed category id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	mem := Default()
	mem.Storage.Backend = "memory"
	mem.Storage.Path = ""
	assert.NoError(t, mem.Validate(), "memory needs no path")
}

func TestSeed(t *testing.T) {
	cfg := Default()
	cfg.SeedCategories = []SeedCategory{{ID: 9, Name: "Rent", Kind: "expense"}}
	assert.Equal(t, []model.Category{{ID: 9, Name: "Rent", Kind: model.KindExpense}}, cfg.Seed())
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "backend: file")
	assert.Contains(t, contents, "key: meu_financeiro_db")
	assert.Contains(t, contents, "level: warn")
	assert.NotContains(t, contents, "seed_categories")
}
