package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := decodeConfig([]byte(`
clusters: 3
metric: cosine
auto_k: true
tolerance: 0.001
log:
  format: json
`), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Clusters)
	assert.Equal(t, "cosine", cfg.Metric)
	assert.True(t, cfg.AutoK)
	assert.InDelta(t, 0.001, cfg.Tolerance, 1e-12)
	assert.Equal(t, "json", cfg.Log.Format)

	// Untouched keys keep their defaults.
	assert.Equal(t, "cluster", cfg.Results)
	assert.Equal(t, 10, cfg.MaxK)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDecodeConfig_Empty(t *testing.T) {
	cfg, err := decodeConfig(nil, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDecodeConfig_UnknownKey(t *testing.T) {
	_, err := decodeConfig([]byte("clustrs: 3\n"), DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clustrs")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hew.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_k: 7\nbootstrap: 20\n"), 0o644))

	cfg, err := LoadConfig(path, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxK)
	assert.Equal(t, 20, cfg.Bootstrap)
}

func TestConfigPrecedence(t *testing.T) {
	fs := pflag.NewFlagSet("kmeans", pflag.ContinueOnError)
	var flags Config
	bindFlags(fs, &flags)
	require.NoError(t, fs.Parse([]string{"-r", "label", "--seed", "9", "--log-level", "debug", "--local-trials", "3"}))

	cfg, err := decodeConfig([]byte("clusters: 3\nresults: grp\nseed: 1\n"), DefaultConfig())
	require.NoError(t, err)
	applyFlags(&cfg, fs, &flags)

	assert.Equal(t, 3, cfg.Clusters, "file beats default")
	assert.Equal(t, "label", cfg.Results, "flag beats file")
	assert.Equal(t, int64(9), cfg.Seed, "flag beats file")
	assert.Equal(t, "debug", cfg.Log.Level, "flag beats default")
	assert.Equal(t, "clusters.txt", cfg.Output, "default survives")
	assert.Equal(t, 3, cfg.LocalTrials, "flag beats default")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero clusters", func(c *Config) { c.Clusters = 0 }, false},
		{"auto-k max-k 1", func(c *Config) { c.AutoK = true; c.MaxK = 1 }, false},
		{"max-k ignored without auto-k", func(c *Config) { c.MaxK = 1 }, true},
		{"auto-k no bootstrap", func(c *Config) { c.AutoK = true; c.Bootstrap = 0 }, false},
		{"negative tolerance", func(c *Config) { c.Tolerance = -1 }, false},
		{"negative workers", func(c *Config) { c.Workers = -2 }, false},
		{"negative io limit", func(c *Config) { c.IOLimit = -1 }, false},
		{"empty results", func(c *Config) { c.Results = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
