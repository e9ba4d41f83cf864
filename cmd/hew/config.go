package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds every setting of the kmeans command. Zero values in a YAML
// file are kept as written; keys that are absent keep their defaults.
type Config struct {
	Clusters      int       `yaml:"clusters"`
	Results       string    `yaml:"results"`
	Output        string    `yaml:"output"`
	Metric        string    `yaml:"metric"`
	Seeding       string    `yaml:"seeding"`
	LocalTrials   int       `yaml:"local_trials"`
	AutoK         bool      `yaml:"auto_k"`
	MaxK          int       `yaml:"max_k"`
	Bootstrap     int       `yaml:"bootstrap"`
	Seed          int64     `yaml:"seed"`
	MaxIterations int       `yaml:"max_iterations"`
	Tolerance     float64   `yaml:"tolerance"`
	Restarts      int       `yaml:"restarts"`
	Workers       int       `yaml:"workers"`
	MemoryLimit   int64     `yaml:"memory_limit"`
	IOLimit       int64     `yaml:"io_limit"`
	Log           LogConfig `yaml:"log"`
}

// DefaultConfig returns the settings used when neither a config file nor a
// flag says otherwise.
func DefaultConfig() Config {
	return Config{
		Clusters:      6,
		Results:       "cluster",
		Output:        "clusters.txt",
		Metric:        "squared-euclidean",
		Seeding:       "kmeans++",
		LocalTrials:   1,
		MaxK:          10,
		Bootstrap:     10,
		MaxIterations: 300,
		Restarts:      1,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig overlays the YAML file at path onto base. Unknown keys are
// rejected.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	return decodeConfig(data, base)
}

func decodeConfig(data []byte, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges that the engine would otherwise report later and
// less clearly.
func (c Config) Validate() error {
	switch {
	case c.Clusters < 1:
		return fmt.Errorf("clusters must be at least 1, got %d", c.Clusters)
	case c.AutoK && c.MaxK < 2:
		return fmt.Errorf("max-k must be at least 2, got %d", c.MaxK)
	case c.AutoK && c.Bootstrap < 1:
		return fmt.Errorf("bootstrap must be at least 1, got %d", c.Bootstrap)
	case c.MaxIterations < 0:
		return fmt.Errorf("max-iterations must not be negative, got %d", c.MaxIterations)
	case c.Tolerance < 0:
		return fmt.Errorf("tolerance must not be negative, got %g", c.Tolerance)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	case c.MemoryLimit < 0 || c.IOLimit < 0:
		return errors.New("limits must not be negative")
	case c.Results == "":
		return errors.New("results column name must not be empty")
	case c.Output == "":
		return errors.New("output path must not be empty")
	}
	return nil
}

// bindFlags registers one flag per setting, storing into dst.
func bindFlags(fs *pflag.FlagSet, dst *Config) {
	def := DefaultConfig()

	fs.IntVarP(&dst.Clusters, "clusters", "c", def.Clusters, "the number of clusters")
	fs.StringVarP(&dst.Results, "results", "r", def.Results, "the column that holds the result")
	fs.StringVarP(&dst.Output, "output", "o", def.Output, "the file that will hold the results (- for stdout)")
	fs.StringVar(&dst.Metric, "metric", def.Metric, "distance metric: squared-euclidean, cosine or manhattan")
	fs.StringVar(&dst.Seeding, "seeding", def.Seeding, "initial centroid strategy: kmeans++ or random")
	fs.IntVar(&dst.LocalTrials, "local-trials", def.LocalTrials, "k-means++ candidates per seed (1 = classic, 0 = 2+ln(k))")
	fs.BoolVar(&dst.AutoK, "auto-k", def.AutoK, "choose the number of clusters with the gap statistic")
	fs.IntVar(&dst.MaxK, "max-k", def.MaxK, "largest k scanned by --auto-k")
	fs.IntVar(&dst.Bootstrap, "bootstrap", def.Bootstrap, "reference datasets per k for --auto-k")
	fs.Int64Var(&dst.Seed, "seed", def.Seed, "random seed (0 = time based)")
	fs.IntVar(&dst.MaxIterations, "max-iterations", def.MaxIterations, "Lloyd iteration cap (0 = unlimited)")
	fs.Float64Var(&dst.Tolerance, "tolerance", def.Tolerance, "convergence tolerance on centroid movement (0 = exact)")
	fs.IntVar(&dst.Restarts, "restarts", def.Restarts, "independent runs, the tightest is kept")
	fs.IntVar(&dst.Workers, "workers", def.Workers, "parallel fits for --auto-k (0 = all CPUs)")
	fs.Int64Var(&dst.MemoryLimit, "memory-limit", def.MemoryLimit, "bytes of reference data in flight for --auto-k (0 = unlimited)")
	fs.Int64Var(&dst.IOLimit, "io-limit", def.IOLimit, "input read rate in bytes per second (0 = unlimited)")
	fs.StringVar(&dst.Log.Level, "log-level", def.Log.Level, "debug, info, warn or error")
	fs.StringVar(&dst.Log.Format, "log-format", def.Log.Format, "text, json or none")
}

// applyFlags copies every flag the user set explicitly from src into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet, src *Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "clusters":
			cfg.Clusters = src.Clusters
		case "results":
			cfg.Results = src.Results
		case "output":
			cfg.Output = src.Output
		case "metric":
			cfg.Metric = src.Metric
		case "seeding":
			cfg.Seeding = src.Seeding
		case "local-trials":
			cfg.LocalTrials = src.LocalTrials
		case "auto-k":
			cfg.AutoK = src.AutoK
		case "max-k":
			cfg.MaxK = src.MaxK
		case "bootstrap":
			cfg.Bootstrap = src.Bootstrap
		case "seed":
			cfg.Seed = src.Seed
		case "max-iterations":
			cfg.MaxIterations = src.MaxIterations
		case "tolerance":
			cfg.Tolerance = src.Tolerance
		case "restarts":
			cfg.Restarts = src.Restarts
		case "workers":
			cfg.Workers = src.Workers
		case "memory-limit":
			cfg.MemoryLimit = src.MemoryLimit
		case "io-limit":
			cfg.IOLimit = src.IOLimit
		case "log-level":
			cfg.Log.Level = src.Log.Level
		case "log-format":
			cfg.Log.Format = src.Log.Format
		}
	})
}
