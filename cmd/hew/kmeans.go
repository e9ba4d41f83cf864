package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/hewlib/hew"
	"github.com/hewlib/hew/distance"
	"github.com/hewlib/hew/kmeans"
	"github.com/hewlib/hew/resource"
	"github.com/hewlib/hew/tabular"
	"github.com/spf13/cobra"
)

func newKMeansCmd() *cobra.Command {
	var (
		flags   Config
		cfgFile string
	)

	cmd := &cobra.Command{
		Use:   "kmeans <input> <field>...",
		Short: "Determine clusters from a table of features",
		Long: `Cluster the rows of a tab-separated file on the given numeric fields.

The first line of the input names the columns. Field values "true" and
"false" count as 1 and 0; a field missing from a row counts as 0. The
output repeats the input with a 1-based cluster column appended.

Settings come from the defaults, then the --config YAML file, then any
flag given on the command line.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultConfig()
			if cfgFile != "" {
				var err error
				if cfg, err = LoadConfig(cfgFile, cfg); err != nil {
					return err
				}
			}
			applyFlags(&cfg, cmd.Flags(), &flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runKMeans(cmd, cfg, args[0], args[1:])
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "YAML config file")
	bindFlags(cmd.Flags(), &flags)
	return cmd
}

func newLogger(w io.Writer, lc LogConfig) (*hew.Logger, error) {
	if strings.EqualFold(lc.Format, "none") {
		return hew.NoopLogger(), nil
	}
	level, ok := hew.ParseLevel(lc.Level)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", lc.Level)
	}
	switch strings.ToLower(lc.Format) {
	case "", "text":
		return hew.NewTextLogger(w, level), nil
	case "json":
		return hew.NewJSONLogger(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", lc.Format)
	}
}

func runKMeans(cmd *cobra.Command, cfg Config, input string, fields []string) error {
	ctx := cmd.Context()

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}

	metric, err := distance.ParseMetric(cfg.Metric)
	if err != nil {
		return err
	}
	dist, err := distance.Provider(metric)
	if err != nil {
		return err
	}
	seeding, err := kmeans.ParseSeeding(cfg.Seeding)
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   cfg.MemoryLimit,
		MaxWorkers:         int64(workers),
		IOLimitBytesPerSec: cfg.IOLimit,
	})
	limits := rc.Config()
	logger.DebugContext(ctx, "resource limits",
		slog.Int64("memory_bytes", limits.MemoryLimitBytes),
		slog.Int64("workers", limits.MaxWorkers),
		slog.Int64("io_bytes_per_sec", limits.IOLimitBytesPerSec),
	)

	tbl, err := tabular.ReadFile(ctx, input, tabular.WithResourceController(rc))
	logger.LogRead(ctx, input, rowCount(tbl), err)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if !tbl.Has(f) {
			logger.WarnContext(ctx, "field not in header, every value counts as 0", "field", f)
		}
	}

	points, err := tabular.ExtractPoints(tbl, fields)
	if err != nil {
		return err
	}

	metrics := &kmeans.BasicMetricsObserver{}
	opts := []kmeans.Option{
		kmeans.WithSeeding(seeding),
		kmeans.WithLocalTrials(cfg.LocalTrials),
		kmeans.WithMaxIterations(cfg.MaxIterations),
		kmeans.WithTolerance(cfg.Tolerance),
		kmeans.WithRestarts(cfg.Restarts),
		kmeans.WithWorkers(workers),
		kmeans.WithLogger(logger.WithDimension(len(fields)).WithCount(len(points)).Logger),
		kmeans.WithMetricsObserver(metrics),
		kmeans.WithResourceController(rc),
	}
	if cfg.Seed != 0 {
		opts = append(opts, kmeans.WithSeed(cfg.Seed))
	}

	k := cfg.Clusters
	if cfg.AutoK {
		maxK := cfg.MaxK
		if maxK > len(points) {
			logger.WarnContext(ctx, "max-k exceeds the number of rows, lowering it",
				"max_k", maxK,
				"rows", len(points),
			)
			maxK = len(points)
		}
		k, err = kmeans.OptimalK(ctx, points, dist, maxK, cfg.Bootstrap, opts...)
		logger.LogSelection(ctx, maxK, cfg.Bootstrap, k, err)
		if errors.Is(err, kmeans.ErrNotFound) {
			return fmt.Errorf("gap statistic found no k in [1, %d); set --clusters instead: %w", maxK, err)
		}
		if err != nil {
			return err
		}
	}

	start := time.Now()
	c, err := kmeans.Fit(ctx, points, k, dist, opts...)
	if err != nil {
		logger.LogFit(ctx, k, 0, false, time.Since(start), err)
		return err
	}
	logger.LogFit(ctx, k, c.Iterations, c.Converged, time.Since(start), nil)

	clusterLog := logger.WithK(k)
	for j, m := range c.Members() {
		clusterLog.InfoContext(ctx, "cluster",
			"cluster", j+1,
			"size", m.GetCardinality(),
			"centroid", c.Centroids[j],
			"wk", kmeans.MemberWk(points, c.Centroids[j], m, dist),
		)
	}

	stats := metrics.GetStats()
	logger.DebugContext(ctx, "engine stats",
		slog.Int64("fits", stats.FitCount),
		slog.Int64("iterations", stats.Iterations),
		slog.Int64("not_converged", stats.NotConverged),
		slog.Int64("gap_rows", stats.GapCount),
	)

	err = tabular.WriteFile(cfg.Output, tbl, cfg.Results, c.Assignment)
	logger.LogWrite(ctx, cfg.Output, len(tbl.Rows), err)
	return err
}

func rowCount(t *tabular.Table) int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
