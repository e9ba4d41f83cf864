package kmeans

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/hewlib/hew/distance"
	"github.com/hewlib/hew/montecarlo"
	"github.com/hewlib/hew/stats"
	"github.com/hewlib/hew/vector"
	"golang.org/x/sync/errgroup"
)

// GapRow holds the gap statistic for one candidate cluster count.
type GapRow struct {
	K int
	// LogWk is log(Wk) of the fit on the data.
	LogWk float64
	// RefLogWk is the mean log(Wk) over the reference datasets.
	RefLogWk float64
	// Gap is RefLogWk - LogWk.
	Gap float64
	// StdErr is the reference standard deviation scaled by sqrt(1 + 1/B).
	StdErr float64
}

// GapResult is the table computed by GapStatistic, one row per k from 1.
type GapResult struct {
	Rows      []GapRow
	Bootstrap int
}

// Select returns the smallest k with gap(k) > gap(k+1) - stdErr(k+1), or
// ErrNotFound when no k below the largest scanned one qualifies.
func (r *GapResult) Select() (int, error) {
	for i := 0; i+1 < len(r.Rows); i++ {
		cur, next := r.Rows[i], r.Rows[i+1]
		if cur.Gap-(next.Gap-next.StdErr) > 0 {
			return cur.K, nil
		}
	}
	return 0, ErrNotFound
}

// OptimalK chooses the number of clusters in [1, maxK) with the gap
// statistic. It returns ErrNotFound if no k qualifies.
func OptimalK(ctx context.Context, points []vector.Point, dist distance.Distance, maxK, bootstrap int, opts ...Option) (int, error) {
	r, err := GapStatistic(ctx, points, dist, maxK, bootstrap, opts...)
	if err != nil {
		return 0, err
	}
	return r.Select()
}

type gapJob struct {
	k         int
	replicate int // 0 is the observed data
	seed      int64
}

// GapStatistic fits the data and bootstrap reference datasets for every k in
// [1, maxK]. Reference datasets have as many points as the data and are
// drawn uniformly from its bounding box.
//
// The maxK*(1+bootstrap) fits run concurrently (see WithWorkers and
// WithResourceController). Each fit gets its own random source derived from
// the configured one before any work starts, so the result does not depend
// on scheduling.
func GapStatistic(ctx context.Context, points []vector.Point, dist distance.Distance, maxK, bootstrap int, opts ...Option) (*GapResult, error) {
	o := applyOptions(opts)

	d, err := vector.Dim(points)
	if err != nil {
		return nil, err
	}
	if maxK < 1 || maxK > len(points) {
		return nil, &ErrInvalidK{K: maxK, N: len(points)}
	}
	if bootstrap < 1 {
		return nil, fmt.Errorf("%w: bootstrap samples must be positive, got %d", ErrInvalidInput, bootstrap)
	}

	sampler, err := montecarlo.ForPoints(points)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	n := len(points)
	replicateBytes := int64(n) * int64(d) * 8

	logWks := make([][]float64, maxK)
	jobs := make([]gapJob, 0, maxK*(1+bootstrap))
	for k := 1; k <= maxK; k++ {
		logWks[k-1] = make([]float64, 1+bootstrap)
		for b := 0; b <= bootstrap; b++ {
			jobs = append(jobs, gapJob{k: k, replicate: b, seed: o.rng.Int63()})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := o.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer o.rc.ReleaseWorker()

			rng := rand.New(rand.NewSource(job.seed))
			data := points
			if job.replicate > 0 {
				if err := o.rc.AcquireMemory(gctx, replicateBytes); err != nil {
					return err
				}
				defer o.rc.ReleaseMemory(replicateBytes)
				data = sampler.Sample(rng, n)
			}

			c, err := fit(gctx, data, job.k, dist, rng, &o)
			if err != nil {
				return fmt.Errorf("gap statistic k=%d replicate=%d: %w", job.k, job.replicate, err)
			}
			logWks[job.k-1][job.replicate] = logDispersion(c.Dispersion)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &GapResult{
		Rows:      make([]GapRow, maxK),
		Bootstrap: bootstrap,
	}
	scale := math.Sqrt(1 + 1/float64(bootstrap))
	for k := 1; k <= maxK; k++ {
		var ref stats.RunningStatistics
		for _, v := range logWks[k-1][1:] {
			ref.Add(v)
		}

		row := GapRow{
			K:        k,
			LogWk:    logWks[k-1][0],
			RefLogWk: ref.Mean(),
			StdErr:   ref.StandardDeviation() * scale,
		}
		row.Gap = row.RefLogWk - row.LogWk
		result.Rows[k-1] = row

		o.metrics.OnGap(k, row.Gap, row.StdErr)
		o.logger.Debug("gap statistic",
			"k", k,
			"log_wk", row.LogWk,
			"ref_log_wk", row.RefLogWk,
			"gap", row.Gap,
			"std_err", row.StdErr,
		)
	}

	o.logger.Debug("gap statistic complete",
		"max_k", maxK,
		"bootstrap", bootstrap,
		"fits", len(jobs),
		"duration", time.Since(start),
	)

	return result, nil
}

// logDispersion keeps log(Wk) finite when a clustering is exact.
func logDispersion(wk float64) float64 {
	return math.Log(max(wk, math.SmallestNonzeroFloat64))
}
