package kmeans

import (
	"sync/atomic"
	"time"
)

// MetricsObserver receives events from fits and gap-statistic searches.
// During GapStatistic the methods are called from several goroutines.
type MetricsObserver interface {
	// OnIteration is called once per relocation iteration with the
	// dispersion of the assignment against the iteration's centroids.
	OnIteration(k, iteration int, dispersion float64)

	// OnFit is called when a fit completes.
	OnFit(k, iterations int, converged bool, duration time.Duration, err error)

	// OnGap is called once per candidate k of a gap-statistic search.
	OnGap(k int, gap, stdErr float64)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnIteration(int, int, float64)              {}
func (NoopMetricsObserver) OnFit(int, int, bool, time.Duration, error) {}
func (NoopMetricsObserver) OnGap(int, float64, float64)                {}

// BasicMetricsObserver provides simple in-memory counters.
type BasicMetricsObserver struct {
	Iterations   atomic.Int64
	FitCount     atomic.Int64
	FitErrors    atomic.Int64
	NotConverged atomic.Int64
	FitNanos     atomic.Int64
	GapCount     atomic.Int64
}

// OnIteration implements MetricsObserver.
func (b *BasicMetricsObserver) OnIteration(int, int, float64) {
	b.Iterations.Add(1)
}

// OnFit implements MetricsObserver.
func (b *BasicMetricsObserver) OnFit(_ int, _ int, converged bool, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
		return
	}
	if !converged {
		b.NotConverged.Add(1)
	}
}

// OnGap implements MetricsObserver.
func (b *BasicMetricsObserver) OnGap(int, float64, float64) {
	b.GapCount.Add(1)
}

// BasicMetricsStats is a snapshot of BasicMetricsObserver state.
type BasicMetricsStats struct {
	Iterations   int64
	FitCount     int64
	FitErrors    int64
	NotConverged int64
	FitAvgNanos  int64
	GapCount     int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsObserver) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		Iterations:   b.Iterations.Load(),
		FitCount:     b.FitCount.Load(),
		FitErrors:    b.FitErrors.Load(),
		NotConverged: b.NotConverged.Load(),
		GapCount:     b.GapCount.Load(),
	}
	if s.FitCount > 0 {
		s.FitAvgNanos = b.FitNanos.Load() / s.FitCount
	}
	return s
}
