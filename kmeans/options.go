package kmeans

import (
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"strings"
	"time"

	"github.com/hewlib/hew/resource"
)

// DefaultMaxIterations caps the relocation loop unless WithMaxIterations
// overrides it.
const DefaultMaxIterations = 300

// Seeding selects how initial centroids are chosen.
type Seeding int

const (
	// SeedingKMeansPlusPlus samples seeds proportionally to their distance
	// from the seeds already chosen.
	SeedingKMeansPlusPlus Seeding = iota
	// SeedingRandom picks k distinct dataset points uniformly.
	SeedingRandom
)

func (s Seeding) String() string {
	switch s {
	case SeedingKMeansPlusPlus:
		return "kmeans++"
	case SeedingRandom:
		return "random"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ParseSeeding resolves a seeding name as produced by Seeding.String.
func ParseSeeding(s string) (Seeding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kmeans++", "k-means++", "plusplus":
		return SeedingKMeansPlusPlus, nil
	case "random":
		return SeedingRandom, nil
	default:
		return 0, fmt.Errorf("unsupported seeding: %q", s)
	}
}

type options struct {
	seeding       Seeding
	localTrials   int
	maxIterations int
	tolerance     float64
	restarts      int
	workers       int
	rng           *rand.Rand
	logger        *slog.Logger
	metrics       MetricsObserver
	rc            *resource.Controller
}

// Option configures a fit or a gap-statistic search.
type Option func(*options)

// WithSeeding selects the seeding strategy. Default: SeedingKMeansPlusPlus.
func WithSeeding(s Seeding) Option {
	return func(o *options) {
		o.seeding = s
	}
}

// WithLocalTrials turns on greedy k-means++: n candidates are drawn per seed
// and the one that lowers the total distance to the nearest seed the most is
// kept. The default, 1, is classic k-means++. If n <= 0, 2+ln(k) candidates
// are drawn.
func WithLocalTrials(n int) Option {
	return func(o *options) {
		o.localTrials = n
	}
}

// WithMaxIterations caps the relocation loop. A capped fit returns the
// lowest-dispersion state it visited with Converged set to false.
// If n <= 0, the loop runs until convergence.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance declares convergence once no centroid coordinate moves by
// more than tol. With the default of 0, convergence requires the centroid set
// to repeat exactly.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithRestarts runs n independently seeded fits and keeps the one with the
// lowest dispersion. Default: 1.
func WithRestarts(n int) Option {
	return func(o *options) {
		o.restarts = n
	}
}

// WithWorkers bounds the number of concurrent fits in GapStatistic.
// If n <= 0, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRand sets the random source. The generator is not safe for concurrent
// use, so it must not be shared with other goroutines while a call runs.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithSeed seeds a private random source, making results reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsObserver sets the observer notified of iterations, fits and
// gap evaluations. Pass nil to disable.
func WithMetricsObserver(m MetricsObserver) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithResourceController bounds workers and reference-dataset memory in
// GapStatistic.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		seeding:       SeedingKMeansPlusPlus,
		localTrials:   1,
		maxIterations: DefaultMaxIterations,
		restarts:      1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.metrics == nil {
		o.metrics = NoopMetricsObserver{}
	}
	if o.restarts < 1 {
		o.restarts = 1
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}
