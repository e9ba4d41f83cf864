// Package resource bounds the resources consumed by parallel clustering work.
//
// A Controller governs three budgets:
//
//   - Workers: concurrent fits during a gap-statistic search
//   - Memory: bytes held by materialized bootstrap reference datasets
//   - IO: bytes per second read from input streams
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    MaxWorkers:       4,
//	    MemoryLimitBytes: 256 << 20,
//	})
//	k, err := kmeans.OptimalK(ctx, points, dist, 10, 10, kmeans.WithResourceController(rc))
//
// All methods are safe for concurrent use, and a nil *Controller imposes no
// limits.
package resource
