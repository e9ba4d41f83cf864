// Package hew is a small data-mining toolkit built around centroid-based
// clustering.
//
// The engine lives in the kmeans package: k-means++ seeding, Lloyd
// relocation, the Wk compactness metric and gap-statistic selection of k.
// It works on vector.Point datasets under any distance.Distance.
//
// # Quick Start
//
//	dist, _ := distance.Provider(distance.MetricSquaredEuclidean)
//	c, err := kmeans.Fit(ctx, points, 4, dist, kmeans.WithSeed(42))
//	if err != nil {
//		return err
//	}
//	fmt.Println(c.Sizes(), c.Converged)
//
// Choosing k:
//
//	k, err := kmeans.OptimalK(ctx, points, dist, 10, 10,
//		kmeans.WithWorkers(4),
//		kmeans.WithResourceController(resource.NewController(resource.Config{MaxWorkers: 4})),
//	)
//	if errors.Is(err, kmeans.ErrNotFound) {
//		// no k in [1, maxK) satisfied the gap criterion
//	}
//
// # Packages
//
//   - vector: Point type, bounds, centroid, dot product, length
//   - distance: squared Euclidean, cosine angle and Manhattan metrics
//   - stats: running count/mean/variance accumulator
//   - montecarlo: uniform sampling inside a bounding box
//   - kmeans: the clustering engine
//   - resource: worker, memory and IO budgets
//   - tabular: TSV input and labelled output, optionally compressed
//
// The hew command (cmd/hew) clusters a TSV file from the command line.
//
// Every caller-contract violation wraps vector.ErrInvalidInput, so
//
//	errors.Is(err, vector.ErrInvalidInput)
//
// identifies bad input regardless of which package reported it.
package hew
