// Package kmeans implements centroid-based clustering under a pluggable
// distance function.
//
// A fit runs in two phases:
//
//   - Seeding chooses k initial centroids from the dataset, either uniformly
//     (SeedingRandom) or with distance-weighted k-means++ sampling
//     (SeedingKMeansPlusPlus, the default).
//   - Relocation (Lloyd's algorithm) alternates nearest-centroid assignment
//     and recentering until the centroid set stops changing.
//
// The dispersion Wk of a fitted clustering is the total distance from each
// point to its centroid. GapStatistic compares log(Wk) on the data against
// uniform reference datasets drawn from the data's bounding box to choose the
// number of clusters; OptimalK returns that choice directly.
//
// # Usage
//
//	dist, _ := distance.Provider(distance.MetricSquaredEuclidean)
//	c, err := kmeans.Fit(ctx, points, 4, dist, kmeans.WithSeed(42))
//	fmt.Println(c.Centroids, c.Iterations, c.Dispersion)
//
//	k, err := kmeans.OptimalK(ctx, points, dist, 10, 10)
//	if errors.Is(err, kmeans.ErrNotFound) {
//	    // no k in range stood out from the reference distribution
//	}
//
// Every call that needs randomness takes its generator from the options
// (WithSeed or WithRand), so results are reproducible for a fixed seed.
// Independent fits share no mutable state.
package kmeans
