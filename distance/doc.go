// Package distance provides the distance functions used by the clustering
// engine.
//
// # Supported Metrics
//
//   - MetricSquaredEuclidean: sum of squared coordinate differences (default)
//   - MetricCosine: angle between two vectors, in radians
//   - MetricManhattan: sum of absolute coordinate differences
//
// # Usage
//
//	d := distance.SquaredEuclidean(a, b)
//	fn, _ := distance.Provider(distance.MetricCosine)
//	theta := fn.Distance(a, b)
package distance
