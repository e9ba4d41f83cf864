// Package testutil provides dataset generators for clustering tests.
//
// This package is intended for use in tests and benchmarks only.
//
//	rng := testutil.NewRNG(seed)
//	points := rng.GaussianBlobs(testutil.FourBlobCenters, 100, 0.1)
//	noise := rng.UniformPoints(400, 2, -1, 1)
package testutil
