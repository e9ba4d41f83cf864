// Package vector provides the point type shared by the clustering engine and
// the stateless operations defined over it.
//
// # Operations
//
//   - Bounds: per-dimension minimum and maximum of a point set
//   - Centroid: coordinate-wise arithmetic mean
//   - Dot, Length: inner product and Euclidean norm
//   - Dim: dimensionality validation for a dataset
//
// Distance functions live in package distance.
package vector
