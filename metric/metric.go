// Package metric defines the distance functions used by the neighbour
// indexes. Distances are computed on float32 vectors via viant/vec.
package metric

import (
	"fmt"

	"github.com/viant/frnn"
	"github.com/viant/vec/search"
)

// Metric enumerates the supported distance metrics.
type Metric string

const (
	Euclidean Metric = "euclidean"
	Cosine    Metric = "cosine"
)

// Func computes the distance between two vectors of equal dimensionality.
type Func func(a, b []float32) float32

// Function resolves the callable distance implementation, or nil for an
// unknown metric.
func (m Metric) Function() Func {
	switch m {
	case Euclidean:
		return EuclideanDistance
	case Cosine:
		return CosineDistance
	default:
		return nil
	}
}

// Triangular reports whether the metric satisfies the triangle
// inequality. Cosine distance does not, so index pruning that relies on
// it must not be applied.
func (m Metric) Triangular() bool { return m == Euclidean }

// Validate returns ErrInvalidConfiguration for an unknown metric.
func (m Metric) Validate() error {
	if m.Function() == nil {
		return fmt.Errorf("metric: unknown distance metric %q: %w", m, frnn.ErrInvalidConfiguration)
	}
	return nil
}

// EuclideanDistance returns the Euclidean (L2) distance between a and b.
func EuclideanDistance(a, b []float32) float32 {
	return search.Float32s(a).EuclideanDistance(b)
}

// CosineDistance returns the cosine distance (1 - cosine similarity)
// between a and b.
func CosineDistance(a, b []float32) float32 {
	return search.Float32s(a).CosineDistance(b)
}
