// Package index defines the abstraction for nearest-neighbour indexes that
// can be built once from training vectors, queried for kNN, and serialized
// for persistence. Implementations include a brute-force baseline and a
// VP-tree.
package index

import (
	"fmt"

	"github.com/viant/frnn"
	"github.com/viant/frnn/index/bruteforce"
	"github.com/viant/frnn/index/cover"
	"github.com/viant/frnn/metric"
)

// Index is a nearest-neighbour index over a fixed set of training vectors.
type Index interface {
	// Build constructs the index from the given vectors; positions returned
	// by Query refer to offsets into this slice. Build copies the vectors,
	// so callers may mutate the input afterwards.
	Build(vectors [][]float32) error

	// Len returns the number of indexed vectors.
	Len() int

	// Query returns up to k neighbour positions with their distances,
	// ordered ascending by (distance, position); equidistant neighbours
	// tie-break on the lower training position. k <= 0 or k beyond the
	// vector count returns every neighbour.
	Query(q []float32, k int) (positions []int, distances []float64, err error)

	// MarshalBinary serializes the index into a byte slice.
	MarshalBinary() ([]byte, error)

	// UnmarshalBinary reconstructs the index from a serialized byte slice.
	UnmarshalBinary(data []byte) error
}

// Kind selects an Index implementation.
type Kind string

const (
	KindBrute Kind = "brute"
	KindCover Kind = "cover"
)

// New returns an empty index of the requested kind using the given metric.
// Unknown kinds and metrics return ErrInvalidConfiguration.
func New(kind Kind, m metric.Metric) (Index, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	switch kind {
	case KindBrute:
		return bruteforce.New(m.Function()), nil
	case KindCover:
		return cover.New(m), nil
	default:
		return nil, fmt.Errorf("index: unknown index kind %q: %w", kind, frnn.ErrInvalidConfiguration)
	}
}
