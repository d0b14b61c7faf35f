// Package dataset defines the labeled training data model shared by the
// classifiers and the storage layer, plus the float32 BLOB encoding used
// for durable storage.
package dataset

import (
	"fmt"
	"sort"

	"github.com/viant/frnn"
)

// Dataset is an ordered sequence of feature vectors with a parallel
// sequence of class labels. All vectors share one dimensionality.
type Dataset struct {
	Vectors [][]float32
	Labels  []string
}

// Len returns the number of instances.
func (d Dataset) Len() int { return len(d.Vectors) }

// Dim returns the feature dimensionality, or 0 for an empty dataset.
func (d Dataset) Dim() int {
	if len(d.Vectors) == 0 {
		return 0
	}
	return len(d.Vectors[0])
}

// Validate checks the dataset invariants: non-empty, labels parallel to
// vectors, consistent dimensionality. Violations return ErrInvalidInput.
func (d Dataset) Validate() error {
	if len(d.Vectors) == 0 {
		return fmt.Errorf("dataset: empty training data: %w", frnn.ErrInvalidInput)
	}
	if len(d.Labels) != len(d.Vectors) {
		return fmt.Errorf("dataset: %d vectors but %d labels: %w", len(d.Vectors), len(d.Labels), frnn.ErrInvalidInput)
	}
	dim := len(d.Vectors[0])
	if dim == 0 {
		return fmt.Errorf("dataset: zero-dimensional vectors: %w", frnn.ErrInvalidInput)
	}
	for i, v := range d.Vectors {
		if len(v) != dim {
			return fmt.Errorf("dataset: vector %d has dim %d, want %d: %w", i, len(v), dim, frnn.ErrInvalidInput)
		}
	}
	return nil
}

// Clone returns a deep copy sharing no memory with the receiver.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Vectors: make([][]float32, len(d.Vectors)),
		Labels:  append([]string(nil), d.Labels...),
	}
	for i, v := range d.Vectors {
		out.Vectors[i] = append([]float32(nil), v...)
	}
	return out
}

// Classes returns the distinct labels in deterministic (sorted) order.
func (d Dataset) Classes() []string {
	seen := make(map[string]struct{}, len(d.Labels))
	out := make([]string, 0, 4)
	for _, l := range d.Labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
