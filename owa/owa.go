package owa

import (
	"fmt"
	"math"
	"sort"

	"github.com/viant/frnn"
)

// Family enumerates the supported OWA weight families. Each family is a
// pure function from a length k to a normalized weight vector indexed by
// rank, rank 1 being the most relevant value.
type Family string

const (
	// FamilyStrict puts all weight on rank 1 (plain maximum).
	FamilyStrict Family = "strict"
	// FamilyMean weighs every rank equally (uniform).
	FamilyMean Family = "mean"
	// FamilyAdditive decays linearly with rank.
	FamilyAdditive Family = "additive"
	// FamilyExponential decays geometrically with rank.
	FamilyExponential Family = "exponential"
	// FamilyInvAdd decays with the reciprocal of the rank.
	FamilyInvAdd Family = "invadd"
	// FamilyTrimmed puts all weight on rank k (the kth value only). The one
	// family whose weights are not non-increasing by rank.
	FamilyTrimmed Family = "trimmed"
)

// Valid reports whether the family is one of the supported variants.
func (f Family) Valid() bool {
	switch f {
	case FamilyStrict, FamilyMean, FamilyAdditive, FamilyExponential, FamilyInvAdd, FamilyTrimmed:
		return true
	}
	return false
}

// Weighting is an OWA operator spec: a weight family plus its decay
// parameter where the family takes one. The zero Decay selects the family
// default (base 2 for exponential; other families ignore it).
type Weighting struct {
	Family Family
	Decay  float64
}

// Weights returns the weight vector of length k for the configured family:
// k non-negative reals summing to 1, ordered by rank with rank 1 first.
// Deterministic for a given (family, decay, k). k < 1 or an unknown family
// returns ErrInvalidConfiguration.
func (w Weighting) Weights(k int) ([]float64, error) {
	if k < 1 {
		return nil, fmt.Errorf("owa: weight vector length %d < 1: %w", k, frnn.ErrInvalidConfiguration)
	}
	out := make([]float64, k)
	switch w.Family {
	case FamilyStrict:
		out[0] = 1
	case FamilyTrimmed:
		out[k-1] = 1
	case FamilyMean:
		for r := range out {
			out[r] = 1 / float64(k)
		}
	case FamilyAdditive:
		// w_r = 2(k-r+1) / (k(k+1)), r = 1..k
		denom := float64(k) * float64(k+1)
		for r := range out {
			out[r] = 2 * float64(k-r) / denom
		}
	case FamilyExponential:
		base := w.Decay
		if base == 0 {
			base = 2
		}
		if base <= 1 || math.IsNaN(base) || math.IsInf(base, 0) {
			return nil, fmt.Errorf("owa: exponential decay must be > 1, got %v: %w", base, frnn.ErrInvalidConfiguration)
		}
		// w_r proportional to base^-r, normalized after the fact to stay
		// finite for large k.
		var sum float64
		for r := range out {
			out[r] = math.Pow(base, -float64(r+1))
			sum += out[r]
		}
		for r := range out {
			out[r] /= sum
		}
	case FamilyInvAdd:
		// w_r = (1/r) / H_k
		var h float64
		for r := 1; r <= k; r++ {
			h += 1 / float64(r)
		}
		for r := range out {
			out[r] = 1 / (float64(r+1) * h)
		}
	default:
		return nil, fmt.Errorf("owa: unknown weight family %q: %w", w.Family, frnn.ErrInvalidConfiguration)
	}
	return out, nil
}

// SoftMax aggregates v with the family's weights applied to the k largest
// values in descending order. It approximates a maximum: strict recovers it
// exactly, mean yields the average of the top k.
func (w Weighting) SoftMax(v []float64, k int) (float64, error) {
	return w.aggregate(v, k, true)
}

// SoftMin aggregates v with the family's weights applied to the k smallest
// values in ascending order, approximating a minimum.
func (w Weighting) SoftMin(v []float64, k int) (float64, error) {
	return w.aggregate(v, k, false)
}

func (w Weighting) aggregate(v []float64, k int, softMax bool) (float64, error) {
	if len(v) == 0 {
		return 0, fmt.Errorf("owa: aggregate over empty values: %w", frnn.ErrInvalidInput)
	}
	if k > len(v) {
		k = len(v)
	}
	weights, err := w.Weights(k)
	if err != nil {
		return 0, err
	}
	sorted := append([]float64(nil), v...)
	if softMax {
		sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	} else {
		sort.Float64s(sorted)
	}
	var sum float64
	for r := 0; r < k; r++ {
		sum += weights[r] * sorted[r]
	}
	return sum, nil
}
