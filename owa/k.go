package owa

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/viant/frnn"
)

type kKind int

const (
	kAll kKind = iota
	kFixed
	kFraction
)

// K specifies a neighbourhood size. It is one of three forms: an absolute
// count, a fraction of the available neighbours, or "all". The zero value
// is All.
type K struct {
	kind     kKind
	fixed    int
	fraction float64
}

// Fixed returns a K requesting an absolute neighbour count.
func Fixed(k int) K { return K{kind: kFixed, fixed: k} }

// Fraction returns a K requesting a proportion in (0,1] of the available
// neighbours. The resolved count uses ceiling rounding.
func Fraction(f float64) K { return K{kind: kFraction, fraction: f} }

// All returns a K requesting every available neighbour.
func All() K { return K{kind: kAll} }

// Resolve converts the spec into a concrete count in [1, n], where n is the
// number of neighbours available. A Fixed count larger than n clamps to n
// rather than failing. A malformed spec returns ErrInvalidConfiguration.
func (k K) Resolve(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("owa: resolve with %d available neighbours: %w", n, frnn.ErrInvalidInput)
	}
	switch k.kind {
	case kAll:
		return n, nil
	case kFixed:
		if k.fixed < 1 {
			return 0, fmt.Errorf("owa: k must be a positive integer, got %d: %w", k.fixed, frnn.ErrInvalidConfiguration)
		}
		if k.fixed > n {
			return n, nil
		}
		return k.fixed, nil
	case kFraction:
		if k.fraction <= 0 || k.fraction > 1 || math.IsNaN(k.fraction) {
			return 0, fmt.Errorf("owa: fractional k must be in (0,1], got %v: %w", k.fraction, frnn.ErrInvalidConfiguration)
		}
		r := int(math.Ceil(k.fraction * float64(n)))
		if r < 1 {
			r = 1
		}
		if r > n {
			r = n
		}
		return r, nil
	default:
		return 0, fmt.Errorf("owa: unrecognized k spec: %w", frnn.ErrInvalidConfiguration)
	}
}

// ParseK parses the textual form of a neighbourhood-size spec: "all", an
// integer count (e.g. "7"), or a fraction in (0,1] (e.g. "0.25"). The
// inverse of String.
func ParseK(s string) (K, error) {
	if s == "all" {
		return All(), nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		if i < 1 {
			return K{}, fmt.Errorf("owa: k must be a positive integer, got %d: %w", i, frnn.ErrInvalidConfiguration)
		}
		return Fixed(i), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f <= 0 || f > 1 || math.IsNaN(f) {
			return K{}, fmt.Errorf("owa: fractional k must be in (0,1], got %v: %w", f, frnn.ErrInvalidConfiguration)
		}
		return Fraction(f), nil
	}
	return K{}, fmt.Errorf("owa: unrecognized k spec %q: %w", s, frnn.ErrInvalidConfiguration)
}

// String renders the spec for diagnostics.
func (k K) String() string {
	switch k.kind {
	case kFixed:
		return fmt.Sprintf("%d", k.fixed)
	case kFraction:
		s := strconv.FormatFloat(k.fraction, 'g', -1, 64)
		// Keep whole-valued fractions distinguishable from fixed counts so
		// ParseK restores the same form.
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s
	default:
		return "all"
	}
}
