package frnn

import "errors"

// Error taxonomy shared across packages. Callers match with errors.Is; the
// wrapping message carries the detail.
var (
	// ErrInvalidConfiguration flags a malformed neighbourhood-size spec,
	// weighting family, metric or index kind.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidInput flags a malformed training dataset at construct time.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDimensionMismatch flags a query instance whose dimensionality does
	// not match the training data.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
