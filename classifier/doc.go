// Package classifier implements the fuzzy-rough nearest-neighbour
// classifier with its construct/query contract: FRNN.Construct performs
// the one-time, expensive setup over labeled training data and returns an
// immutable Model; Model.Query is cheap, side-effect free and safe to call
// concurrently. Turning the per-class confidence scores into a hard
// prediction is a separate step (ArgMax, Threshold), not part of the
// Model.
package classifier
