// Package owa implements Ordered Weighted Averaging operators: weight
// vectors applied to rank-sorted values rather than to values by identity.
// It provides the closed set of weight families used by the classifiers,
// soft-maximum/soft-minimum aggregation, and the K type that resolves a
// requested neighbourhood size (absolute, fractional or unbounded) against
// the number of neighbours actually available.
package owa
