// Package frnn implements fuzzy-rough nearest-neighbour classification with
// OWA (Ordered Weighted Averaging) aggregation. It includes:
//   - owa: weight families and neighbourhood-size resolution
//   - metric: float32 distance functions
//   - index: brute-force and VP-tree kNN indexes
//   - classifier: the construct/query classifier and prediction utilities
//   - store: SQLite-backed dataset and model persistence
//   - config: YAML configuration for classifiers
//
// The root package only declares the shared error taxonomy.
package frnn
