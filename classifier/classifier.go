package classifier

import (
	"fmt"

	"github.com/viant/frnn"
	"github.com/viant/frnn/dataset"
	"github.com/viant/frnn/index"
	"github.com/viant/frnn/metric"
	"github.com/viant/frnn/owa"
)

// Vote selects how neighbour evidence is aggregated into per-class scores.
type Vote string

const (
	// VoteWeighted sums the OWA weights of the top-k neighbours per class.
	VoteWeighted Vote = "weighted"
	// VoteUpperApprox scores each class with the soft maximum of the
	// proximities 1/(1+d) of that class's neighbours, the upper
	// approximation of the fuzzy-rough set induced by the class.
	VoteUpperApprox Vote = "upper"
	// VoteLowerApprox scores each class with the soft minimum of
	// 1 - proximity over the neighbours outside the class, the lower
	// approximation: high when every non-member is far from the instance.
	VoteLowerApprox Vote = "lower"
)

// FRNN configures a fuzzy-rough nearest-neighbour classifier. The zero
// value uses every neighbour, additive (linear) weights, Euclidean distance
// and the brute-force index.
type FRNN struct {
	K         owa.K
	Weighting owa.Weighting
	Metric    metric.Metric
	Index     index.Kind
	Vote      Vote
}

func (c FRNN) withDefaults() FRNN {
	if c.Weighting.Family == "" {
		c.Weighting.Family = owa.FamilyAdditive
	}
	if c.Metric == "" {
		c.Metric = metric.Euclidean
	}
	if c.Index == "" {
		c.Index = index.KindBrute
	}
	if c.Vote == "" {
		c.Vote = VoteWeighted
	}
	return c
}

// Model is the constructed classifier: an immutable artifact owning a copy
// of the training labels and a nearest-neighbour index over the training
// vectors. Queries are read-only and safe to issue concurrently.
type Model struct {
	cfg     FRNN
	classes []string
	labels  []string
	dim     int
	idx     index.Index
}

// Construct validates the training data, copies it and builds the
// neighbour index. The dataset must be non-empty with consistent
// dimensionality, parallel labels and at least two distinct classes; the
// single-class problem is rejected as degenerate. The caller may mutate
// the dataset afterwards without affecting the Model.
func (c FRNN) Construct(ds dataset.Dataset) (*Model, error) {
	c = c.withDefaults()
	if !c.Weighting.Family.Valid() {
		return nil, fmt.Errorf("classifier: unknown weight family %q: %w", c.Weighting.Family, frnn.ErrInvalidConfiguration)
	}
	if c.Vote != VoteWeighted && c.Vote != VoteUpperApprox && c.Vote != VoteLowerApprox {
		return nil, fmt.Errorf("classifier: unknown vote mode %q: %w", c.Vote, frnn.ErrInvalidConfiguration)
	}
	if _, err := c.K.Resolve(1); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	classes := ds.Classes()
	if len(classes) < 2 {
		return nil, fmt.Errorf("classifier: training data has %d class, want at least 2: %w", len(classes), frnn.ErrInvalidInput)
	}
	idx, err := index.New(c.Index, c.Metric)
	if err != nil {
		return nil, err
	}
	if err := idx.Build(ds.Vectors); err != nil {
		return nil, fmt.Errorf("classifier: %v: %w", err, frnn.ErrInvalidInput)
	}
	return &Model{
		cfg:     c,
		classes: classes,
		labels:  append([]string(nil), ds.Labels...),
		dim:     ds.Dim(),
		idx:     idx,
	}, nil
}

// Scores holds the per-class confidence produced by a query: non-negative
// soft evidence, not required to sum to 1.
type Scores map[string]float64

// Classes returns the known class labels in deterministic (sorted) order.
func (m *Model) Classes() []string { return append([]string(nil), m.classes...) }

// Dim returns the feature dimensionality the model was constructed with.
func (m *Model) Dim() int { return m.dim }

// Len returns the training-set size.
func (m *Model) Len() int { return m.idx.Len() }

// Query scores one instance against every known class. The effective
// neighbourhood size is the configured k resolved against the training-set
// size; equidistant neighbours rank by their original training position. A
// dimensionality mismatch returns ErrDimensionMismatch and leaves the
// model untouched for subsequent queries.
func (m *Model) Query(instance []float32) (Scores, error) {
	if len(instance) != m.dim {
		return nil, fmt.Errorf("classifier: instance dim %d != training dim %d: %w", len(instance), m.dim, frnn.ErrDimensionMismatch)
	}
	n := m.idx.Len()
	k, err := m.cfg.K.Resolve(n)
	if err != nil {
		return nil, err
	}
	scores := make(Scores, len(m.classes))
	for _, c := range m.classes {
		scores[c] = 0
	}
	switch m.cfg.Vote {
	case VoteUpperApprox:
		positions, distances, err := m.idx.Query(instance, 0)
		if err != nil {
			return nil, err
		}
		perClass := make(map[string][]float64, len(m.classes))
		for r, pos := range positions {
			label := m.labels[pos]
			perClass[label] = append(perClass[label], 1/(1+distances[r]))
		}
		for label, prox := range perClass {
			kc, err := m.cfg.K.Resolve(len(prox))
			if err != nil {
				return nil, err
			}
			s, err := m.cfg.Weighting.SoftMax(prox, kc)
			if err != nil {
				return nil, err
			}
			scores[label] = s
		}
	case VoteLowerApprox:
		positions, distances, err := m.idx.Query(instance, 0)
		if err != nil {
			return nil, err
		}
		perOther := make(map[string][]float64, len(m.classes))
		for r, pos := range positions {
			complement := 1 - 1/(1+distances[r])
			label := m.labels[pos]
			for _, c := range m.classes {
				if c != label {
					perOther[c] = append(perOther[c], complement)
				}
			}
		}
		// Every class has non-members: construct requires >= 2 classes.
		for label, outside := range perOther {
			kc, err := m.cfg.K.Resolve(len(outside))
			if err != nil {
				return nil, err
			}
			s, err := m.cfg.Weighting.SoftMin(outside, kc)
			if err != nil {
				return nil, err
			}
			scores[label] = s
		}
	default:
		positions, _, err := m.idx.Query(instance, k)
		if err != nil {
			return nil, err
		}
		weights, err := m.cfg.Weighting.Weights(len(positions))
		if err != nil {
			return nil, err
		}
		for r, pos := range positions {
			scores[m.labels[pos]] += weights[r]
		}
	}
	return scores, nil
}
