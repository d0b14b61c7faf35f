package config

import (
	"errors"
	"math"
	"testing"

	"github.com/viant/frnn"
	"github.com/viant/frnn/classifier"
	"github.com/viant/frnn/dataset"
	"github.com/viant/frnn/index"
	"github.com/viant/frnn/owa"
)

func TestParseAndBuild(t *testing.T) {
	cfg, err := Parse([]byte(`
weighting:
  family: exponential
  decay: 2
k: 0.5
metric: euclidean
index: cover
vote: weighted
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	spec, err := cfg.Classifier()
	if err != nil {
		t.Fatalf("Classifier failed: %v", err)
	}
	if spec.Weighting.Family != owa.FamilyExponential || spec.Index != index.KindCover {
		t.Fatalf("unexpected spec: %+v", spec)
	}
	if spec.K.String() != "0.5" {
		t.Fatalf("k = %s, want 0.5", spec.K)
	}

	model, err := spec.Construct(dataset.Dataset{
		Vectors: [][]float32{{0}, {1}, {10}, {11}},
		Labels:  []string{"A", "A", "B", "B"},
	})
	if err != nil {
		t.Fatalf("Construct from config failed: %v", err)
	}
	scores, err := model.Query([]float32{0.2})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if label, _ := classifier.ArgMax(scores); label != "A" {
		t.Fatalf("ArgMax = %q (%v), want A", label, scores)
	}
}

func TestParseKForms(t *testing.T) {
	cases := []struct {
		yaml string
		want string
	}{
		{`k: all`, "all"},
		{`k: "all"`, "all"},
		{`k: 7`, "7"},
		{`k: 0.25`, "0.25"},
	}
	for _, tc := range cases {
		cfg, err := Parse([]byte(tc.yaml))
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tc.yaml, err)
		}
		if !cfg.K.set || cfg.K.k.String() != tc.want {
			t.Fatalf("Parse(%q) k = %s, want %s", tc.yaml, cfg.K.k, tc.want)
		}
	}
	if _, err := Parse([]byte(`k: sometimes`)); !errors.Is(err, frnn.ErrInvalidConfiguration) {
		t.Fatalf("Parse of bad k error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	spec, err := cfg.Classifier()
	if err != nil {
		t.Fatalf("Classifier failed: %v", err)
	}
	// Unset k means every available neighbour.
	n, err := spec.K.Resolve(9)
	if err != nil || n != 9 {
		t.Fatalf("default k resolve = %d, %v; want 9, nil", n, err)
	}
	if math.IsNaN(spec.Weighting.Decay) || spec.Weighting.Decay != 0 {
		t.Fatalf("default decay = %v, want 0", spec.Weighting.Decay)
	}
}

func TestInvalidValues(t *testing.T) {
	cases := []string{
		"weighting: {family: gaussian}",
		"metric: manhattan",
		"index: hnsw",
		"vote: majority",
	}
	for _, in := range cases {
		cfg, err := Parse([]byte(in))
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", in, err)
		}
		if _, err := cfg.Classifier(); !errors.Is(err, frnn.ErrInvalidConfiguration) {
			t.Fatalf("Classifier for %q error = %v, want ErrInvalidConfiguration", in, err)
		}
	}
}
