package classifier

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/viant/frnn"
	"github.com/viant/frnn/dataset"
	"github.com/viant/frnn/index"
	"github.com/viant/frnn/metric"
	"github.com/viant/frnn/owa"
)

func trainingData() dataset.Dataset {
	return dataset.Dataset{
		Vectors: [][]float32{{0}, {1}, {10}, {11}},
		Labels:  []string{"A", "A", "B", "B"},
	}
}

func TestQueryUniformTieBreak(t *testing.T) {
	// Point 5.5 is equidistant (4.5) from training positions 1 and 2; the
	// lower position ranks first, and uniform weights split the evidence.
	model, err := FRNN{
		K:         owa.Fixed(2),
		Weighting: owa.Weighting{Family: owa.FamilyMean},
		Metric:    metric.Euclidean,
	}.Construct(trainingData())
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	scores, err := model.Query([]float32{5.5})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if math.Abs(scores["A"]-0.5) > 1e-12 || math.Abs(scores["B"]-0.5) > 1e-12 {
		t.Fatalf("scores = %v, want A: 0.5, B: 0.5", scores)
	}
}

func TestQueryDeterminism(t *testing.T) {
	model, err := FRNN{K: owa.Fraction(0.5)}.Construct(trainingData())
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	first, err := model.Query([]float32{3})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	for n := 0; n < 5; n++ {
		again, err := model.Query([]float32{3})
		if err != nil {
			t.Fatalf("repeat query failed: %v", err)
		}
		if !reflect.DeepEqual(again, first) {
			t.Fatalf("query %d = %v, first = %v", n, again, first)
		}
	}
}

func TestQueryClampsLargeK(t *testing.T) {
	model, err := FRNN{K: owa.Fixed(100)}.Construct(trainingData())
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	scores, err := model.Query([]float32{0.5})
	if err != nil {
		t.Fatalf("Query with k beyond training size failed: %v", err)
	}
	var sum float64
	for _, s := range scores {
		if s < 0 {
			t.Fatalf("negative confidence in %v", scores)
		}
		sum += s
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("weighted vote over all neighbours sums to %v, want 1", sum)
	}
}

func TestQueryDimensionMismatch(t *testing.T) {
	model, err := FRNN{}.Construct(trainingData())
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	if _, err := model.Query([]float32{1, 2}); !errors.Is(err, frnn.ErrDimensionMismatch) {
		t.Fatalf("Query error = %v, want ErrDimensionMismatch", err)
	}
	// The model stays usable after a failed query.
	if _, err := model.Query([]float32{1}); err != nil {
		t.Fatalf("valid query after mismatch failed: %v", err)
	}
}

func TestConstructInvalidInput(t *testing.T) {
	cases := []dataset.Dataset{
		{},
		{Vectors: [][]float32{{1}, {2}}, Labels: []string{"A"}},
		{Vectors: [][]float32{{1}, {2}}, Labels: []string{"A", "A"}},
	}
	for i, ds := range cases {
		if _, err := (FRNN{}).Construct(ds); !errors.Is(err, frnn.ErrInvalidInput) {
			t.Fatalf("case %d: Construct error = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestConstructInvalidConfiguration(t *testing.T) {
	cases := []FRNN{
		{K: owa.Fixed(-1)},
		{Weighting: owa.Weighting{Family: "gaussian"}},
		{Metric: "manhattan"},
		{Index: "hnsw"},
		{Vote: "majority"},
	}
	for i, cfg := range cases {
		if _, err := cfg.Construct(trainingData()); !errors.Is(err, frnn.ErrInvalidConfiguration) {
			t.Fatalf("case %d: Construct error = %v, want ErrInvalidConfiguration", i, err)
		}
	}
}

func TestConstructCopiesTrainingData(t *testing.T) {
	ds := trainingData()
	model, err := FRNN{K: owa.Fixed(1)}.Construct(ds)
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	before, _ := model.Query([]float32{0.4})
	ds.Vectors[0][0] = 1000
	ds.Labels[0] = "C"
	after, err := model.Query([]float32{0.4})
	if err != nil {
		t.Fatalf("Query after mutation failed: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("mutating the source dataset changed model output: %v vs %v", before, after)
	}
}

func TestQueryUpperApprox(t *testing.T) {
	model, err := FRNN{
		K:         owa.Fixed(2),
		Weighting: owa.Weighting{Family: owa.FamilyStrict},
		Vote:      VoteUpperApprox,
		Index:     index.KindCover,
	}.Construct(trainingData())
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	scores, err := model.Query([]float32{0.5})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	// Strict soft max is the nearest proximity per class: A at distance
	// 0.5, B at distance 9.5.
	if math.Abs(scores["A"]-1/1.5) > 1e-9 {
		t.Fatalf("A = %v, want %v", scores["A"], 1/1.5)
	}
	if math.Abs(scores["B"]-1/10.5) > 1e-9 {
		t.Fatalf("B = %v, want %v", scores["B"], 1/10.5)
	}
	if scores["A"] <= scores["B"] {
		t.Fatalf("expected A to dominate: %v", scores)
	}
}

func TestQueryLowerApprox(t *testing.T) {
	model, err := FRNN{
		K:         owa.Fixed(2),
		Weighting: owa.Weighting{Family: owa.FamilyStrict},
		Vote:      VoteLowerApprox,
	}.Construct(trainingData())
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	scores, err := model.Query([]float32{0.5})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	// Strict soft min is the smallest 1-proximity over the class's
	// non-members: for A the nearest B is at distance 9.5, for B the
	// nearest A is at distance 0.5.
	if math.Abs(scores["A"]-(1-1/10.5)) > 1e-9 {
		t.Fatalf("A = %v, want %v", scores["A"], 1-1/10.5)
	}
	if math.Abs(scores["B"]-(1-1/1.5)) > 1e-9 {
		t.Fatalf("B = %v, want %v", scores["B"], 1-1/1.5)
	}
	if scores["A"] <= scores["B"] {
		t.Fatalf("expected A to dominate: %v", scores)
	}
}

func TestModelMarshalKeepsFractionalK(t *testing.T) {
	// Fraction(1) must not come back as Fixed(1): the restored model would
	// silently score with a single neighbour.
	model, err := FRNN{
		K:         owa.Fraction(1),
		Weighting: owa.Weighting{Family: owa.FamilyMean},
	}.Construct(trainingData())
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	data, err := model.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	restored, err := UnmarshalModel(data)
	if err != nil {
		t.Fatalf("UnmarshalModel failed: %v", err)
	}
	want, _ := model.Query([]float32{5.5})
	got, err := restored.Query([]float32{5.5})
	if err != nil {
		t.Fatalf("restored query failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("restored query = %v, original = %v", got, want)
	}
	if math.Abs(got["A"]-0.5) > 1e-12 || math.Abs(got["B"]-0.5) > 1e-12 {
		t.Fatalf("restored scores = %v, want A: 0.5, B: 0.5", got)
	}
}

func TestModelMarshalRoundTrip(t *testing.T) {
	model, err := FRNN{
		K:         owa.Fraction(0.5),
		Weighting: owa.Weighting{Family: owa.FamilyExponential},
		Index:     index.KindCover,
	}.Construct(trainingData())
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	data, err := model.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	restored, err := UnmarshalModel(data)
	if err != nil {
		t.Fatalf("UnmarshalModel failed: %v", err)
	}
	if restored.Dim() != model.Dim() || restored.Len() != model.Len() {
		t.Fatalf("restored shape %d/%d, want %d/%d", restored.Dim(), restored.Len(), model.Dim(), model.Len())
	}
	if !reflect.DeepEqual(restored.Classes(), model.Classes()) {
		t.Fatalf("restored classes = %v, want %v", restored.Classes(), model.Classes())
	}
	for _, q := range [][]float32{{0.3}, {5.5}, {12}} {
		want, _ := model.Query(q)
		got, err := restored.Query(q)
		if err != nil {
			t.Fatalf("restored query failed: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("restored query(%v) = %v, want %v", q, got, want)
		}
	}
}
