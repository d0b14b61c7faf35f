package classifier

import (
	"reflect"
	"testing"
)

func TestArgMax(t *testing.T) {
	label, ok := ArgMax(Scores{"A": 0.2, "B": 0.7, "C": 0.1})
	if !ok || label != "B" {
		t.Fatalf("ArgMax = %q, %v; want B, true", label, ok)
	}
	// Ties resolve to the lexicographically smallest label.
	label, ok = ArgMax(Scores{"B": 0.5, "A": 0.5})
	if !ok || label != "A" {
		t.Fatalf("ArgMax on tie = %q, %v; want A, true", label, ok)
	}
	if _, ok := ArgMax(nil); ok {
		t.Fatalf("ArgMax on empty scores must report false")
	}
}

func TestThreshold(t *testing.T) {
	s := Scores{"A": 0.9, "B": 0.4, "C": 0.4, "D": 0.1}
	if got := Threshold(s, 0.4); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("Threshold = %v, want [A B C]", got)
	}
	if got := Threshold(s, 1.5); len(got) != 0 {
		t.Fatalf("Threshold above all scores = %v, want empty", got)
	}
}
