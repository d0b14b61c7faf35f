package dataset

import (
	"errors"
	"reflect"
	"testing"

	"github.com/viant/frnn"
)

func TestValidate(t *testing.T) {
	ok := Dataset{
		Vectors: [][]float32{{0}, {1}, {10}},
		Labels:  []string{"a", "a", "b"},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate on valid dataset failed: %v", err)
	}

	bad := []Dataset{
		{},
		{Vectors: [][]float32{{1}}, Labels: nil},
		{Vectors: [][]float32{{1}, {2, 3}}, Labels: []string{"a", "b"}},
		{Vectors: [][]float32{{}}, Labels: []string{"a"}},
	}
	for i, d := range bad {
		if err := d.Validate(); !errors.Is(err, frnn.ErrInvalidInput) {
			t.Fatalf("case %d: Validate error = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestClone(t *testing.T) {
	d := Dataset{Vectors: [][]float32{{1, 2}, {3, 4}}, Labels: []string{"x", "y"}}
	c := d.Clone()
	d.Vectors[0][0] = 99
	d.Labels[0] = "mutated"
	if c.Vectors[0][0] != 1 || c.Labels[0] != "x" {
		t.Fatalf("Clone shares memory with the original: %v %v", c.Vectors, c.Labels)
	}
}

func TestClasses(t *testing.T) {
	d := Dataset{
		Vectors: [][]float32{{1}, {2}, {3}, {4}},
		Labels:  []string{"b", "a", "b", "a"},
	}
	if got := d.Classes(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Classes = %v, want [a b]", got)
	}
}

func TestVectorEncoding(t *testing.T) {
	vec := []float32{0.5, -1.25, 3}
	got, err := DecodeVector(EncodeVector(vec))
	if err != nil {
		t.Fatalf("DecodeVector failed: %v", err)
	}
	if !reflect.DeepEqual(got, vec) {
		t.Fatalf("round trip = %v, want %v", got, vec)
	}
	if _, err := DecodeVector([]byte{1, 2, 3}); err == nil {
		t.Fatalf("DecodeVector on 3 bytes must fail")
	}
}
