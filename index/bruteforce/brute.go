// Package bruteforce implements a linear-scan nearest-neighbour index. It
// is the correctness baseline for the other index implementations.
package bruteforce

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/viant/frnn/metric"
)

// Index scans every training vector on each query.
type Index struct {
	distance metric.Func
	vecs     [][]float32
	dim      int
}

// New returns an empty index using the given distance function.
func New(distance metric.Func) *Index {
	if distance == nil {
		distance = metric.EuclideanDistance
	}
	return &Index{distance: distance}
}

// Build copies the vectors into the index.
func (i *Index) Build(vectors [][]float32) error {
	if len(vectors) == 0 {
		i.vecs, i.dim = nil, 0
		return nil
	}
	dim := len(vectors[0])
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("bruteforce: inconsistent vector dims %d vs %d", len(vectors[j]), dim)
		}
	}
	vecs := make([][]float32, len(vectors))
	for j, v := range vectors {
		vecs[j] = append([]float32(nil), v...)
	}
	i.vecs = vecs
	i.dim = dim
	return nil
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int { return len(i.vecs) }

// Query returns up to k positions ordered by ascending (distance, position).
func (i *Index) Query(q []float32, k int) ([]int, []float64, error) {
	if len(i.vecs) == 0 {
		return nil, nil, nil
	}
	if len(q) != i.dim {
		return nil, nil, fmt.Errorf("bruteforce: query dim %d != index dim %d", len(q), i.dim)
	}
	type scored struct {
		pos  int
		dist float64
	}
	scoreds := make([]scored, len(i.vecs))
	for j := range i.vecs {
		scoreds[j] = scored{pos: j, dist: float64(i.distance(q, i.vecs[j]))}
	}
	sort.Slice(scoreds, func(a, b int) bool {
		if scoreds[a].dist != scoreds[b].dist {
			return scoreds[a].dist < scoreds[b].dist
		}
		return scoreds[a].pos < scoreds[b].pos
	})
	if k <= 0 || k > len(scoreds) {
		k = len(scoreds)
	}
	positions := make([]int, k)
	distances := make([]float64, k)
	for n := 0; n < k; n++ {
		positions[n] = scoreds[n].pos
		distances[n] = scoreds[n].dist
	}
	return positions, distances, nil
}

// MarshalBinary stores: dim(uint32), n(uint32), then vec(float32[dim]) per
// vector, little-endian.
func (i *Index) MarshalBinary() ([]byte, error) {
	out := make([]byte, 8, 8+4*i.dim*len(i.vecs))
	binary.LittleEndian.PutUint32(out[0:4], uint32(i.dim))
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(i.vecs)))
	for _, vec := range i.vecs {
		for _, v := range vec {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
			out = append(out, b[:]...)
		}
	}
	return out, nil
}

// UnmarshalBinary restores the index from bytes produced by MarshalBinary.
func (i *Index) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return errors.New("bruteforce: invalid data")
	}
	dim := int(binary.LittleEndian.Uint32(data[0:4]))
	n := int(binary.LittleEndian.Uint32(data[4:8]))
	if len(data) != 8+4*dim*n {
		return errors.New("bruteforce: truncated data")
	}
	off := 8
	vecs := make([][]float32, n)
	for j := 0; j < n; j++ {
		vec := make([]float32, dim)
		for d := 0; d < dim; d++ {
			vec[d] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
		vecs[j] = vec
	}
	i.vecs = vecs
	if n > 0 {
		i.dim = dim
	} else {
		i.dim = 0
	}
	return nil
}
