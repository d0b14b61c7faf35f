// Package cover implements a VP-tree nearest-neighbour index that prunes
// search with the triangle inequality. Metrics that do not satisfy it
// (cosine) fall back to a full scan, so results always match the
// brute-force baseline, including the (distance, position) tie-break. The
// index serializes with the brute-force encoding for compatibility.
package cover

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/viant/frnn/index/bruteforce"
	"github.com/viant/frnn/metric"
)

// Index holds the training vectors and the VP-tree built over them.
type Index struct {
	distance   metric.Func
	triangular bool
	vecs       [][]float32
	dim        int
	root       *node
}

type node struct {
	pos   int // position into vecs
	thr   float64
	left  *node
	right *node
}

// New returns an empty index using the given metric. An unknown metric
// defaults to Euclidean.
func New(m metric.Metric) *Index {
	fn := m.Function()
	if fn == nil {
		m = metric.Euclidean
		fn = m.Function()
	}
	return &Index{distance: fn, triangular: m.Triangular()}
}

// Build copies the vectors and constructs the VP-tree.
func (i *Index) Build(vectors [][]float32) error {
	if len(vectors) == 0 {
		i.vecs, i.dim, i.root = nil, 0, nil
		return nil
	}
	dim := len(vectors[0])
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("cover: inconsistent vector dims %d vs %d", len(vectors[j]), dim)
		}
	}
	vecs := make([][]float32, len(vectors))
	for j, v := range vectors {
		vecs[j] = append([]float32(nil), v...)
	}
	i.vecs = vecs
	i.dim = dim
	if !i.triangular {
		// Pruning would be unsound; Query scans instead.
		i.root = nil
		return nil
	}
	positions := make([]int, len(vecs))
	for p := range positions {
		positions[p] = p
	}
	i.root = i.buildVP(positions)
	return nil
}

func (i *Index) buildVP(positions []int) *node {
	if len(positions) == 0 {
		return nil
	}
	// Pick the last position as vantage point to avoid extra randomness.
	vp := positions[len(positions)-1]
	positions = positions[:len(positions)-1]
	if len(positions) == 0 {
		return &node{pos: vp}
	}
	dists := make([]float64, len(positions))
	for k, j := range positions {
		dists[k] = float64(i.distance(i.vecs[vp], i.vecs[j]))
	}
	order := make([]int, len(positions))
	for k := range order {
		order[k] = k
	}
	sort.Slice(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })
	mid := len(dists) / 2
	thr := dists[order[mid]]
	left := make([]int, 0, mid+1)
	right := make([]int, 0, len(positions)-(mid+1))
	for rank, k := range order {
		if rank <= mid {
			left = append(left, positions[k])
		} else {
			right = append(right, positions[k])
		}
	}
	return &node{pos: vp, thr: thr, left: i.buildVP(left), right: i.buildVP(right)}
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int { return len(i.vecs) }

type cand struct {
	pos  int
	dist float64
}

func better(a, b cand) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.pos < b.pos
}

// Query returns up to k positions ordered by ascending (distance, position).
func (i *Index) Query(q []float32, k int) ([]int, []float64, error) {
	if len(i.vecs) == 0 {
		return nil, nil, nil
	}
	if len(q) != i.dim {
		return nil, nil, fmt.Errorf("cover: query dim %d != index dim %d", len(q), i.dim)
	}
	if k <= 0 || k >= len(i.vecs) || !i.triangular {
		// No sound pruning possible; scan directly.
		cands := make([]cand, len(i.vecs))
		for j := range i.vecs {
			cands[j] = cand{pos: j, dist: float64(i.distance(q, i.vecs[j]))}
		}
		return finish(cands)
	}

	cands := make([]cand, 0, k)
	bound := func() float64 {
		// Worst distance among the current candidates.
		worst := cands[0]
		for _, c := range cands[1:] {
			if better(worst, c) {
				worst = c
			}
		}
		return worst.dist
	}
	var search func(n *node)
	search = func(n *node) {
		if n == nil {
			return
		}
		d := float64(i.distance(q, i.vecs[n.pos]))
		c := cand{pos: n.pos, dist: d}
		if len(cands) < k {
			cands = append(cands, c)
		} else {
			worst := 0
			for t := 1; t < len(cands); t++ {
				if better(cands[worst], cands[t]) {
					worst = t
				}
			}
			if better(c, cands[worst]) {
				cands[worst] = c
			}
		}
		var r float64
		if len(cands) == k {
			r = bound()
		} else {
			r = d + n.thr + 1 // subtree cannot be excluded yet
		}
		// Inclusive comparisons keep equal-distance regions in play so the
		// positional tie-break matches the brute-force scan.
		if d < n.thr {
			if d-r <= n.thr {
				search(n.left)
			}
			if d+r >= n.thr {
				search(n.right)
			}
		} else {
			if d+r >= n.thr {
				search(n.right)
			}
			if d-r <= n.thr {
				search(n.left)
			}
		}
	}
	search(i.root)
	return finish(cands)
}

func finish(cands []cand) ([]int, []float64, error) {
	sort.Slice(cands, func(a, b int) bool { return better(cands[a], cands[b]) })
	positions := make([]int, len(cands))
	distances := make([]float64, len(cands))
	for n, c := range cands {
		positions[n] = c.pos
		distances[n] = c.dist
	}
	return positions, distances, nil
}

// MarshalBinary uses the brute-force encoding for persistence.
func (i *Index) MarshalBinary() ([]byte, error) {
	bf := bruteforce.New(i.distance)
	if err := bf.Build(i.vecs); err != nil {
		return nil, err
	}
	return bf.MarshalBinary()
}

// UnmarshalBinary decodes the brute-force encoding and rebuilds the VP-tree.
func (i *Index) UnmarshalBinary(data []byte) error {
	vecs, err := decodeBruteData(data)
	if err != nil {
		return err
	}
	return i.Build(vecs)
}

// decodeBruteData decodes the shared binary format: dim(uint32), n(uint32),
// then float32[dim] per vector, little-endian.
func decodeBruteData(data []byte) ([][]float32, error) {
	if len(data) < 8 {
		return nil, errors.New("cover: invalid data")
	}
	dim := int(binary.LittleEndian.Uint32(data[0:4]))
	n := int(binary.LittleEndian.Uint32(data[4:8]))
	if len(data) != 8+4*dim*n {
		return nil, errors.New("cover: truncated data")
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
	return vecs, nil
}
