package classifier

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/viant/frnn/dataset"
	"github.com/viant/frnn/index"
	"github.com/viant/frnn/metric"
	"github.com/viant/frnn/owa"
)

// MarshalBinary serializes the model: its configuration, training labels
// and the index payload, little-endian with length-prefixed strings.
func (m *Model) MarshalBinary() ([]byte, error) {
	payload, err := m.idx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	var out []byte
	putU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		out = append(out, b[:]...)
	}
	putStr := func(s string) {
		putU32(uint32(len(s)))
		out = append(out, s...)
	}
	putU32(uint32(m.dim))
	putStr(string(m.cfg.Metric))
	putStr(string(m.cfg.Index))
	putStr(string(m.cfg.Weighting.Family))
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(m.cfg.Weighting.Decay))
	out = append(out, b[:]...)
	putStr(m.cfg.K.String())
	putStr(string(m.cfg.Vote))
	putU32(uint32(len(m.labels)))
	for _, l := range m.labels {
		putStr(l)
	}
	putU32(uint32(len(payload)))
	out = append(out, payload...)
	return out, nil
}

// UnmarshalModel reconstructs a Model serialized with MarshalBinary. The
// restored model answers queries identically to the original.
func UnmarshalModel(data []byte) (*Model, error) {
	off := 0
	getU32 := func() (uint32, error) {
		if off+4 > len(data) {
			return 0, errors.New("classifier: truncated model data")
		}
		v := binary.LittleEndian.Uint32(data[off:])
		off += 4
		return v, nil
	}
	getStr := func() (string, error) {
		n, err := getU32()
		if err != nil {
			return "", err
		}
		if off+int(n) > len(data) {
			return "", errors.New("classifier: truncated model data")
		}
		s := string(data[off : off+int(n)])
		off += int(n)
		return s, nil
	}

	dim, err := getU32()
	if err != nil {
		return nil, err
	}
	metricName, err := getStr()
	if err != nil {
		return nil, err
	}
	kindName, err := getStr()
	if err != nil {
		return nil, err
	}
	family, err := getStr()
	if err != nil {
		return nil, err
	}
	if off+8 > len(data) {
		return nil, errors.New("classifier: truncated model data")
	}
	decay := math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
	off += 8
	kSpec, err := getStr()
	if err != nil {
		return nil, err
	}
	vote, err := getStr()
	if err != nil {
		return nil, err
	}
	k, err := owa.ParseK(kSpec)
	if err != nil {
		return nil, err
	}
	nLabels, err := getU32()
	if err != nil {
		return nil, err
	}
	labels := make([]string, nLabels)
	for i := range labels {
		if labels[i], err = getStr(); err != nil {
			return nil, err
		}
	}
	payloadLen, err := getU32()
	if err != nil {
		return nil, err
	}
	if off+int(payloadLen) != len(data) {
		return nil, fmt.Errorf("classifier: model payload length %d does not match remaining %d", payloadLen, len(data)-off)
	}
	cfg := FRNN{
		K:         k,
		Weighting: owa.Weighting{Family: owa.Family(family), Decay: decay},
		Metric:    metric.Metric(metricName),
		Index:     index.Kind(kindName),
		Vote:      Vote(vote),
	}
	idx, err := index.New(cfg.Index, cfg.Metric)
	if err != nil {
		return nil, err
	}
	if err := idx.UnmarshalBinary(data[off:]); err != nil {
		return nil, err
	}
	return &Model{
		cfg:     cfg,
		classes: dataset.Dataset{Labels: labels}.Classes(),
		labels:  labels,
		dim:     int(dim),
		idx:     idx,
	}, nil
}
