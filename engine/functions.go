package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/viant/frnn/dataset"
	"github.com/viant/frnn/metric"
	sqlite "modernc.org/sqlite"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterDistanceFunctions registers frnn_l2 and frnn_cosine with the
// driver so they are available on new connections opened after this call.
// Both take two feature BLOBs encoded with dataset.EncodeVector.
// Registration happens once per process; repeated calls return the first
// outcome. Note: existing open connections will not see new functions.
func RegisterDistanceFunctions() error {
	registerOnce.Do(func() {
		if err := sqlite.RegisterDeterministicScalarFunction("frnn_l2", 2, distanceImpl(metric.EuclideanDistance)); err != nil {
			registerErr = err
			return
		}
		registerErr = sqlite.RegisterDeterministicScalarFunction("frnn_cosine", 2, distanceImpl(metric.CosineDistance))
	})
	return registerErr
}

func distanceImpl(fn metric.Func) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("frnn: distance function expects 2 arguments, got %d", len(args))
		}
		a, err := asVector(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asVector(args[1])
		if err != nil {
			return nil, err
		}
		if a == nil || b == nil {
			return nil, nil
		}
		if len(a) != len(b) {
			return nil, fmt.Errorf("frnn: distance dim mismatch %d vs %d", len(a), len(b))
		}
		return float64(fn(a, b)), nil
	}
}

func asVector(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return dataset.DecodeVector(v)
	default:
		return nil, fmt.Errorf("frnn: unsupported argument type %T for feature vector; want BLOB", arg)
	}
}
