package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// JSONFormatter serializes the run report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	return EncodeJSON(BuildReport(result), "  ")
}

// EncodeJSON marshals v, indenting with indent when it is not empty.
// NaN and infinities, which JSON cannot represent, are written as null.
func EncodeJSON(v interface{}, indent string) ([]byte, error) {
	data, err := marshalJSON(v, indent)
	var unsupported *json.UnsupportedValueError
	if !errors.As(err, &unsupported) {
		return data, err
	}
	tree, err := finiteTree(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode non-finite values: %w", err)
	}
	return marshalJSON(tree, indent)
}

func marshalJSON(v interface{}, indent string) ([]byte, error) {
	if indent == "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", indent)
}

// finiteTree rebuilds v as generic maps and slices keyed by the json tags,
// with every non-finite float replaced by nil.
func finiteTree(v interface{}) (interface{}, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	var tree interface{}
	if err := msgpack.NewDecoder(&buf).Decode(&tree); err != nil {
		return nil, err
	}
	return dropNonFinite(tree), nil
}

func dropNonFinite(v interface{}) interface{} {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
	case float32:
		if f := float64(t); math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	case []interface{}:
		for i, e := range t {
			t[i] = dropNonFinite(e)
		}
	case map[string]interface{}:
		for k, e := range t {
			t[k] = dropNonFinite(e)
		}
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = dropNonFinite(e)
		}
		return m
	}
	return v
}
