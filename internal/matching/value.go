package matching

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/getmockd/contractd/pkg/contract"
	"github.com/getmockd/contractd/pkg/patterns"
)

// MatchValue checks actual against one side of a contract value.
//
// A nil expectation accepts anything. A pattern is matched against the
// actual value rendered as text; a command is evaluated with $it bound to
// the actual value and passes when it yields anything but false or nil.
// Everything else is compared with valuesEqual, falling back to the text
// forms when one side is a string (headers and XML values are always text).
func MatchValue(expected, actual any) (bool, error) {
	switch e := expected.(type) {
	case nil:
		return true, nil
	case patterns.Pattern:
		if actual == nil {
			return e.Matches(""), nil
		}
		return e.Matches(render(actual)), nil
	case contract.ExecutionProperty:
		result, err := e.Evaluate(actual)
		if err != nil {
			return false, err
		}
		return truthy(result), nil
	}

	if valuesEqual(actual, expected) {
		return true, nil
	}
	_, actualIsStr := actual.(string)
	_, expectedIsStr := expected.(string)
	if actual != nil && (actualIsStr || expectedIsStr) {
		return render(actual) == render(expected), nil
	}
	return false, nil
}

// acceptsAbsent reports whether a missing value satisfies expected.
func acceptsAbsent(expected any) bool {
	switch e := expected.(type) {
	case nil:
		return true
	case patterns.Pattern:
		return e.Matches("")
	default:
		return false
	}
}

// valuesEqual compares two values for equality, handling type coercion.
// Supports comparing:
//   - strings
//   - numbers (float64, int, etc.)
//   - booleans
//   - null
func valuesEqual(actual, expected any) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	if reflect.DeepEqual(actual, expected) {
		return true
	}

	// JSON numbers decode as float64, contract numbers are usually ints.
	actualNum, actualIsNum := toFloat64(actual)
	expectedNum, expectedIsNum := toFloat64(expected)
	if actualIsNum && expectedIsNum {
		return actualNum == expectedNum
	}

	return false
}

// toFloat64 attempts to convert a value to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}

// render returns the text form of a value as it appears on the wire.
func render(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	default:
		return true
	}
}

// kind names the JSON type of a decoded value.
func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string, patterns.Pattern:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := toFloat64(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
