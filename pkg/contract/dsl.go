package contract

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/getmockd/contractd/internal/regexgen"
	"github.com/getmockd/contractd/pkg/patterns"
)

// DSL holds the value helpers shared by every builder. Helpers never return
// errors; failures are collected and reported by Make. A DSL that was not
// handed out by Make has nowhere to report to and panics instead.
type DSL struct {
	gen  *regexgen.Generator
	errs *[]error
}

func (d DSL) fail(err error) {
	if err == nil {
		return
	}
	if d.errs == nil {
		panic(fmt.Sprintf("contract: %v (DSL used outside Make)", err))
	}
	*d.errs = append(*d.errs, err)
}

// Value builds a property from one or two tagged sides, see NewValue.
// Pattern mismatches are left to contract validation, which reports them
// with the field they occur in.
func (d DSL) Value(sides ...Side) Property {
	p, err := NewValue(d.gen, sides...)
	if err != nil && !errors.Is(err, ErrPatternMismatch) {
		d.fail(err)
	}
	return p
}

func (DSL) Consumer(v any) Side { return Consumer(v) }
func (DSL) Producer(v any) Side { return Producer(v) }

// C is short for Consumer.
func (DSL) C(v any) Side { return Consumer(v) }

// P is short for Producer.
func (DSL) P(v any) Side { return Producer(v) }

// Regex converts v into a RegexProperty, see Regex.
func (d DSL) Regex(v any) RegexProperty {
	r, err := Regex(v)
	d.fail(err)
	return r
}

// Optional wraps v so that an absent value also matches, see Optional.
func (d DSL) Optional(v any) OptionalProperty {
	o, err := Optional(v)
	d.fail(err)
	return o
}

// AnyOf matches exactly one of values.
func (DSL) AnyOf(values ...string) patterns.Pattern {
	return patterns.AnyOf(values...)
}

// Execute returns a command to run against the actual value.
func (DSL) Execute(command string) ExecutionProperty {
	return Execute(command)
}

// property turns a builder argument into a Property. Pattern-like values are
// declared for role and the other side is drawn from them.
func (d DSL) property(field string, v any, role Role) Property {
	switch x := v.(type) {
	case Property:
		return x
	case patterns.Pattern, RegexProperty, OptionalProperty:
		p, err := NewValue(d.gen, Side{Role: role, Value: x})
		d.fail(at(field, err))
		return p
	default:
		return Value(v)
	}
}

// body normalizes a body tree: nested maps and slices become map[string]any
// and []any, and pattern-like leaves become properties declared for role.
func (d DSL) body(field string, v any, role Role) any {
	switch x := v.(type) {
	case map[string]any:
		// Keys are visited in order so seeded draws repeat.
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(x))
		for _, k := range keys {
			out[k] = d.body(field+"."+k, x[k], role)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = e
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = d.body(indexField(field, i), e, role)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = d.body(indexField(field, i), e, role)
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out
	case patterns.Pattern, RegexProperty, OptionalProperty:
		return d.property(field, x, role)
	default:
		if c, ok := collection(v); ok {
			return d.body(field, c, role)
		}
		return v
	}
}

// collection converts any other map with string keys into map[string]any
// and any other slice or array into []any. Byte slices are left alone.
func collection(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
		fallthrough
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}
