package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/getmockd/contractd/internal/regexgen"
	"github.com/getmockd/contractd/pkg/patterns"
)

// NumericKind is the type an example drawn from a RegexProperty is converted to.
type NumericKind int

const (
	// NoCoercion keeps drawn examples as strings.
	NoCoercion NumericKind = iota
	Integer                // int32
	Long                   // int64
	Short                  // int16
	Float                  // float32
	Double                 // float64
)

func (k NumericKind) String() string {
	switch k {
	case Integer:
		return "int32"
	case Long:
		return "int64"
	case Short:
		return "int16"
	case Float:
		return "float32"
	case Double:
		return "float64"
	default:
		return "string"
	}
}

// parse converts s to the kind's Go type.
func (k NumericKind) parse(s string) (any, error) {
	switch k {
	case Integer:
		n, err := strconv.ParseInt(s, 10, 32)
		return int32(n), err
	case Long:
		return strconv.ParseInt(s, 10, 64)
	case Short:
		n, err := strconv.ParseInt(s, 10, 16)
		return int16(n), err
	case Float:
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	case Double:
		return strconv.ParseFloat(s, 64)
	default:
		return s, nil
	}
}

// RegexProperty is a pattern whose drawn examples may be converted to a
// numeric type.
type RegexProperty struct {
	pattern patterns.Pattern
	kind    NumericKind
}

// Regex converts v into a RegexProperty. v may be a string expression, a
// patterns.Pattern, a *regexp.Regexp or a RegexProperty.
func Regex(v any) (RegexProperty, error) {
	switch x := v.(type) {
	case RegexProperty:
		return x, nil
	case patterns.Pattern:
		if x.IsZero() {
			return RegexProperty{}, &ValidationError{Message: "pattern is empty", Err: ErrInvalidPattern}
		}
		return RegexProperty{pattern: x}, nil
	case *regexp.Regexp:
		return compileRegex(x.String())
	case string:
		return compileRegex(x)
	default:
		return RegexProperty{}, &ValidationError{
			Message: fmt.Sprintf("cannot use %T as a regular expression", v),
			Err:     ErrInvalidPattern,
		}
	}
}

func compileRegex(expr string) (RegexProperty, error) {
	p, err := patterns.Compile(expr)
	if err != nil {
		return RegexProperty{}, &ValidationError{Message: err.Error(), Err: ErrInvalidPattern}
	}
	return RegexProperty{pattern: p}, nil
}

func (r RegexProperty) Pattern() patterns.Pattern { return r.pattern }
func (r RegexProperty) Kind() NumericKind         { return r.kind }
func (r RegexProperty) String() string            { return r.pattern.String() }

func (r RegexProperty) AsInteger() RegexProperty { return r.as(Integer) }
func (r RegexProperty) AsLong() RegexProperty    { return r.as(Long) }
func (r RegexProperty) AsShort() RegexProperty   { return r.as(Short) }
func (r RegexProperty) AsFloat() RegexProperty   { return r.as(Float) }
func (r RegexProperty) AsDouble() RegexProperty  { return r.as(Double) }

func (r RegexProperty) as(k NumericKind) RegexProperty {
	return RegexProperty{pattern: r.pattern, kind: k}
}

// Example draws a fresh value matching the pattern and converts it to the
// property's kind. Draws that do not fit the kind are retried; when none of
// regexgen.MaxAttempts draws fits, the error wraps ErrCoercion rather than
// clamping the value into range.
func (r RegexProperty) Example(gen *regexgen.Generator) (any, error) {
	if r.pattern.IsZero() {
		return nil, &ValidationError{Message: "pattern is empty", Err: ErrInvalidPattern}
	}
	if gen == nil {
		gen = regexgen.Default
	}

	// A converted draw must still match once rendered back, so "01234"
	// is rejected for [0-9]{5} as an integer.
	var accept func(string) bool
	if r.kind != NoCoercion {
		accept = func(s string) bool {
			v, err := r.kind.parse(s)
			if err != nil {
				return false
			}
			rendered, _ := scalarString(v)
			return r.pattern.Matches(rendered)
		}
	}

	s, err := gen.GenerateWhere(r.pattern.String(), accept)
	if err != nil {
		if r.kind != NoCoercion && errors.Is(err, regexgen.ErrUnsatisfiable) {
			return nil, &ValidationError{
				Message: fmt.Sprintf("no %s value can be drawn from pattern %q", r.kind, r.pattern.String()),
				Err:     ErrCoercion,
			}
		}
		return nil, err
	}
	return r.kind.parse(s)
}

// OptionalProperty matches its pattern or an absent (empty) value.
type OptionalProperty struct {
	inner    patterns.Pattern
	optional patterns.Pattern
}

// Optional wraps v, which may be anything Regex accepts, so that an empty
// value also matches.
func Optional(v any) (OptionalProperty, error) {
	r, err := Regex(v)
	if err != nil {
		return OptionalProperty{}, err
	}
	opt, err := patterns.Compile("(" + r.pattern.String() + ")?")
	if err != nil {
		return OptionalProperty{}, &ValidationError{Message: err.Error(), Err: ErrInvalidPattern}
	}
	return OptionalProperty{inner: r.pattern, optional: opt}, nil
}

// Pattern returns the optional pattern, "(inner)?".
func (o OptionalProperty) Pattern() patterns.Pattern { return o.optional }

// Inner returns the wrapped pattern.
func (o OptionalProperty) Inner() patterns.Pattern { return o.inner }

func (o OptionalProperty) String() string { return o.optional.String() }
