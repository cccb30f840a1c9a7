package contract

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/getmockd/contractd/internal/regexgen"
	"github.com/getmockd/contractd/pkg/patterns"
)

// Property is a contract value seen differently by the two parties.
//
// The consumer side is what the client observes and what stubs are built
// from. The producer side is what the real implementation must return or
// accept and what generated tests assert on. Either side may be a literal,
// a patterns.Pattern, a RegexProperty, an OptionalProperty, an
// ExecutionProperty or nil for an absent value.
type Property struct {
	consumer any
	producer any
}

// NewProperty returns a property with explicit sides. No checks are run;
// use NewValue to have a pattern side verified against the concrete side.
func NewProperty(consumer, producer any) Property {
	return Property{consumer: consumer, producer: producer}
}

// Value returns a property whose sides are both v.
func Value(v any) Property {
	if p, ok := v.(Property); ok {
		return p
	}
	return Property{consumer: v, producer: v}
}

func (p Property) Consumer() any { return p.consumer }
func (p Property) Producer() any { return p.producer }

// Side returns the value seen by role.
func (p Property) Side(role Role) any {
	if role == ProducerRole {
		return p.producer
	}
	return p.consumer
}

// IsSingleValue reports whether both sides hold the same value.
func (p Property) IsSingleValue() bool {
	return canonical(p.consumer) == canonical(p.producer)
}

// Equal reports whether both sides of p and o are structurally equal.
func (p Property) Equal(o Property) bool {
	return canonical(p) == canonical(o)
}

func (p Property) String() string {
	return fmt.Sprintf("Property{consumer=%v, producer=%v}", p.consumer, p.producer)
}

// Role names the party a value is declared for.
type Role int

const (
	ConsumerRole Role = iota
	ProducerRole
)

func (r Role) String() string {
	if r == ProducerRole {
		return "producer"
	}
	return "consumer"
}

// Side is a value tagged with the role it is declared for.
type Side struct {
	Role  Role
	Value any
}

// Consumer tags v as the consumer-side value.
func Consumer(v any) Side { return Side{Role: ConsumerRole, Value: v} }

// Producer tags v as the producer-side value.
func Producer(v any) Side { return Side{Role: ProducerRole, Value: v} }

// NewValue builds a property from one or two tagged sides.
//
// With a single side the other side is derived: a pattern is drawn into a
// concrete example with gen, anything else is copied. With two sides they
// are taken as given and, when one of them is a pattern, the other one must
// satisfy it. A nil gen draws from the global source.
func NewValue(gen *regexgen.Generator, sides ...Side) (Property, error) {
	switch len(sides) {
	case 1:
		s := sides[0]
		if p, ok := s.Value.(Property); ok {
			return p, nil
		}
		derived, err := example(gen, s.Value)
		if err != nil {
			return Property{}, err
		}
		if s.Role == ConsumerRole {
			return Property{consumer: s.Value, producer: derived}, nil
		}
		return Property{consumer: derived, producer: s.Value}, nil
	case 2:
		if sides[0].Role == sides[1].Role {
			return Property{}, fmt.Errorf("both values are declared for the %s side", sides[0].Role)
		}
		p := Property{}
		for _, s := range sides {
			if s.Role == ConsumerRole {
				p.consumer = s.Value
			} else {
				p.producer = s.Value
			}
		}
		return p, verifyPair(p.consumer, p.producer)
	default:
		return Property{}, fmt.Errorf("a value takes one or two sides, got %d", len(sides))
	}
}

// example derives a concrete value from v. Pattern-like values are drawn
// from; anything else is returned unchanged.
func example(gen *regexgen.Generator, v any) (any, error) {
	if gen == nil {
		gen = regexgen.Default
	}
	switch x := v.(type) {
	case patterns.Pattern:
		if x.IsZero() {
			return nil, &ValidationError{Message: "pattern is empty", Err: ErrInvalidPattern}
		}
		return gen.Generate(x.String())
	case RegexProperty:
		return x.Example(gen)
	case OptionalProperty:
		return gen.Generate(x.inner.String())
	default:
		return v, nil
	}
}

// verifyPair checks each side against the other when one of them is a
// pattern. Nil, pattern and command values on the concrete side are not checked.
func verifyPair(consumer, producer any) error {
	return errors.Join(verifySide(consumer, producer), verifySide(producer, consumer))
}

func verifySide(matcher, concrete any) error {
	pat, ok := patternOf(matcher)
	if !ok {
		return nil
	}
	if pat.IsZero() {
		return &ValidationError{Message: "pattern is empty", Err: ErrInvalidPattern}
	}
	if concrete == nil {
		return nil
	}
	if _, isPat := patternOf(concrete); isPat {
		return nil
	}
	if _, isCmd := concrete.(ExecutionProperty); isCmd {
		return nil
	}
	s, ok := scalarString(concrete)
	if !ok {
		return nil
	}
	if !pat.Matches(s) {
		return mismatch(s, pat)
	}
	return nil
}

func mismatch(value string, pat patterns.Pattern) error {
	return &ValidationError{
		Message: fmt.Sprintf("value %q does not match pattern %s", value, pat.String()),
		Err:     ErrPatternMismatch,
	}
}

// patternOf returns the pattern a value is matched with.
func patternOf(v any) (patterns.Pattern, bool) {
	switch x := v.(type) {
	case patterns.Pattern:
		return x, true
	case RegexProperty:
		return x.pattern, true
	case OptionalProperty:
		return x.optional, true
	default:
		return patterns.Pattern{}, false
	}
}

// scalarString renders a scalar the way it appears on the wire.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return "", false
	}
}
