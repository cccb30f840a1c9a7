package contract

import (
	"fmt"

	"github.com/getmockd/contractd/internal/bodypath"
	"github.com/getmockd/contractd/pkg/patterns"
)

// BodyMatcher applies a matching strategy to the values at a JSONPath or
// XPath in a body, overriding the value declared in the body itself.
type BodyMatcher struct {
	Path  string
	Match MatchingTypeValue
}

// MatchingTypeValue is a matching strategy with its argument.
//
// Value holds a patterns.Pattern for RegexMatch and an ExecutionProperty
// for CommandMatch. The occurrence bounds apply to TypeMatch on arrays.
type MatchingTypeValue struct {
	Type              MatchingType
	Value             any
	MinTypeOccurrence *int
	MaxTypeOccurrence *int
}

// Pattern returns the pattern a regex-related matcher checks values with.
func (m MatchingTypeValue) Pattern() (patterns.Pattern, bool) {
	if m.Type == RegexMatch {
		p, ok := patternOf(m.Value)
		return p, ok && !p.IsZero()
	}
	return m.Type.DefaultPattern()
}

// ByRegex matches values against p.
func ByRegex(p patterns.Pattern) MatchingTypeValue {
	return MatchingTypeValue{Type: RegexMatch, Value: p}
}

// ByDate matches ISO dates (yyyy-MM-dd).
func ByDate() MatchingTypeValue { return MatchingTypeValue{Type: DateMatch} }

// ByTime matches ISO times (HH:mm:ss).
func ByTime() MatchingTypeValue { return MatchingTypeValue{Type: TimeMatch} }

// ByTimestamp matches ISO date-times without an offset.
func ByTimestamp() MatchingTypeValue { return MatchingTypeValue{Type: TimestampMatch} }

// ByEquality requires values equal to the ones declared in the body.
func ByEquality() MatchingTypeValue { return MatchingTypeValue{Type: EqualityMatch} }

// ByCommand runs command against the value at the path.
func ByCommand(command string) MatchingTypeValue {
	return MatchingTypeValue{Type: CommandMatch, Value: Execute(command)}
}

// TypeOption bounds a ByType matcher.
type TypeOption func(*MatchingTypeValue)

// MinOccurrence requires arrays at the path to have at least n elements.
func MinOccurrence(n int) TypeOption {
	return func(m *MatchingTypeValue) { m.MinTypeOccurrence = &n }
}

// MaxOccurrence requires arrays at the path to have at most n elements.
func MaxOccurrence(n int) TypeOption {
	return func(m *MatchingTypeValue) { m.MaxTypeOccurrence = &n }
}

// ByType requires values of the same JSON type as the ones declared in the body.
func ByType(opts ...TypeOption) MatchingTypeValue {
	m := MatchingTypeValue{Type: TypeMatch}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// BodyMatchersBuilder collects body matchers.
type BodyMatchersBuilder struct {
	DSL
	field    string
	matchers *[]BodyMatcher
}

// JSONPath adds a matcher for the values at a JSONPath expression.
func (b *BodyMatchersBuilder) JSONPath(path string, m MatchingTypeValue) {
	b.add(path, m)
}

// XPath adds a matcher for the values at an XPath expression.
func (b *BodyMatchersBuilder) XPath(path string, m MatchingTypeValue) {
	b.add(path, m)
}

func (b *BodyMatchersBuilder) add(path string, m MatchingTypeValue) {
	field := fmt.Sprintf("%s[%s]", b.field, path)
	if err := bodypath.Validate(path); err != nil {
		b.fail(&ValidationError{Field: field, Message: err.Error(), Err: ErrInvalidPattern})
		return
	}
	if m.Type == RegexMatch {
		if _, ok := m.Pattern(); !ok {
			b.fail(&ValidationError{Field: field, Message: "regex matcher needs a pattern", Err: ErrInvalidPattern})
			return
		}
	}
	if m.MinTypeOccurrence != nil && m.MaxTypeOccurrence != nil && *m.MinTypeOccurrence > *m.MaxTypeOccurrence {
		b.fail(&ValidationError{
			Field:   field,
			Message: fmt.Sprintf("min occurrence %d is greater than max occurrence %d", *m.MinTypeOccurrence, *m.MaxTypeOccurrence),
		})
		return
	}
	*b.matchers = append(*b.matchers, BodyMatcher{Path: path, Match: m})
}
