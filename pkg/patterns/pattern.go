package patterns

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Pattern is a compiled regular expression that remembers its source text.
// Two patterns are equal when their sources are equal.
//
// Matching is always against the whole input: "[0-9]{2}" matches "12" but
// not "123".
type Pattern struct {
	source string
	full   *regexp.Regexp
}

// Compile parses expr and returns a Pattern matching whole inputs only.
func Compile(expr string) (Pattern, error) {
	full, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return Pattern{source: expr, full: full}, nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
// It is meant for pattern literals in contract definitions.
func MustCompile(expr string) Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source text of the pattern.
func (p Pattern) String() string {
	return p.source
}

// IsZero reports whether p was never compiled.
func (p Pattern) IsZero() bool {
	return p.full == nil
}

// Matches reports whether s matches the pattern in its entirety.
func (p Pattern) Matches(s string) bool {
	if p.full == nil {
		return false
	}
	return p.full.MatchString(s)
}

// Equal reports whether both patterns were compiled from the same source.
func (p Pattern) Equal(o Pattern) bool {
	return p.source == o.source
}

// Regexp returns the anchored regular expression used for matching.
func (p Pattern) Regexp() *regexp.Regexp {
	return p.full
}

// MarshalJSON renders the pattern as {"regex": "<source>"} so projections
// keep patterns distinguishable from plain strings.
func (p Pattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"regex": p.source})
}

// MarshalYAML renders the pattern the same way as MarshalJSON.
func (p Pattern) MarshalYAML() (interface{}, error) {
	return map[string]string{"regex": p.source}, nil
}
