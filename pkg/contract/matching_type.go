package contract

import (
	"fmt"
	"strings"

	"github.com/getmockd/contractd/pkg/patterns"
)

// MatchingType is the strategy used to compare an actual value with the
// value declared in a contract.
type MatchingType int

const (
	EqualityMatch MatchingType = iota
	TypeMatch
	CommandMatch
	RegexMatch
	DateMatch
	TimeMatch
	TimestampMatch
)

var matchingTypeNames = [...]string{
	EqualityMatch:  "EQUALITY",
	TypeMatch:      "TYPE",
	CommandMatch:   "COMMAND",
	RegexMatch:     "REGEX",
	DateMatch:      "DATE",
	TimeMatch:      "TIME",
	TimestampMatch: "TIMESTAMP",
}

func (t MatchingType) String() string {
	if t < 0 || int(t) >= len(matchingTypeNames) {
		return fmt.Sprintf("MatchingType(%d)", int(t))
	}
	return matchingTypeNames[t]
}

// IsRegexRelated reports whether values of this type are verified against a
// regular expression rather than by equality, structure or a command.
func (t MatchingType) IsRegexRelated() bool {
	switch t {
	case RegexMatch, DateMatch, TimeMatch, TimestampMatch:
		return true
	default:
		return false
	}
}

// DefaultPattern returns the pattern implied by the date and time types.
func (t MatchingType) DefaultPattern() (patterns.Pattern, bool) {
	switch t {
	case DateMatch:
		return patterns.ISODate(), true
	case TimeMatch:
		return patterns.ISOTime(), true
	case TimestampMatch:
		return patterns.ISODateTime(), true
	default:
		return patterns.Pattern{}, false
	}
}

// ParseMatchingType accepts both the enum spelling ("REGEX") and the
// contract-file spelling ("by_regex").
func ParseMatchingType(s string) (MatchingType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "BY_")
	for i, n := range matchingTypeNames {
		if n == name {
			return MatchingType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown matching type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t MatchingType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *MatchingType) UnmarshalText(b []byte) error {
	parsed, err := ParseMatchingType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MatchingTypeOf classifies a contract value. Patterns and regex wrappers are
// RegexMatch, execution properties are CommandMatch and everything else is
// compared by equality. A Property takes the strongest type of its two sides.
func MatchingTypeOf(v any) MatchingType {
	switch x := v.(type) {
	case patterns.Pattern, RegexProperty, OptionalProperty:
		return RegexMatch
	case ExecutionProperty:
		return CommandMatch
	case Property:
		c, p := MatchingTypeOf(x.consumer), MatchingTypeOf(x.producer)
		if c == RegexMatch || p == RegexMatch {
			return RegexMatch
		}
		if c == CommandMatch || p == CommandMatch {
			return CommandMatch
		}
		return EqualityMatch
	default:
		return EqualityMatch
	}
}
