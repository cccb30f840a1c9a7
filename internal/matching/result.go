package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getmockd/contractd/pkg/contract"
	"github.com/getmockd/contractd/pkg/patterns"
)

// FieldResult describes whether a single declared field matched the request.
type FieldResult struct {
	Field    string   `json:"field"`
	Matched  bool     `json:"matched"`
	Score    int      `json:"score"`
	MaxScore int      `json:"maxScore"`
	Expected any      `json:"expected,omitempty"`
	Actual   any      `json:"actual,omitempty"`
	Details  []Detail `json:"details,omitempty"`
}

// Detail describes the match result for one named entry of a field, such as
// a header or a query parameter.
type Detail struct {
	Key      string `json:"key"`
	Expected any    `json:"expected"`
	Actual   string `json:"actual"`
	Matched  bool   `json:"matched"`
}

// Result is the outcome of matching one contract request against an
// incoming request. Only fields the contract declares are included.
type Result struct {
	Score            int           `json:"score"`
	MaxPossibleScore int           `json:"maxPossibleScore"`
	Fields           []FieldResult `json:"fields"`
}

// Matched reports whether every declared field matched.
func (r *Result) Matched() bool {
	for _, f := range r.Fields {
		if !f.Matched {
			return false
		}
	}
	return true
}

// Percentage returns the share of the possible score that was reached.
func (r *Result) Percentage() int {
	if r.MaxPossibleScore == 0 {
		return 100
	}
	return r.Score * 100 / r.MaxPossibleScore
}

// Reason summarizes the fields that did not match.
func (r *Result) Reason() string {
	var failed []string
	for _, f := range r.Fields {
		if !f.Matched {
			failed = append(failed, f.Field)
		}
	}
	if len(failed) == 0 {
		return "all fields matched"
	}
	return "mismatched " + strings.Join(failed, ", ")
}

func (r *Result) add(f FieldResult) {
	if f.Matched {
		f.Score = f.MaxScore
	}
	r.Fields = append(r.Fields, f)
	r.Score += f.Score
	r.MaxPossibleScore += f.MaxScore
}

// NearMiss is a contract that partially matched an incoming request.
type NearMiss struct {
	Contract string  `json:"contract"`
	Result   *Result `json:"result"`
	Reason   string  `json:"reason"`
}

func sortNearMisses(misses []NearMiss) {
	sort.SliceStable(misses, func(i, j int) bool {
		return misses[i].Result.Percentage() > misses[j].Result.Percentage()
	})
}

// Mismatch is a single verification failure.
type Mismatch struct {
	Field    string `json:"field"`
	Path     string `json:"path,omitempty"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
	Reason   string `json:"reason"`
}

func (m Mismatch) String() string {
	field := m.Field
	if m.Path != "" {
		field += " " + m.Path
	}
	return fmt.Sprintf("%s: %s", field, m.Reason)
}

func valueMismatch(field, path string, expected, actual any, err error) Mismatch {
	reason := fmt.Sprintf("expected %s, got %s", describe(expected), describe(actual))
	if err != nil {
		reason = err.Error()
	}
	return Mismatch{Field: field, Path: path, Expected: expected, Actual: actual, Reason: reason}
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", x)
	case patterns.Pattern:
		return "a value matching " + x.String()
	case contract.ExecutionProperty:
		return "a value satisfying " + x.Command()
	case fmt.Stringer:
		return x.String()
	default:
		return render(v)
	}
}
