package matching

import (
	"fmt"

	"github.com/getmockd/contractd/internal/bodypath"
	"github.com/getmockd/contractd/pkg/contract"
)

// checkMatcher evaluates one body matcher against the actual body. expected
// is the declared body for the same side; EQUALITY and TYPE matchers read the
// reference value at the matcher path from it.
func checkMatcher(bm contract.BodyMatcher, expected any, actual body) []Mismatch {
	fail := func(actualValue any, reason string) Mismatch {
		return Mismatch{Field: fieldBodyMatchers, Path: bm.Path, Expected: bm.Match.Value, Actual: actualValue, Reason: reason}
	}

	values, err := bodypath.Extract(actual.source(bm.Path), bm.Path)
	if err != nil {
		return []Mismatch{fail(nil, err.Error())}
	}
	if len(values) == 0 {
		if bm.Match.Type == contract.TypeMatch && bm.Match.MinTypeOccurrence != nil && *bm.Match.MinTypeOccurrence == 0 {
			return nil
		}
		return []Mismatch{fail(nil, "no value at path")}
	}

	var out []Mismatch
	switch bm.Match.Type {
	case contract.EqualityMatch:
		refs := reference(expected, bm.Path)
		if len(refs) == 0 {
			return []Mismatch{fail(nil, "no declared value at path to compare with")}
		}
		for i, v := range values {
			want := refs[min(i, len(refs)-1)]
			if ok, err := MatchValue(want, v); !ok {
				out = append(out, valueMismatch(fieldBodyMatchers, bm.Path, want, v, err))
			}
		}

	case contract.TypeMatch:
		refs := reference(expected, bm.Path)
		for i, v := range values {
			if len(refs) > 0 {
				want := refs[min(i, len(refs)-1)]
				if kind(want) != kind(v) && !bodypath.IsXPath(bm.Path) {
					out = append(out, fail(v, fmt.Sprintf("expected a value of type %s, got %s", kind(want), kind(v))))
					continue
				}
			}
			if reason := checkOccurrence(bm.Match, v); reason != "" {
				out = append(out, fail(v, reason))
			}
		}

	case contract.CommandMatch:
		cmd, ok := bm.Match.Value.(contract.ExecutionProperty)
		if !ok {
			return []Mismatch{fail(nil, "command matcher has no command")}
		}
		for _, v := range values {
			if ok, err := MatchValue(cmd, v); !ok {
				out = append(out, valueMismatch(fieldBodyMatchers, bm.Path, cmd, v, err))
			}
		}

	default:
		pat, ok := bm.Match.Pattern()
		if !ok {
			return []Mismatch{fail(nil, "matcher has no pattern")}
		}
		for _, v := range values {
			if !pat.Matches(render(v)) {
				out = append(out, valueMismatch(fieldBodyMatchers, bm.Path, pat, v, nil))
			}
		}
	}
	return out
}

// reference extracts the declared values at path, if any.
func reference(expected any, path string) []any {
	if expected == nil {
		return nil
	}
	refs, err := bodypath.Extract(expected, path)
	if err != nil {
		return nil
	}
	return refs
}

func checkOccurrence(m contract.MatchingTypeValue, v any) string {
	if m.MinTypeOccurrence == nil && m.MaxTypeOccurrence == nil {
		return ""
	}
	arr, ok := v.([]any)
	if !ok {
		return "occurrence bounds need an array, got " + kind(v)
	}
	if m.MinTypeOccurrence != nil && len(arr) < *m.MinTypeOccurrence {
		return fmt.Sprintf("expected at least %d elements, got %d", *m.MinTypeOccurrence, len(arr))
	}
	if m.MaxTypeOccurrence != nil && len(arr) > *m.MaxTypeOccurrence {
		return fmt.Sprintf("expected at most %d elements, got %d", *m.MaxTypeOccurrence, len(arr))
	}
	return ""
}
