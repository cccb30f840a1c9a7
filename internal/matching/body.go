package matching

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getmockd/contractd/internal/bodypath"
	"github.com/getmockd/contractd/pkg/contract"
	"github.com/getmockd/contractd/pkg/patterns"
)

const (
	fieldBody         = "body"
	fieldBodyMatchers = "bodyMatchers"
)

// body is an actual body, decoded once when it is JSON.
type body struct {
	raw  []byte
	tree any
	json bool
}

func decodeBody(raw []byte) body {
	b := body{raw: raw}
	if err := json.Unmarshal(raw, &b.tree); err == nil {
		b.json = true
	}
	return b
}

// source returns what a body matcher path is evaluated against.
func (b body) source(path string) any {
	if b.json && !bodypath.IsXPath(path) {
		return b.tree
	}
	return b.raw
}

// verifyBody checks the actual body against one side of a declared body and
// its body matchers. Leaves addressed by a matcher are left to the matcher.
func verifyBody(expected any, matchers []contract.BodyMatcher, actual body) []Mismatch {
	var out []Mismatch
	if expected != nil {
		out = append(out, compareBody(expected, matchers, actual)...)
	}
	for _, bm := range matchers {
		out = append(out, checkMatcher(bm, expected, actual)...)
	}
	return out
}

func compareBody(expected any, matchers []contract.BodyMatcher, actual body) []Mismatch {
	switch e := expected.(type) {
	case map[string]any, []any:
		if !actual.json {
			return []Mismatch{{Field: fieldBody, Expected: expected, Actual: string(actual.raw), Reason: "body is not valid JSON"}}
		}
		w := treeWalker{covered: coveredPaths(matchers)}
		w.walk("$", expected, actual.tree)
		return w.out
	case string:
		if hasXPath(matchers) {
			return nil
		}
		if string(actual.raw) != e {
			return []Mismatch{valueMismatch(fieldBody, "", e, string(actual.raw), nil)}
		}
		return nil
	case patterns.Pattern, contract.ExecutionProperty:
		ok, err := MatchValue(e, string(actual.raw))
		if !ok {
			return []Mismatch{valueMismatch(fieldBody, "", e, string(actual.raw), err)}
		}
		return nil
	default:
		var got any = string(actual.raw)
		if actual.json {
			got = actual.tree
		}
		if ok, err := MatchValue(e, got); !ok {
			return []Mismatch{valueMismatch(fieldBody, "", e, got, err)}
		}
		return nil
	}
}

type treeWalker struct {
	covered []string
	out     []Mismatch
}

func (w *treeWalker) walk(path string, expected, actual any) {
	if w.isCovered(path) {
		return
	}
	switch e := expected.(type) {
	case map[string]any:
		a, ok := actual.(map[string]any)
		if !ok {
			w.fail(path, "expected an object, got "+kind(actual), expected, actual)
			return
		}
		keys := make([]string, 0, len(e))
		for k := range e {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := childPath(path, k)
			v, present := a[k]
			if !present {
				if !acceptsAbsent(e[k]) && !w.isCovered(child) {
					w.fail(child, "missing", e[k], nil)
				}
				continue
			}
			w.walk(child, e[k], v)
		}
	case []any:
		a, ok := actual.([]any)
		if !ok {
			w.fail(path, "expected an array, got "+kind(actual), expected, actual)
			return
		}
		if len(a) != len(e) {
			w.fail(path, fmt.Sprintf("expected %d elements, got %d", len(e), len(a)), expected, actual)
			return
		}
		for i := range e {
			w.walk(fmt.Sprintf("%s[%d]", path, i), e[i], a[i])
		}
	default:
		ok, err := MatchValue(expected, actual)
		if !ok {
			w.out = append(w.out, valueMismatch(fieldBody, path, expected, actual, err))
		}
	}
}

func (w *treeWalker) fail(path, reason string, expected, actual any) {
	w.out = append(w.out, Mismatch{Field: fieldBody, Path: path, Expected: expected, Actual: actual, Reason: reason})
}

// isCovered reports whether path is at or below a body matcher path.
func (w *treeWalker) isCovered(path string) bool {
	norm := normalizePath(path)
	for _, c := range w.covered {
		if norm == c || strings.HasPrefix(norm, c+".") || strings.HasPrefix(norm, c+"[") {
			return true
		}
	}
	return false
}

var (
	identKey   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	arrayIndex = regexp.MustCompile(`\[\d+\]`)
)

func childPath(parent, key string) string {
	if identKey.MatchString(key) {
		return parent + "." + key
	}
	return fmt.Sprintf("%s['%s']", parent, key)
}

// normalizePath makes "$.a[0].b" and "$.a[*].b" comparable.
func normalizePath(path string) string {
	return arrayIndex.ReplaceAllString(path, "[*]")
}

func coveredPaths(matchers []contract.BodyMatcher) []string {
	var out []string
	for _, bm := range matchers {
		if !bodypath.IsXPath(bm.Path) {
			out = append(out, normalizePath(bm.Path))
		}
	}
	return out
}

func hasXPath(matchers []contract.BodyMatcher) bool {
	for _, bm := range matchers {
		if bodypath.IsXPath(bm.Path) {
			return true
		}
	}
	return false
}
