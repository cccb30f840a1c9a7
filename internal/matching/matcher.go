package matching

import (
	"net/http"
	"strings"

	"github.com/getmockd/contractd/pkg/contract"
	"github.com/getmockd/contractd/pkg/patterns"
)

const missing = "(missing)"

// MatchRequest evaluates every field the contract request declares against
// r, using the consumer-side values. body is the already-read request body.
// Fields are evaluated without short-circuiting so the result doubles as a
// near-miss breakdown.
func MatchRequest(req *contract.Request, r *http.Request, body []byte) *Result {
	result := &Result{}
	if req == nil {
		return result
	}

	if m := req.Method(); m != nil {
		expected := consumerSide(*m)
		result.add(FieldResult{
			Field:    "method",
			Matched:  MatchMethod(expected, r.Method),
			MaxScore: ScoreMethod,
			Expected: expected,
			Actual:   r.Method,
		})
	}

	if u := req.URL(); u != nil {
		expected := consumerSide(u.Value())
		target := r.URL.RequestURI()
		if u.IsPath() || len(u.QueryParameters()) > 0 {
			target = r.URL.Path
		}
		maxScore := ScorePathExact
		if _, ok := expected.(patterns.Pattern); ok {
			maxScore = ScorePathPattern
		}
		matched, _ := MatchValue(expected, target)
		result.add(FieldResult{
			Field:    "url",
			Matched:  matched,
			MaxScore: maxScore,
			Expected: expected,
			Actual:   target,
		})

		if params := u.QueryParameters(); len(params) > 0 {
			query := r.URL.Query()
			f := FieldResult{Field: "queryParameters", Matched: true}
			for _, q := range params {
				d := matchEntry(q.Name, consumerSide(q.Value), query[q.Name])
				f.add(d, ScoreQueryParam)
			}
			result.add(f)
		}
	}

	if headers := req.Headers(); headers.Len() > 0 {
		f := FieldResult{Field: "headers", Matched: true}
		for _, h := range headers.Entries() {
			d := matchEntry(h.Name, consumerSide(h.Value), r.Header.Values(h.Name))
			f.add(d, ScoreHeader)
		}
		result.add(f)
	}

	if cookies := req.Cookies(); cookies.Len() > 0 {
		f := FieldResult{Field: "cookies", Matched: true}
		for _, c := range cookies.Entries() {
			var values []string
			if ck, err := r.Cookie(c.Name); err == nil {
				values = []string{ck.Value}
			}
			f.add(matchEntry(c.Name, consumerSide(c.Value), values), ScoreCookie)
		}
		result.add(f)
	}

	expected := consumerSide(req.Body())
	matchers := req.BodyMatchers()
	if expected == nil && len(matchers) == 0 {
		return result
	}
	actual := decodeBody(body)
	if expected != nil {
		maxScore := ScoreBodyEquals
		if _, ok := expected.(patterns.Pattern); ok {
			maxScore = ScoreBodyPattern
		}
		misses := compareBody(expected, matchers, actual)
		result.add(FieldResult{
			Field:    fieldBody,
			Matched:  len(misses) == 0,
			MaxScore: maxScore,
			Expected: expected,
			Actual:   truncate(string(body), 200),
			Details:  mismatchDetails(misses),
		})
	}
	if len(matchers) > 0 {
		f := FieldResult{Field: fieldBodyMatchers, Matched: true}
		for _, bm := range matchers {
			misses := checkMatcher(bm, expected, actual)
			d := Detail{Key: bm.Path, Expected: bm.Match.Type.String(), Matched: len(misses) == 0}
			if len(misses) > 0 {
				d.Actual = misses[0].Reason
			}
			f.add(d, ScoreJSONPathCondition)
		}
		result.add(f)
	}
	return result
}

// MatchMethod checks the request method against the declared one. Literal
// methods compare case-insensitively.
func MatchMethod(expected any, actual string) bool {
	if s, ok := expected.(string); ok {
		return strings.EqualFold(s, actual)
	}
	matched, _ := MatchValue(expected, strings.ToUpper(actual))
	return matched
}

// matchEntry matches one named value against every actual value carrying
// that name; any of them may satisfy it.
func matchEntry(name string, expected any, values []string) Detail {
	d := Detail{Key: name, Expected: expected, Actual: missing}
	if len(values) == 0 {
		d.Matched = acceptsAbsent(expected)
		return d
	}
	d.Actual = values[0]
	for _, v := range values {
		if ok, _ := MatchValue(expected, v); ok {
			d.Matched = true
			d.Actual = v
			break
		}
	}
	return d
}

func (f *FieldResult) add(d Detail, score int) {
	f.Details = append(f.Details, d)
	f.MaxScore += score
	if d.Matched {
		f.Score += score
	} else {
		f.Matched = false
	}
}

func mismatchDetails(misses []Mismatch) []Detail {
	var out []Detail
	for _, m := range misses {
		out = append(out, Detail{Key: m.Path, Expected: m.Expected, Actual: m.Reason})
	}
	return out
}

// consumerSide returns the consumer-side projection of v.
func consumerSide(v any) any {
	return contract.Project(v, contract.ConsumerRole)
}

// truncate shortens s to at most n bytes for display.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Best returns the contract whose request matches r, or nil when none
// matches. Matches are ranked by explicit priority, lowest first, and then
// by score; remaining ties go to the earliest contract. A contract without a
// priority ranks after every contract that has one. Ignored and non-HTTP
// contracts are skipped.
func Best(contracts []*contract.Contract, r *http.Request, body []byte) (*contract.Contract, *Result) {
	var (
		best       *contract.Contract
		bestResult *Result
	)
	for _, c := range contracts {
		if c == nil || c.Ignored() || c.Request() == nil {
			continue
		}
		res := MatchRequest(c.Request(), r, body)
		if !res.Matched() {
			continue
		}
		if best == nil || ranksAbove(c.Priority(), res.Score, best.Priority(), bestResult.Score) {
			best, bestResult = c, res
		}
	}
	return best, bestResult
}

func ranksAbove(priority, score, bestPriority, bestScore int) bool {
	if priority != bestPriority {
		return outranks(priority, bestPriority)
	}
	return score > bestScore
}

// outranks reports whether priority a beats b. Zero means unset and loses
// to any explicit priority.
func outranks(a, b int) bool {
	switch {
	case a == 0:
		return false
	case b == 0:
		return true
	default:
		return a < b
	}
}

// NearMisses returns the results of contracts that did not match r, best
// first, limited to those reaching minPercentage of their possible score.
func NearMisses(contracts []*contract.Contract, r *http.Request, body []byte, minPercentage int) []NearMiss {
	var out []NearMiss
	for _, c := range contracts {
		if c == nil || c.Ignored() || c.Request() == nil {
			continue
		}
		res := MatchRequest(c.Request(), r, body)
		if res.Matched() || res.Percentage() < minPercentage {
			continue
		}
		out = append(out, NearMiss{Contract: c.Name(), Result: res, Reason: res.Reason()})
	}
	sortNearMisses(out)
	return out
}
