package matching

import (
	"net/http"
	"strings"

	"github.com/getmockd/contractd/pkg/contract"
)

// Actual is a response received from the producer.
type Actual struct {
	Status int
	Header http.Header
	Body   []byte
}

// Message is a message received from the producer's destination.
type Message struct {
	Destination string
	Headers     map[string]any
	Body        []byte
}

// VerifyResponse checks an actual response against the producer-side values
// of resp and returns every mismatch. An empty result means the response
// satisfies the contract.
func VerifyResponse(resp *contract.Response, actual Actual) []Mismatch {
	if resp == nil {
		return nil
	}
	var out []Mismatch

	if s := resp.Status(); s != nil {
		expected := producerSide(*s)
		if ok, err := MatchValue(expected, actual.Status); !ok {
			out = append(out, valueMismatch("status", "", expected, actual.Status, err))
		}
	}

	for _, h := range resp.Headers().Entries() {
		if m, ok := verifyEntry("headers", h.Name, producerSide(h.Value), actual.Header.Values(h.Name)); !ok {
			out = append(out, m)
		}
	}

	if resp.Cookies().Len() > 0 {
		set := (&http.Response{Header: actual.Header}).Cookies()
		for _, c := range resp.Cookies().Entries() {
			var values []string
			for _, ck := range set {
				if ck.Name == c.Name {
					values = append(values, ck.Value)
				}
			}
			if m, ok := verifyEntry("cookies", c.Name, producerSide(c.Value), values); !ok {
				out = append(out, m)
			}
		}
	}

	expected := producerSide(resp.Body())
	if matchers := resp.BodyMatchers(); expected != nil || len(matchers) > 0 {
		out = append(out, verifyBody(expected, matchers, decodeBody(actual.Body))...)
	}
	return out
}

// VerifyOutputMessage checks a received message against the producer-side
// values of out, including its assertThat command, which is evaluated with
// $it bound to the decoded message body.
func VerifyOutputMessage(out *contract.OutputMessage, msg Message) []Mismatch {
	if out == nil {
		return nil
	}
	var misses []Mismatch

	if s := out.SentTo(); s != nil {
		expected := producerSide(*s)
		if ok, err := MatchValue(expected, msg.Destination); !ok {
			misses = append(misses, valueMismatch("sentTo", "", expected, msg.Destination, err))
		}
	}

	for _, h := range out.Headers().Entries() {
		var values []string
		if v, ok := lookupHeader(msg.Headers, h.Name); ok {
			values = []string{render(v)}
		}
		if m, ok := verifyEntry("headers", h.Name, producerSide(h.Value), values); !ok {
			misses = append(misses, m)
		}
	}

	actual := decodeBody(msg.Body)
	expected := producerSide(out.Body())
	if matchers := out.BodyMatchers(); expected != nil || len(matchers) > 0 {
		misses = append(misses, verifyBody(expected, matchers, actual)...)
	}

	if cmd := out.AssertThat(); cmd != nil {
		var it any = string(msg.Body)
		if actual.json {
			it = actual.tree
		}
		if ok, err := MatchValue(*cmd, it); !ok {
			misses = append(misses, valueMismatch("assertThat", "", *cmd, it, err))
		}
	}
	return misses
}

func verifyEntry(field, name string, expected any, values []string) (Mismatch, bool) {
	d := matchEntry(name, expected, values)
	if d.Matched {
		return Mismatch{}, true
	}
	if len(values) == 0 {
		return Mismatch{Field: field, Path: name, Expected: expected, Reason: "missing"}, false
	}
	return valueMismatch(field, name, expected, d.Actual, nil), false
}

func lookupHeader(headers map[string]any, name string) (any, bool) {
	if v, ok := headers[name]; ok {
		return v, true
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// producerSide returns the producer-side projection of v.
func producerSide(v any) any {
	return contract.Project(v, contract.ProducerRole)
}
