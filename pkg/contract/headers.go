package contract

import (
	"regexp"
	"slices"
	"strings"

	"github.com/getmockd/contractd/pkg/patterns"
)

// Common header names.
const (
	HeaderContentType          = "Content-Type"
	HeaderAccept               = "Accept"
	HeaderAuthorization        = "Authorization"
	HeaderMessagingContentType = "contentType"
)

// Common media types.
const (
	MediaApplicationJSON           = "application/json"
	MediaApplicationXML            = "application/xml"
	MediaApplicationOctetStream    = "application/octet-stream"
	MediaApplicationFormURLEncoded = "application/x-www-form-urlencoded"
	MediaMultipartFormData         = "multipart/form-data"
	MediaTextPlain                 = "text/plain"
	MediaTextXML                   = "text/xml"
	MediaTextHTML                  = "text/html"
)

// Header is a single named header value.
type Header struct {
	Name  string
	Value Property
}

// Headers is an ordered collection of headers. Iteration follows insertion
// order; equality ignores it. A name may occur more than once.
type Headers struct {
	entries []Header
}

// Entries returns the headers in insertion order.
func (h Headers) Entries() []Header { return slices.Clone(h.entries) }

func (h Headers) Len() int { return len(h.entries) }

// Get returns the first header named name, compared case-insensitively.
func (h Headers) Get(name string) (Property, bool) {
	for _, e := range h.entries {
		if strings.EqualFold(e.Name, name) {
			return e.Value, true
		}
	}
	return Property{}, false
}

// StubSideMap maps each header name to its consumer-side value. Repeated
// names map to a []any in insertion order.
func (h Headers) StubSideMap() map[string]any {
	return h.sideMap(ConsumerRole)
}

// TestSideMap maps each header name to its producer-side value.
func (h Headers) TestSideMap() map[string]any {
	return h.sideMap(ProducerRole)
}

// Equal reports whether both collections hold the same headers, in any order.
func (h Headers) Equal(o Headers) bool {
	return canonical(h) == canonical(o)
}

func (h Headers) sideMap(role Role) map[string]any {
	if len(h.entries) == 0 {
		return nil
	}
	out := make(map[string]any, len(h.entries))
	for _, e := range h.entries {
		v := project(e.Value, role)
		prev, seen := out[e.Name]
		if !seen {
			out[e.Name] = v
			continue
		}
		if list, ok := prev.([]any); ok {
			out[e.Name] = append(list, v)
		} else {
			out[e.Name] = []any{prev, v}
		}
	}
	return out
}

// HeadersBuilder collects headers for a request, response or message.
type HeadersBuilder struct {
	DSL
	role    Role
	field   string
	headers *Headers
}

// Header adds a header. v may be a literal, a pattern or a Property.
func (b *HeadersBuilder) Header(name string, v any) {
	p := b.property(b.field+"."+name, v, b.role)
	b.headers.entries = append(b.headers.entries, Header{Name: name, Value: p})
}

// ContentType adds a Content-Type header. A plain string is matched as a
// prefix on the declaring side, so "application/json" also accepts
// "application/json;charset=UTF-8".
func (b *HeadersBuilder) ContentType(v any) {
	b.Header(HeaderContentType, b.prefixMatching(v))
}

// MessagingContentType adds the content type header used by messaging contracts.
func (b *HeadersBuilder) MessagingContentType(v any) {
	b.Header(HeaderMessagingContentType, b.prefixMatching(v))
}

func (b *HeadersBuilder) Accept(v any) {
	b.Header(HeaderAccept, b.prefixMatching(v))
}

func (b *HeadersBuilder) Authorization(v any) {
	b.Header(HeaderAuthorization, v)
}

// Matching returns a property whose declaring side is a pattern accepting
// any value that starts with v while the other side is v itself.
func (b *HeadersBuilder) Matching(v string) Property {
	pat := patterns.MustCompile(regexp.QuoteMeta(v) + ".*")
	if b.role == ProducerRole {
		return NewProperty(v, pat)
	}
	return NewProperty(pat, v)
}

func (b *HeadersBuilder) prefixMatching(v any) any {
	if s, ok := v.(string); ok {
		return b.Matching(s)
	}
	return v
}
