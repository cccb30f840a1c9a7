package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/contractd/pkg/patterns"
)

func newTestCookies() Cookies {
	return NewCookies(
		Cookie{Name: "foo", Value: NewProperty("client", "server")},
		Cookie{Name: "bar", Value: NewProperty("client", "server")},
	)
}

func TestCookies_StubSideMap(t *testing.T) {
	m := newTestCookies().StubSideMap()
	assert.Equal(t, map[string]any{"foo": "client", "bar": "client"}, m)
}

func TestCookies_TestSideMap(t *testing.T) {
	m := newTestCookies().TestSideMap()
	assert.Equal(t, map[string]any{"foo": "server", "bar": "server"}, m)
}

func TestCookies_IterationAndEquality(t *testing.T) {
	a := newTestCookies()
	b := NewCookies(
		Cookie{Name: "bar", Value: NewProperty("client", "server")},
		Cookie{Name: "foo", Value: NewProperty("client", "server")},
	)

	assert.True(t, a.Equal(b), "order does not matter for equality")
	assert.Equal(t, "foo", a.Entries()[0].Name, "iteration follows insertion order")
	assert.Equal(t, []string{"bar", "foo"}, a.Names())

	p, ok := a.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "server", p.Producer())

	_, ok = a.Get("missing")
	assert.False(t, ok)
}

func TestCookiesBuilder(t *testing.T) {
	c, err := Make(func(b *Builder) {
		b.Response(func(r *ResponseBuilder) {
			r.Cookies(func(c *CookiesBuilder) {
				c.Cookie("session", r.Value(r.C("abc"), r.P(patterns.NonBlank())))
				c.CookieMap(map[string]any{"theme": "dark", "lang": "en"})
			})
		})
	}, WithSeed(1))
	require.NoError(t, err)

	cookies := c.Response().Cookies()
	require.Equal(t, 3, cookies.Len())
	names := []string{}
	for _, e := range cookies.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"session", "lang", "theme"}, names)
	assert.Equal(t, "abc", cookies.StubSideMap()["session"])
	assert.Equal(t, patterns.NonBlank(), cookies.TestSideMap()["session"])
}

func TestHeaders_DuplicateNamesAndLookup(t *testing.T) {
	c, err := Make(func(b *Builder) {
		b.Request(func(r *RequestBuilder) {
			r.Headers(func(h *HeadersBuilder) {
				h.Header("X-Tag", "a")
				h.Header("X-Tag", "b")
				h.Header("X-Tag", "c")
				h.ContentType(MediaApplicationJSON)
			})
		})
	})
	require.NoError(t, err)

	headers := c.Request().Headers()
	assert.Equal(t, 4, headers.Len())
	assert.Equal(t, []any{"a", "b", "c"}, headers.TestSideMap()["X-Tag"])

	ct, ok := headers.Get("content-type")
	require.True(t, ok)
	assert.Equal(t, MediaApplicationJSON, ct.Producer())
	pat, ok := ct.Consumer().(patterns.Pattern)
	require.True(t, ok)
	assert.True(t, pat.Matches("application/json;charset=UTF-8"))
	assert.False(t, pat.Matches("text/plain"))
}

func TestHeaders_ResponseContentTypeIsPatternOnProducerSide(t *testing.T) {
	c, err := Make(func(b *Builder) {
		b.Response(func(r *ResponseBuilder) {
			r.Headers(func(h *HeadersBuilder) {
				h.ContentType(MediaTextPlain)
				h.Accept(MediaApplicationJSON)
				h.Authorization("Bearer token")
			})
		})
	})
	require.NoError(t, err)

	ct, ok := c.Response().Headers().Get(HeaderContentType)
	require.True(t, ok)
	assert.Equal(t, MediaTextPlain, ct.Consumer())
	assert.IsType(t, patterns.Pattern{}, ct.Producer())

	auth, ok := c.Response().Headers().Get(HeaderAuthorization)
	require.True(t, ok)
	assert.True(t, auth.IsSingleValue())
}
