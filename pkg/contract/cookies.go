package contract

import (
	"slices"
	"sort"
)

// Cookie is a single named cookie value.
type Cookie struct {
	Name  string
	Value Property
}

// Cookies is an ordered collection of cookies. Iteration follows insertion
// order; equality ignores it.
type Cookies struct {
	entries []Cookie
}

// NewCookies returns a collection holding the given cookies in order.
func NewCookies(cookies ...Cookie) Cookies {
	return Cookies{entries: slices.Clone(cookies)}
}

// Entries returns the cookies in insertion order.
func (c Cookies) Entries() []Cookie { return slices.Clone(c.entries) }

func (c Cookies) Len() int { return len(c.entries) }

// Get returns the last cookie named name.
func (c Cookies) Get(name string) (Property, bool) {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].Name == name {
			return c.entries[i].Value, true
		}
	}
	return Property{}, false
}

// Names returns the cookie names, sorted.
func (c Cookies) Names() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		if !slices.Contains(names, e.Name) {
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names
}

// StubSideMap maps each cookie name to its consumer-side value.
func (c Cookies) StubSideMap() map[string]any {
	return c.sideMap(ConsumerRole)
}

// TestSideMap maps each cookie name to its producer-side value.
func (c Cookies) TestSideMap() map[string]any {
	return c.sideMap(ProducerRole)
}

// Equal reports whether both collections hold the same cookies, in any order.
func (c Cookies) Equal(o Cookies) bool {
	return canonical(c) == canonical(o)
}

func (c Cookies) sideMap(role Role) map[string]any {
	out := make(map[string]any, len(c.entries))
	for _, e := range c.entries {
		out[e.Name] = project(e.Value, role)
	}
	return out
}

// CookiesBuilder collects cookies for a request or response.
type CookiesBuilder struct {
	DSL
	role    Role
	field   string
	cookies *Cookies
}

// Cookie adds a cookie. v may be a literal, a pattern or a Property.
func (b *CookiesBuilder) Cookie(name string, v any) {
	p := b.property(b.field+"."+name, v, b.role)
	b.cookies.entries = append(b.cookies.entries, Cookie{Name: name, Value: p})
}

// CookieMap adds every cookie in m, in name order.
func (b *CookiesBuilder) CookieMap(m map[string]any) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.Cookie(name, m[name])
	}
}
