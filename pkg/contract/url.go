package contract

import "slices"

// QueryParameter is a single named query parameter value.
type QueryParameter struct {
	Name  string
	Value Property
}

// URL is the request target. With IsPath set the value is matched against
// the path only and query parameters are declared separately.
type URL struct {
	value Property
	path  bool
	query []QueryParameter
}

func (u *URL) Value() Property { return u.value }

// IsPath reports whether the URL was declared with URLPath.
func (u *URL) IsPath() bool { return u.path }

// QueryParameters returns the declared query parameters in order.
func (u *URL) QueryParameters() []QueryParameter { return slices.Clone(u.query) }

// URLBuilder configures a declared URL.
type URLBuilder struct {
	DSL
	url *URL
}

// QueryParameters declares the URL's query parameters.
func (b *URLBuilder) QueryParameters(fn func(*QueryParametersBuilder)) *URLBuilder {
	fn(&QueryParametersBuilder{DSL: b.DSL, url: b.url})
	return b
}

// QueryParametersBuilder collects query parameters.
type QueryParametersBuilder struct {
	DSL
	url *URL
}

// Parameter adds a query parameter. v may be a literal, a pattern or a Property.
func (b *QueryParametersBuilder) Parameter(name string, v any) {
	p := b.property("request.url.queryParameters."+name, v, ConsumerRole)
	b.url.query = append(b.url.query, QueryParameter{Name: name, Value: p})
}
