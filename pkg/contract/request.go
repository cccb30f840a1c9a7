package contract

import "slices"

// Request is the HTTP request side of a contract.
type Request struct {
	method       *Property
	url          *URL
	headers      Headers
	cookies      Cookies
	body         any
	bodyMatchers []BodyMatcher
}

// Method returns the declared method, or nil when none was declared.
func (r *Request) Method() *Property { return r.method }

// URL returns the declared URL, or nil when none was declared.
func (r *Request) URL() *URL { return r.url }

func (r *Request) Headers() Headers { return r.headers }
func (r *Request) Cookies() Cookies { return r.cookies }

// Body returns the normalized body tree, or nil.
func (r *Request) Body() any { return r.body }

func (r *Request) BodyMatchers() []BodyMatcher { return slices.Clone(r.bodyMatchers) }

// RequestBuilder declares the request of an HTTP contract. Pattern-like
// values are declared for the consumer side.
type RequestBuilder struct {
	DSL
	r *Request
}

// Method sets the HTTP method.
func (b *RequestBuilder) Method(v any) {
	p := b.property("request.method", v, ConsumerRole)
	b.r.method = &p
}

// URL sets the full request URL, query string included.
func (b *RequestBuilder) URL(v any) *URLBuilder {
	return b.setURL("request.url", v, false)
}

// URLPath sets the request path; query parameters are declared on the
// returned builder.
func (b *RequestBuilder) URLPath(v any) *URLBuilder {
	return b.setURL("request.urlPath", v, true)
}

func (b *RequestBuilder) setURL(field string, v any, path bool) *URLBuilder {
	b.r.url = &URL{value: b.property(field, v, ConsumerRole), path: path}
	return &URLBuilder{DSL: b.DSL, url: b.r.url}
}

func (b *RequestBuilder) Headers(fn func(*HeadersBuilder)) {
	fn(&HeadersBuilder{DSL: b.DSL, role: ConsumerRole, field: "request.headers", headers: &b.r.headers})
}

func (b *RequestBuilder) Cookies(fn func(*CookiesBuilder)) {
	fn(&CookiesBuilder{DSL: b.DSL, role: ConsumerRole, field: "request.cookies", cookies: &b.r.cookies})
}

// Body sets the request body: a map or slice tree, a scalar or raw text.
func (b *RequestBuilder) Body(v any) {
	b.r.body = b.body("request.body", v, ConsumerRole)
}

func (b *RequestBuilder) BodyMatchers(fn func(*BodyMatchersBuilder)) {
	fn(&BodyMatchersBuilder{DSL: b.DSL, field: "request.bodyMatchers", matchers: &b.r.bodyMatchers})
}
