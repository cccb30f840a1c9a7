package contract

import (
	"slices"
	"time"
)

// Response is the HTTP response side of a contract.
type Response struct {
	status       *Property
	headers      Headers
	cookies      Cookies
	body         any
	bodyMatchers []BodyMatcher
	async        bool
	delay        time.Duration
}

// Status returns the declared status, or nil when none was declared.
func (r *Response) Status() *Property { return r.status }

func (r *Response) Headers() Headers            { return r.headers }
func (r *Response) Cookies() Cookies            { return r.cookies }
func (r *Response) Body() any                   { return r.body }
func (r *Response) BodyMatchers() []BodyMatcher { return slices.Clone(r.bodyMatchers) }

// Async reports whether the response is produced asynchronously.
func (r *Response) Async() bool { return r.async }

// Delay is the fixed delay applied before the stub responds.
func (r *Response) Delay() time.Duration { return r.delay }

// ResponseBuilder declares the response of an HTTP contract. Pattern-like
// values are declared for the producer side.
type ResponseBuilder struct {
	DSL
	r *Response
}

// Status sets the status code, usually an int such as http.StatusOK.
func (b *ResponseBuilder) Status(v any) {
	p := b.property("response.status", v, ProducerRole)
	b.r.status = &p
}

func (b *ResponseBuilder) Headers(fn func(*HeadersBuilder)) {
	fn(&HeadersBuilder{DSL: b.DSL, role: ProducerRole, field: "response.headers", headers: &b.r.headers})
}

func (b *ResponseBuilder) Cookies(fn func(*CookiesBuilder)) {
	fn(&CookiesBuilder{DSL: b.DSL, role: ProducerRole, field: "response.cookies", cookies: &b.r.cookies})
}

func (b *ResponseBuilder) Body(v any) {
	b.r.body = b.body("response.body", v, ProducerRole)
}

func (b *ResponseBuilder) BodyMatchers(fn func(*BodyMatchersBuilder)) {
	fn(&BodyMatchersBuilder{DSL: b.DSL, field: "response.bodyMatchers", matchers: &b.r.bodyMatchers})
}

// Async marks the response as asynchronous.
func (b *ResponseBuilder) Async() { b.r.async = true }

// FixedDelayMilliseconds delays the stub response by ms milliseconds.
func (b *ResponseBuilder) FixedDelayMilliseconds(ms int) {
	if ms < 0 {
		b.fail(&ValidationError{Field: "response.fixedDelayMilliseconds", Message: "delay must not be negative"})
		return
	}
	b.r.delay = time.Duration(ms) * time.Millisecond
}
