package contract

import (
	"errors"
	mathrand "math/rand/v2"

	"github.com/cespare/xxhash/v2"

	"github.com/getmockd/contractd/internal/regexgen"
)

// Contract is an agreement between a consumer and a producer about either an
// HTTP request/response pair or a messaging input/output pair.
//
// Contracts are immutable once Make returns and may be shared freely.
type Contract struct {
	description string
	name        string
	ignored     bool
	inProgress  bool
	priority    int
	label       string

	request  *Request
	response *Response
	input    *Input
	output   *OutputMessage
}

func (c *Contract) Description() string { return c.description }
func (c *Contract) Name() string        { return c.name }
func (c *Contract) Ignored() bool       { return c.ignored }
func (c *Contract) InProgress() bool    { return c.inProgress }

// Priority orders stubs matching the same request; lower wins, 0 is unset.
func (c *Contract) Priority() int { return c.priority }

// Label identifies a messaging contract to trigger it by name.
func (c *Contract) Label() string { return c.label }

func (c *Contract) Request() *Request             { return c.request }
func (c *Contract) Response() *Response           { return c.response }
func (c *Contract) Input() *Input                 { return c.input }
func (c *Contract) OutputMessage() *OutputMessage { return c.output }

// IsHTTP reports whether a request or response was declared.
func (c *Contract) IsHTTP() bool { return c.request != nil || c.response != nil }

// IsMessaging reports whether an input or output message was declared.
func (c *Contract) IsMessaging() bool { return c.input != nil || c.output != nil }

// Equal reports whether both contracts declare the same tree. Header and
// cookie order is ignored.
func (c *Contract) Equal(o *Contract) bool {
	if c == nil || o == nil {
		return c == o
	}
	return canonical(c) == canonical(o)
}

// Hash returns a hash consistent with Equal.
func (c *Contract) Hash() uint64 {
	return xxhash.Sum64String(canonical(c))
}

// Option configures Make.
type Option func(*options)

type options struct {
	gen *regexgen.Generator
}

// WithRand draws generated examples from r. r must not be used concurrently
// while Make runs.
func WithRand(r *mathrand.Rand) Option {
	return func(o *options) { o.gen = regexgen.New(r) }
}

// WithSeed makes generated examples repeatable.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.gen = regexgen.NewSeeded(seed) }
}

// Builder declares a contract.
type Builder struct {
	DSL
	c *Contract
}

func (b *Builder) Description(s string) { b.c.description = s }
func (b *Builder) Name(s string)        { b.c.name = s }
func (b *Builder) Ignored()             { b.c.ignored = true }
func (b *Builder) InProgress()          { b.c.inProgress = true }
func (b *Builder) Priority(n int)       { b.c.priority = n }
func (b *Builder) Label(s string)       { b.c.label = s }

func (b *Builder) Request(fn func(*RequestBuilder)) {
	if b.c.request == nil {
		b.c.request = &Request{}
	}
	fn(&RequestBuilder{DSL: b.DSL, r: b.c.request})
}

func (b *Builder) Response(fn func(*ResponseBuilder)) {
	if b.c.response == nil {
		b.c.response = &Response{}
	}
	fn(&ResponseBuilder{DSL: b.DSL, r: b.c.response})
}

func (b *Builder) Input(fn func(*InputBuilder)) {
	if b.c.input == nil {
		b.c.input = &Input{}
	}
	fn(&InputBuilder{DSL: b.DSL, in: b.c.input})
}

func (b *Builder) OutputMessage(fn func(*OutputMessageBuilder)) {
	if b.c.output == nil {
		b.c.output = &OutputMessage{}
	}
	fn(&OutputMessageBuilder{DSL: b.DSL, out: b.c.output})
}

// Make runs fn against a fresh Builder and validates every declared value:
// patterns must compile and concrete values must satisfy the patterns they
// are paired with, in properties and in regex-related body matchers.
//
// Make does not require the fields a usable contract needs; run Assert, or
// use MakeValid, before handing the contract on.
func Make(fn func(*Builder), opts ...Option) (*Contract, error) {
	o := options{gen: regexgen.Default}
	for _, opt := range opts {
		opt(&o)
	}

	var errs []error
	b := &Builder{DSL: DSL{gen: o.gen, errs: &errs}, c: &Contract{}}
	fn(b)

	errs = append(errs, validateValues(b.c)...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b.c, nil
}

// MakeValid is Make followed by Assert.
func MakeValid(fn func(*Builder), opts ...Option) (*Contract, error) {
	c, err := Make(fn, opts...)
	if err != nil {
		return nil, err
	}
	if err := Assert(c); err != nil {
		return nil, err
	}
	return c, nil
}
