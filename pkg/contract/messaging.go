package contract

import "slices"

// Input is what triggers a messaging contract: either a method called on
// the producer or a message received from a destination.
type Input struct {
	triggeredBy  string
	messageFrom  *Property
	headers      Headers
	body         any
	assertThat   *ExecutionProperty
	bodyMatchers []BodyMatcher
}

// TriggeredBy returns the method that triggers the output message.
func (in *Input) TriggeredBy() string { return in.triggeredBy }

// MessageFrom returns the destination the input message arrives on, or nil.
func (in *Input) MessageFrom() *Property { return in.messageFrom }

func (in *Input) MessageHeaders() Headers     { return in.headers }
func (in *Input) MessageBody() any            { return in.body }
func (in *Input) BodyMatchers() []BodyMatcher { return slices.Clone(in.bodyMatchers) }

// AssertThat returns the command run after the input was handled, or nil.
func (in *Input) AssertThat() *ExecutionProperty { return in.assertThat }

// OutputMessage is the message a producer sends.
type OutputMessage struct {
	sentTo       *Property
	headers      Headers
	body         any
	assertThat   *ExecutionProperty
	bodyMatchers []BodyMatcher
}

// SentTo returns the destination, or nil when none was declared.
func (o *OutputMessage) SentTo() *Property { return o.sentTo }

func (o *OutputMessage) Headers() Headers               { return o.headers }
func (o *OutputMessage) Body() any                      { return o.body }
func (o *OutputMessage) BodyMatchers() []BodyMatcher    { return slices.Clone(o.bodyMatchers) }
func (o *OutputMessage) AssertThat() *ExecutionProperty { return o.assertThat }

// InputBuilder declares the input of a messaging contract.
type InputBuilder struct {
	DSL
	in *Input
}

func (b *InputBuilder) TriggeredBy(method string) { b.in.triggeredBy = method }

func (b *InputBuilder) MessageFrom(v any) {
	p := b.property("input.messageFrom", v, ConsumerRole)
	b.in.messageFrom = &p
}

func (b *InputBuilder) MessageHeaders(fn func(*HeadersBuilder)) {
	fn(&HeadersBuilder{DSL: b.DSL, role: ConsumerRole, field: "input.messageHeaders", headers: &b.in.headers})
}

func (b *InputBuilder) MessageBody(v any) {
	b.in.body = b.body("input.messageBody", v, ConsumerRole)
}

func (b *InputBuilder) AssertThat(command string) {
	e := Execute(command)
	b.in.assertThat = &e
}

func (b *InputBuilder) BodyMatchers(fn func(*BodyMatchersBuilder)) {
	fn(&BodyMatchersBuilder{DSL: b.DSL, field: "input.bodyMatchers", matchers: &b.in.bodyMatchers})
}

// OutputMessageBuilder declares the message a producer sends.
type OutputMessageBuilder struct {
	DSL
	out *OutputMessage
}

func (b *OutputMessageBuilder) SentTo(v any) {
	p := b.property("outputMessage.sentTo", v, ProducerRole)
	b.out.sentTo = &p
}

func (b *OutputMessageBuilder) Headers(fn func(*HeadersBuilder)) {
	fn(&HeadersBuilder{DSL: b.DSL, role: ProducerRole, field: "outputMessage.headers", headers: &b.out.headers})
}

func (b *OutputMessageBuilder) Body(v any) {
	b.out.body = b.body("outputMessage.body", v, ProducerRole)
}

func (b *OutputMessageBuilder) AssertThat(command string) {
	e := Execute(command)
	b.out.assertThat = &e
}

func (b *OutputMessageBuilder) BodyMatchers(fn func(*BodyMatchersBuilder)) {
	fn(&BodyMatchersBuilder{DSL: b.DSL, field: "outputMessage.bodyMatchers", matchers: &b.out.bodyMatchers})
}
