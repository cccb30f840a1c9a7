package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/getmockd/contractd/internal/bodypath"
	"github.com/getmockd/contractd/pkg/contract"
	"github.com/getmockd/contractd/pkg/patterns"
)

// Contract converts the document into a validated contract.
func (f *File) Contract(opts ...contract.Option) (*contract.Contract, error) {
	var errs []error
	c, err := contract.Make(func(b *contract.Builder) {
		cv := &converter{errs: &errs}
		cv.build(b, f)
	}, opts...)
	if err := errors.Join(append(errs, err)...); err != nil {
		return nil, err
	}
	if err := contract.Assert(c); err != nil {
		return nil, err
	}
	return c, nil
}

// converter maps file sections onto the contract builders.
type converter struct {
	errs *[]error
}

func (cv *converter) fail(field string, err error) {
	*cv.errs = append(*cv.errs, &contract.ValidationError{Field: field, Message: err.Error(), Err: err})
}

func (cv *converter) build(b *contract.Builder, f *File) {
	b.Description(f.Description)
	b.Name(f.Name)
	if f.Ignored {
		b.Ignored()
	}
	if f.InProgress {
		b.InProgress()
	}
	b.Priority(f.Priority)
	b.Label(f.Label)

	if req := f.Request; req != nil {
		b.Request(func(r *contract.RequestBuilder) { cv.request(r, req) })
	}
	if resp := f.Response; resp != nil {
		b.Response(func(r *contract.ResponseBuilder) { cv.response(r, resp) })
	}
	if in := f.Input; in != nil {
		b.Input(func(ib *contract.InputBuilder) { cv.input(ib, in) })
	}
	if out := f.OutputMessage; out != nil {
		b.OutputMessage(func(ob *contract.OutputMessageBuilder) { cv.output(ob, out) })
	}
}

func (cv *converter) request(r *contract.RequestBuilder, req *RequestFile) {
	m := req.Matchers
	if m == nil {
		m = &RequestMatchers{}
	}

	if req.Method != "" {
		r.Method(req.Method)
	}

	var url *contract.URLBuilder
	switch {
	case req.URL != "" || (m.URL != nil && req.URLPath == ""):
		url = r.URL(cv.value(r.DSL, "request.url", req.URL, m.URL, contract.ConsumerRole))
	case req.URLPath != "":
		url = r.URLPath(cv.value(r.DSL, "request.urlPath", req.URLPath, m.URL, contract.ConsumerRole))
	}
	if len(req.QueryParameters) > 0 || len(m.QueryParameters) > 0 {
		if url == nil {
			cv.fail("request.queryParameters", errors.New("query parameters need a url or urlPath"))
		} else {
			url.QueryParameters(func(q *contract.QueryParametersBuilder) {
				cv.entries(q.DSL, "request.queryParameters", req.QueryParameters, m.QueryParameters, contract.ConsumerRole, q.Parameter)
			})
		}
	}

	if len(req.Headers) > 0 || len(m.Headers) > 0 {
		r.Headers(func(h *contract.HeadersBuilder) {
			cv.entries(h.DSL, "request.headers", req.Headers, m.Headers, contract.ConsumerRole, h.Header)
		})
	}
	if len(req.Cookies) > 0 || len(m.Cookies) > 0 {
		r.Cookies(func(c *contract.CookiesBuilder) {
			cv.entries(c.DSL, "request.cookies", req.Cookies, m.Cookies, contract.ConsumerRole, c.Cookie)
		})
	}
	if req.Body != nil {
		r.Body(req.Body)
	}
	if len(m.Body) > 0 {
		r.BodyMatchers(func(bm *contract.BodyMatchersBuilder) { cv.bodyMatchers(bm, "request.matchers.body", m.Body) })
	}
}

func (cv *converter) response(r *contract.ResponseBuilder, resp *ResponseFile) {
	m := resp.Matchers
	if m == nil {
		m = &ResponseMatchers{}
	}

	if resp.Status != 0 {
		r.Status(resp.Status)
	}
	if len(resp.Headers) > 0 || len(m.Headers) > 0 {
		r.Headers(func(h *contract.HeadersBuilder) {
			cv.entries(h.DSL, "response.headers", resp.Headers, m.Headers, contract.ProducerRole, h.Header)
		})
	}
	if len(resp.Cookies) > 0 || len(m.Cookies) > 0 {
		r.Cookies(func(c *contract.CookiesBuilder) {
			cv.entries(c.DSL, "response.cookies", resp.Cookies, m.Cookies, contract.ProducerRole, c.Cookie)
		})
	}
	if resp.Body != nil {
		r.Body(resp.Body)
	}
	if len(m.Body) > 0 {
		r.BodyMatchers(func(bm *contract.BodyMatchersBuilder) { cv.bodyMatchers(bm, "response.matchers.body", m.Body) })
	}
	if resp.Async {
		r.Async()
	}
	if resp.FixedDelayMilliseconds != 0 {
		r.FixedDelayMilliseconds(resp.FixedDelayMilliseconds)
	}
}

func (cv *converter) input(ib *contract.InputBuilder, in *InputFile) {
	m := in.Matchers
	if m == nil {
		m = &MessageMatchers{}
	}
	if in.TriggeredBy != "" {
		ib.TriggeredBy(in.TriggeredBy)
	}
	if in.MessageFrom != "" {
		ib.MessageFrom(in.MessageFrom)
	}
	if len(in.MessageHeaders) > 0 || len(m.Headers) > 0 {
		ib.MessageHeaders(func(h *contract.HeadersBuilder) {
			cv.entries(h.DSL, "input.messageHeaders", in.MessageHeaders, m.Headers, contract.ConsumerRole, h.Header)
		})
	}
	if in.MessageBody != nil {
		ib.MessageBody(in.MessageBody)
	}
	if in.AssertThat != "" {
		ib.AssertThat(in.AssertThat)
	}
	if len(m.Body) > 0 {
		ib.BodyMatchers(func(bm *contract.BodyMatchersBuilder) { cv.bodyMatchers(bm, "input.matchers.body", m.Body) })
	}
}

func (cv *converter) output(ob *contract.OutputMessageBuilder, out *OutputMessageFile) {
	m := out.Matchers
	if m == nil {
		m = &MessageMatchers{}
	}
	if out.SentTo != "" {
		ob.SentTo(out.SentTo)
	}
	if len(out.Headers) > 0 || len(m.Headers) > 0 {
		ob.Headers(func(h *contract.HeadersBuilder) {
			cv.entries(h.DSL, "outputMessage.headers", out.Headers, m.Headers, contract.ProducerRole, h.Header)
		})
	}
	if out.Body != nil {
		ob.Body(out.Body)
	}
	if out.AssertThat != "" {
		ob.AssertThat(out.AssertThat)
	}
	if len(m.Body) > 0 {
		ob.BodyMatchers(func(bm *contract.BodyMatchersBuilder) { cv.bodyMatchers(bm, "outputMessage.matchers.body", m.Body) })
	}
}

// entries adds the named literals and matchers in key order. A key with a
// matcher gets the matcher on role's side and the literal, if any, on the
// other side.
func (cv *converter) entries(d contract.DSL, field string, literals map[string]any, matchers []KeyMatcher, role contract.Role, add func(string, any)) {
	byKey := make(map[string]*ValueMatcher, len(matchers))
	keys := make([]string, 0, len(literals)+len(matchers))
	for k := range literals {
		keys = append(keys, k)
	}
	for i := range matchers {
		k := matchers[i].Key
		if _, dup := byKey[k]; dup {
			cv.fail(field+"."+k, errors.New("duplicate matcher"))
			continue
		}
		byKey[k] = &matchers[i].ValueMatcher
		if _, ok := literals[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		lit, ok := literals[k]
		if !ok {
			lit = nil
		}
		for _, v := range expand(lit) {
			add(k, cv.value(d, field+"."+k, v, byKey[k], role))
		}
	}
}

// expand flattens a list literal into repeated entries.
func expand(v any) []any {
	if list, ok := v.([]any); ok && len(list) > 0 {
		return list
	}
	return []any{v}
}

// value combines a literal with an optional matcher. Without a matcher the
// literal is used for both sides.
func (cv *converter) value(d contract.DSL, field string, literal any, m *ValueMatcher, role contract.Role) any {
	if s, ok := literal.(string); ok && s == "" {
		literal = nil
	}
	if m == nil {
		return literal
	}

	var matcher any
	switch {
	case m.Command != "":
		if role != contract.ProducerRole {
			cv.fail(field, errors.New("commands are only allowed on the producer side"))
			return literal
		}
		matcher = contract.Execute(m.Command)
	default:
		p, err := pattern(m.Regex, m.Predefined)
		if err != nil {
			cv.fail(field, err)
			return literal
		}
		matcher = p
	}

	var sides []contract.Side
	if role == contract.ConsumerRole {
		sides = append(sides, contract.Consumer(matcher))
		if literal != nil {
			sides = append(sides, contract.Producer(literal))
		}
	} else {
		sides = append(sides, contract.Producer(matcher))
		if literal != nil {
			sides = append(sides, contract.Consumer(literal))
		}
	}
	if _, isCmd := matcher.(contract.ExecutionProperty); isCmd && literal == nil {
		cv.fail(field, errors.New("a command matcher needs a value for the other side"))
		return nil
	}
	return d.Value(sides...)
}

func (cv *converter) bodyMatchers(b *contract.BodyMatchersBuilder, field string, matchers []BodyMatcher) {
	for _, bm := range matchers {
		mf := fmt.Sprintf("%s[%s]", field, bm.Path)
		m, err := matchingValue(bm)
		if err != nil {
			cv.fail(mf, err)
			continue
		}
		if bodypath.IsXPath(bm.Path) {
			b.XPath(bm.Path, m)
		} else {
			b.JSONPath(bm.Path, m)
		}
	}
}

func matchingValue(bm BodyMatcher) (contract.MatchingTypeValue, error) {
	t := contract.RegexMatch
	if bm.Type != "" {
		parsed, err := contract.ParseMatchingType(bm.Type)
		if err != nil {
			return contract.MatchingTypeValue{}, err
		}
		t = parsed
	}

	switch t {
	case contract.RegexMatch:
		p, err := pattern(bm.Value, bm.Predefined)
		if err != nil {
			return contract.MatchingTypeValue{}, err
		}
		return contract.ByRegex(p), nil
	case contract.DateMatch:
		return contract.ByDate(), nil
	case contract.TimeMatch:
		return contract.ByTime(), nil
	case contract.TimestampMatch:
		return contract.ByTimestamp(), nil
	case contract.EqualityMatch:
		return contract.ByEquality(), nil
	case contract.CommandMatch:
		if bm.Value == "" {
			return contract.MatchingTypeValue{}, errors.New("by_command needs a value")
		}
		return contract.ByCommand(bm.Value), nil
	default:
		var opts []contract.TypeOption
		if bm.MinOccurrence != nil {
			opts = append(opts, contract.MinOccurrence(*bm.MinOccurrence))
		}
		if bm.MaxOccurrence != nil {
			opts = append(opts, contract.MaxOccurrence(*bm.MaxOccurrence))
		}
		return contract.ByType(opts...), nil
	}
}

// pattern resolves a regex or a predefined pattern name.
func pattern(regex, predefined string) (patterns.Pattern, error) {
	switch {
	case regex != "" && predefined != "":
		return patterns.Pattern{}, errors.New("set either regex or predefined, not both")
	case predefined != "":
		p, ok := patterns.Predefined(predefined)
		if !ok {
			return patterns.Pattern{}, fmt.Errorf("unknown predefined pattern %q", predefined)
		}
		return p, nil
	case regex != "":
		return patterns.Compile(regex)
	default:
		return patterns.Pattern{}, errors.New("matcher needs a regex, predefined or command")
	}
}
