package contract

import "strings"

// StubSide returns the contract as the consumer sees it: every property is
// replaced by its consumer-side value. Patterns stay patterns.Pattern and
// commands stay ExecutionProperty; both marshal to JSON objects.
func (c *Contract) StubSide() map[string]any {
	return c.side(ConsumerRole)
}

// TestSide returns the contract as the producer sees it.
func (c *Contract) TestSide() map[string]any {
	return c.side(ProducerRole)
}

func (c *Contract) side(role Role) map[string]any {
	out := map[string]any{}
	putString(out, "name", c.name)
	putString(out, "description", c.description)
	putString(out, "label", c.label)
	if c.ignored {
		out["ignored"] = true
	}
	if c.inProgress {
		out["inProgress"] = true
	}
	if c.priority != 0 {
		out["priority"] = c.priority
	}
	if c.request != nil {
		out["request"] = c.request.side(role)
	}
	if c.response != nil {
		out["response"] = c.response.side(role)
	}
	if c.input != nil {
		out["input"] = c.input.side(role)
	}
	if c.output != nil {
		out["outputMessage"] = c.output.side(role)
	}
	return out
}

func (r *Request) side(role Role) map[string]any {
	out := map[string]any{}
	if r.method != nil {
		out["method"] = project(*r.method, role)
	}
	if u := r.url; u != nil {
		key := "url"
		if u.path {
			key = "urlPath"
		}
		out[key] = project(u.value, role)
		if len(u.query) > 0 {
			query := make(map[string]any, len(u.query))
			for _, q := range u.query {
				query[q.Name] = project(q.Value, role)
			}
			out["queryParameters"] = query
		}
	}
	putMap(out, "headers", r.headers.sideMap(role))
	putMap(out, "cookies", r.cookies.sideMap(role))
	if r.body != nil {
		out["body"] = project(r.body, role)
	}
	putMatchers(out, r.bodyMatchers)
	return out
}

func (r *Response) side(role Role) map[string]any {
	out := map[string]any{}
	if r.status != nil {
		out["status"] = project(*r.status, role)
	}
	putMap(out, "headers", r.headers.sideMap(role))
	putMap(out, "cookies", r.cookies.sideMap(role))
	if r.body != nil {
		out["body"] = project(r.body, role)
	}
	putMatchers(out, r.bodyMatchers)
	if r.async {
		out["async"] = true
	}
	if r.delay > 0 {
		out["fixedDelayMilliseconds"] = r.delay.Milliseconds()
	}
	return out
}

func (in *Input) side(role Role) map[string]any {
	out := map[string]any{}
	putString(out, "triggeredBy", in.triggeredBy)
	if in.messageFrom != nil {
		out["messageFrom"] = project(*in.messageFrom, role)
	}
	putMap(out, "messageHeaders", in.headers.sideMap(role))
	if in.body != nil {
		out["messageBody"] = project(in.body, role)
	}
	if in.assertThat != nil {
		out["assertThat"] = *in.assertThat
	}
	putMatchers(out, in.bodyMatchers)
	return out
}

func (o *OutputMessage) side(role Role) map[string]any {
	out := map[string]any{}
	if o.sentTo != nil {
		out["sentTo"] = project(*o.sentTo, role)
	}
	putMap(out, "headers", o.headers.sideMap(role))
	if o.body != nil {
		out["body"] = project(o.body, role)
	}
	if o.assertThat != nil {
		out["assertThat"] = *o.assertThat
	}
	putMatchers(out, o.bodyMatchers)
	return out
}

// Project replaces every property in v by its value for role. Regex and
// optional properties become their patterns.
func Project(v any, role Role) any { return project(v, role) }

func project(v any, role Role) any {
	switch x := v.(type) {
	case Property:
		return project(x.Side(role), role)
	case RegexProperty:
		return x.pattern
	case OptionalProperty:
		return x.optional
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = project(e, role)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = project(e, role)
		}
		return out
	default:
		if c, ok := collection(v); ok {
			return project(c, role)
		}
		return v
	}
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func putMap(m map[string]any, key string, v map[string]any) {
	if len(v) > 0 {
		m[key] = v
	}
}

func putMatchers(m map[string]any, matchers []BodyMatcher) {
	if len(matchers) == 0 {
		return
	}
	list := make([]any, len(matchers))
	for i, bm := range matchers {
		entry := map[string]any{
			"path": bm.Path,
			"type": "by_" + strings.ToLower(bm.Match.Type.String()),
		}
		if bm.Match.Value != nil {
			entry["value"] = bm.Match.Value
		}
		if bm.Match.MinTypeOccurrence != nil {
			entry["minOccurrence"] = *bm.Match.MinTypeOccurrence
		}
		if bm.Match.MaxTypeOccurrence != nil {
			entry["maxOccurrence"] = *bm.Match.MaxTypeOccurrence
		}
		list[i] = entry
	}
	m["matchers"] = list
}
