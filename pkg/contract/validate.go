package contract

import (
	"errors"
	"fmt"
	"sort"

	"github.com/getmockd/contractd/internal/bodypath"
)

// Assert checks that c declares everything a stub or a test needs.
func Assert(c *Contract) error {
	if c == nil {
		return missing("contract", "Contract is missing")
	}

	var errs []error
	switch {
	case c.IsHTTP() && c.IsMessaging():
		errs = append(errs, &ValidationError{
			Field:   "contract",
			Message: "Contract declares both an HTTP and a messaging interaction",
		})
	case !c.IsHTTP() && !c.IsMessaging():
		errs = append(errs, missing("contract", "Contract declares neither an HTTP nor a messaging interaction"))
	case c.IsHTTP():
		errs = append(errs, assertHTTP(c)...)
	default:
		errs = append(errs, assertMessaging(c)...)
	}
	return errors.Join(errs...)
}

func assertHTTP(c *Contract) []error {
	var errs []error
	if c.request == nil {
		errs = append(errs, missing("request", "Request is missing for HTTP contract"))
	} else {
		if c.request.method == nil {
			errs = append(errs, missing("request.method", "Method is missing for HTTP contract"))
		}
		if c.request.url == nil {
			errs = append(errs, missing("request.url", "URL is missing for HTTP contract"))
		}
	}
	if c.response == nil {
		errs = append(errs, missing("response", "Response is missing for HTTP contract"))
	} else if c.response.status == nil {
		errs = append(errs, missing("response.status", "Status is missing for HTTP contract"))
	}
	return errs
}

func assertMessaging(c *Contract) []error {
	var errs []error
	if c.input != nil && c.input.triggeredBy == "" && c.input.messageFrom == nil {
		errs = append(errs, missing("input", "Input is missing trigger or destination for messaging contract"))
	}
	if c.output != nil && c.output.sentTo == nil {
		errs = append(errs, missing("outputMessage.sentTo", "Destination is missing for output message"))
	}
	return errs
}

// validateValues checks every property and regex-related body matcher in c.
func validateValues(c *Contract) []error {
	v := &valueValidator{}

	if r := c.request; r != nil {
		v.optional("request.method", r.method)
		if r.url != nil {
			v.property("request.url", r.url.value)
			for _, q := range r.url.query {
				v.property("request.url.queryParameters."+q.Name, q.Value)
			}
		}
		v.headers("request.headers", r.headers)
		v.cookies("request.cookies", r.cookies)
		v.body("request.body", r.body)
		v.matchers("request.bodyMatchers", r.bodyMatchers, r.body, ProducerRole)
	}
	if r := c.response; r != nil {
		v.optional("response.status", r.status)
		v.headers("response.headers", r.headers)
		v.cookies("response.cookies", r.cookies)
		v.body("response.body", r.body)
		v.matchers("response.bodyMatchers", r.bodyMatchers, r.body, ConsumerRole)
	}
	if in := c.input; in != nil {
		v.optional("input.messageFrom", in.messageFrom)
		v.headers("input.messageHeaders", in.headers)
		v.body("input.messageBody", in.body)
		v.matchers("input.bodyMatchers", in.bodyMatchers, in.body, ProducerRole)
	}
	if out := c.output; out != nil {
		v.optional("outputMessage.sentTo", out.sentTo)
		v.headers("outputMessage.headers", out.headers)
		v.body("outputMessage.body", out.body)
		v.matchers("outputMessage.bodyMatchers", out.bodyMatchers, out.body, ConsumerRole)
	}
	return v.errs
}

type valueValidator struct {
	errs []error
}

func (v *valueValidator) add(field string, err error) {
	if err == nil {
		return
	}
	// errors.Join results are flattened so each failure keeps its own field.
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			v.add(field, e)
		}
		return
	}
	v.errs = append(v.errs, at(field, err))
}

func (v *valueValidator) property(field string, p Property) {
	v.add(field, verifyPair(p.consumer, p.producer))
}

func (v *valueValidator) optional(field string, p *Property) {
	if p != nil {
		v.property(field, *p)
	}
}

func (v *valueValidator) headers(field string, h Headers) {
	for _, e := range h.entries {
		v.property(field+"."+e.Name, e.Value)
	}
}

func (v *valueValidator) cookies(field string, c Cookies) {
	for _, e := range c.entries {
		v.property(field+"."+e.Name, e.Value)
	}
}

func (v *valueValidator) body(field string, body any) {
	switch x := body.(type) {
	case Property:
		v.property(field, x)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v.body(field+"."+k, x[k])
		}
	case []any:
		for i, e := range x {
			v.body(indexField(field, i), e)
		}
	default:
		if c, ok := collection(body); ok {
			v.body(field, c)
		}
	}
}

// matchers checks regex-related body matchers against the concrete body
// seen by role. Paths absent from the body are not checked.
func (v *valueValidator) matchers(field string, matchers []BodyMatcher, body any, role Role) {
	if len(matchers) == 0 || body == nil {
		return
	}
	concrete := project(body, role)
	for _, m := range matchers {
		pat, ok := m.Match.Pattern()
		if !ok || !m.Match.Type.IsRegexRelated() {
			continue
		}
		mf := fmt.Sprintf("%s[%s]", field, m.Path)
		values, err := bodypath.Extract(concrete, m.Path)
		if err != nil {
			v.add(mf, &ValidationError{Message: err.Error(), Err: ErrInvalidPattern})
			continue
		}
		for _, val := range values {
			if _, isPat := patternOf(val); isPat {
				continue
			}
			s, ok := scalarString(val)
			if !ok {
				continue
			}
			if !pat.Matches(s) {
				v.add(mf, mismatch(s, pat))
			}
		}
	}
}

func indexField(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
