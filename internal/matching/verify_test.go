package matching

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/contractd/pkg/contract"
	"github.com/getmockd/contractd/pkg/patterns"
)

func fraudResponse(b *contract.Builder) {
	b.Request(func(r *contract.RequestBuilder) {
		r.Method(http.MethodPut)
		r.URL("/fraudcheck")
	})
	b.Response(func(r *contract.ResponseBuilder) {
		r.Status(http.StatusOK)
		r.Headers(func(h *contract.HeadersBuilder) {
			h.ContentType(contract.MediaApplicationJSON)
		})
		r.Body(map[string]any{
			"fraudCheckStatus": "FRAUD",
			"rejection":        r.Value(r.C("Amount too high"), r.P(patterns.NonBlank())),
			"created":          "2024-01-31",
		})
		r.BodyMatchers(func(m *contract.BodyMatchersBuilder) {
			m.JSONPath("$.created", contract.ByDate())
		})
	})
}

func keys(misses []Mismatch) []string {
	out := make([]string, len(misses))
	for i, m := range misses {
		out[i] = m.Field
		if m.Path != "" {
			out[i] += " " + m.Path
		}
	}
	return out
}

func TestVerifyResponse_Satisfied(t *testing.T) {
	c := makeContract(t, fraudResponse)

	misses := VerifyResponse(c.Response(), Actual{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": {"application/json;charset=UTF-8"}},
		Body:   []byte(`{"fraudCheckStatus":"FRAUD","rejection":"too high","created":"2025-03-04"}`),
	})
	assert.Empty(t, misses)
}

func TestVerifyResponse_ReportsEveryMismatch(t *testing.T) {
	c := makeContract(t, fraudResponse)

	misses := VerifyResponse(c.Response(), Actual{
		Status: http.StatusInternalServerError,
		Header: http.Header{},
		Body:   []byte(`{"fraudCheckStatus":"OK","rejection":"  ","created":"yesterday"}`),
	})
	assert.Equal(t, []string{
		"status",
		"headers Content-Type",
		"body $.fraudCheckStatus",
		"body $.rejection",
		"bodyMatchers $.created",
	}, keys(misses))
	assert.Equal(t, `expected 200, got 500`, misses[0].Reason)
	assert.Equal(t, "missing", misses[1].Reason)
	assert.Equal(t, `body $.fraudCheckStatus: expected "FRAUD", got "OK"`, misses[2].String())
}

func TestVerifyResponse_BodyShape(t *testing.T) {
	c := makeContract(t, func(b *contract.Builder) {
		b.Request(func(r *contract.RequestBuilder) {
			r.Method(http.MethodGet)
			r.URL("/orders")
		})
		b.Response(func(r *contract.ResponseBuilder) {
			r.Body(map[string]any{
				"orders": []any{
					map[string]any{"id": 1, "total": 9.5},
				},
				"note": r.Value(r.C("none"), r.P(r.Optional("[a-z]+"))),
			})
		})
	})

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"exact", `{"orders":[{"id":1,"total":9.5}]}`, []string{}},
		{"optional present", `{"orders":[{"id":1,"total":9.5}],"note":"ok"}`, []string{}},
		{"not json", `orders`, []string{"body"}},
		{"wrong length", `{"orders":[]}`, []string{"body $.orders"}},
		{"wrong type", `{"orders":{"id":1}}`, []string{"body $.orders"}},
		{"missing leaf", `{"orders":[{"id":1}]}`, []string{"body $.orders[0].total"}},
		{"optional bad", `{"orders":[{"id":1,"total":9.5}],"note":"42"}`, []string{"body $.note"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			misses := VerifyResponse(c.Response(), Actual{Status: http.StatusOK, Body: []byte(tt.body)})
			assert.Equal(t, tt.want, keys(misses))
		})
	}
}

func TestVerifyResponse_Matchers(t *testing.T) {
	c := makeContract(t, func(b *contract.Builder) {
		b.Request(func(r *contract.RequestBuilder) {
			r.Method(http.MethodGet)
			r.URL("/stats")
		})
		b.Response(func(r *contract.ResponseBuilder) {
			r.Body(map[string]any{
				"count":   3,
				"items":   []any{"a", "b"},
				"at":      "12:30:00",
				"version": "v1",
			})
			r.BodyMatchers(func(m *contract.BodyMatchersBuilder) {
				m.JSONPath("$.count", contract.ByCommand("$it > 0"))
				m.JSONPath("$.items", contract.ByType(contract.MinOccurrence(1), contract.MaxOccurrence(3)))
				m.JSONPath("$.at", contract.ByTime())
				m.JSONPath("$.version", contract.ByEquality())
			})
		})
	})

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"all pass", `{"count":7,"items":["x","y","z"],"at":"23:59:59","version":"v1"}`, []string{}},
		{"command fails", `{"count":0,"items":["x"],"at":"00:00:00","version":"v1"}`, []string{"bodyMatchers $.count"}},
		{"too many items", `{"count":1,"items":["1","2","3","4"],"at":"00:00:00","version":"v1"}`, []string{"bodyMatchers $.items"}},
		{"wrong type", `{"count":1,"items":"x","at":"00:00:00","version":"v1"}`, []string{"bodyMatchers $.items"}},
		{"bad time", `{"count":1,"items":["x"],"at":"noon","version":"v1"}`, []string{"bodyMatchers $.at"}},
		{"not equal", `{"count":1,"items":["x"],"at":"00:00:00","version":"v2"}`, []string{"bodyMatchers $.version"}},
		{"missing path", `{"items":["x"],"at":"00:00:00","version":"v1"}`, []string{"bodyMatchers $.count"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			misses := VerifyResponse(c.Response(), Actual{Status: http.StatusOK, Body: []byte(tt.body)})
			assert.Equal(t, tt.want, keys(misses))
		})
	}
}

func TestVerifyResponse_XMLBody(t *testing.T) {
	c := makeContract(t, func(b *contract.Builder) {
		b.Request(func(r *contract.RequestBuilder) {
			r.Method(http.MethodGet)
			r.URL("/duck")
		})
		b.Response(func(r *contract.ResponseBuilder) {
			r.Body("<test><duck type='xtype'>123</duck></test>")
			r.BodyMatchers(func(m *contract.BodyMatchersBuilder) {
				m.XPath("/test/duck", contract.ByRegex(patterns.MustCompile("[0-9]{3}")))
				m.XPath("/test/duck/@type", contract.ByEquality())
			})
		})
	})

	ok := VerifyResponse(c.Response(), Actual{Status: http.StatusOK, Body: []byte(`<test><duck type="xtype">456</duck></test>`)})
	assert.Empty(t, ok)

	bad := VerifyResponse(c.Response(), Actual{Status: http.StatusOK, Body: []byte(`<test><duck type="other">45</duck></test>`)})
	assert.Equal(t, []string{"bodyMatchers /test/duck", "bodyMatchers /test/duck/@type"}, keys(bad))
}

func TestVerifyResponse_Cookies(t *testing.T) {
	c := makeContract(t, func(b *contract.Builder) {
		b.Request(func(r *contract.RequestBuilder) {
			r.Method(http.MethodGet)
			r.URL("/login")
		})
		b.Response(func(r *contract.ResponseBuilder) {
			r.Cookies(func(ck *contract.CookiesBuilder) {
				ck.Cookie("session", r.Value(r.C("abc"), r.P(patterns.NonBlank())))
			})
		})
	})

	header := http.Header{"Set-Cookie": {"session=s3cr3t; Path=/; HttpOnly"}}
	assert.Empty(t, VerifyResponse(c.Response(), Actual{Status: http.StatusOK, Header: header}))

	misses := VerifyResponse(c.Response(), Actual{Status: http.StatusOK, Header: http.Header{}})
	assert.Equal(t, []string{"cookies session"}, keys(misses))
}

func TestVerifyOutputMessage(t *testing.T) {
	c, err := contract.MakeValid(func(b *contract.Builder) {
		b.Label("shipped")
		b.Input(func(in *contract.InputBuilder) {
			in.TriggeredBy("ship()")
		})
		b.OutputMessage(func(o *contract.OutputMessageBuilder) {
			o.SentTo("shipments")
			o.Headers(func(h *contract.HeadersBuilder) {
				h.Header("eventType", "SHIPPED")
			})
			o.Body(map[string]any{"orderId": o.Value(o.C("0b3e2f4c-4a1d-4c1f-9d8e-0123456789ab"), o.P(patterns.UUID()))})
			o.AssertThat("$it.orderId != ''")
		})
	})
	require.NoError(t, err)

	ok := VerifyOutputMessage(c.OutputMessage(), Message{
		Destination: "shipments",
		Headers:     map[string]any{"EventType": "SHIPPED"},
		Body:        []byte(`{"orderId":"6f1c1b1e-8f3d-4d7a-9b55-0c8f5d6a2e11"}`),
	})
	assert.Empty(t, ok)

	bad := VerifyOutputMessage(c.OutputMessage(), Message{
		Destination: "orders",
		Body:        []byte(`{"orderId":""}`),
	})
	assert.Equal(t, []string{"sentTo", "headers eventType", "body $.orderId", "assertThat"}, keys(bad))
}
