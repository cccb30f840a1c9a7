package contract

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/contractd/pkg/patterns"
)

func fraudContract(b *Builder) {
	b.Name("fraud")
	b.Request(func(r *RequestBuilder) {
		r.Method(http.MethodPut)
		r.URL("/fraudcheck")
		r.Body(map[string]any{
			"clientId":   r.Value(r.C(r.Regex("[0-9]{10}")), r.P("1234567890")),
			"loanAmount": 99999,
		})
		r.Cookies(func(c *CookiesBuilder) {
			c.Cookie("foo", r.Value(r.C("client"), r.P("server")))
		})
	})
	b.Response(func(r *ResponseBuilder) {
		r.Status(http.StatusOK)
		r.Body(map[string]any{
			"fraudCheckStatus": "FRAUD",
			"rejection":        r.Value(r.C("Amount too high"), r.P(patterns.NonBlank())),
		})
		r.BodyMatchers(func(m *BodyMatchersBuilder) {
			m.JSONPath("$.fraudCheckStatus", ByRegex(patterns.AnyOf("FRAUD", "OK")))
		})
	})
}

func TestContract_StubSide(t *testing.T) {
	c, err := MakeValid(fraudContract)
	require.NoError(t, err)

	want := map[string]any{
		"name": "fraud",
		"request": map[string]any{
			"method": http.MethodPut,
			"url":    "/fraudcheck",
			"body": map[string]any{
				"clientId":   patterns.MustCompile("[0-9]{10}"),
				"loanAmount": 99999,
			},
			"cookies": map[string]any{"foo": "client"},
		},
		"response": map[string]any{
			"status": http.StatusOK,
			"body": map[string]any{
				"fraudCheckStatus": "FRAUD",
				"rejection":        "Amount too high",
			},
			"matchers": []any{
				map[string]any{"path": "$.fraudCheckStatus", "type": "by_regex", "value": patterns.AnyOf("FRAUD", "OK")},
			},
		},
	}

	if diff := cmp.Diff(want, c.StubSide(), cmp.Comparer(patterns.Pattern.Equal)); diff != "" {
		t.Errorf("StubSide() mismatch (-want +got):\n%s", diff)
	}
}

func TestContract_TestSide(t *testing.T) {
	c, err := MakeValid(fraudContract)
	require.NoError(t, err)

	got := c.TestSide()
	req := got["request"].(map[string]any)
	resp := got["response"].(map[string]any)

	if diff := cmp.Diff(map[string]any{"clientId": "1234567890", "loanAmount": 99999}, req["body"]); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]any{"foo": "server"}, req["cookies"])
	assert.Equal(t, patterns.NonBlank(), resp["body"].(map[string]any)["rejection"])
}

func TestContract_StubSideMarshalsToJSON(t *testing.T) {
	c, err := MakeValid(fraudContract)
	require.NoError(t, err)

	b, err := json.Marshal(c.StubSide()["request"])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"method": "PUT",
		"url": "/fraudcheck",
		"body": {"clientId": {"regex": "[0-9]{10}"}, "loanAmount": 99999},
		"cookies": {"foo": "client"}
	}`, string(b))
}

func TestContract_SideOfMessaging(t *testing.T) {
	c, err := MakeValid(func(b *Builder) {
		b.Label("shipped")
		b.Input(func(in *InputBuilder) {
			in.MessageFrom("orders")
			in.MessageBody(map[string]any{"orderId": in.Value(in.C(patterns.UUID()), in.P("0b3e2f4c-4a1d-4c1f-9d8e-0123456789ab"))})
			in.AssertThat("shipped($it)")
		})
		b.OutputMessage(func(o *OutputMessageBuilder) {
			o.SentTo("shipments")
			o.Body(map[string]any{"status": "SHIPPED"})
		})
	})
	require.NoError(t, err)

	stub := c.StubSide()
	assert.Equal(t, "shipped", stub["label"])
	input := stub["input"].(map[string]any)
	assert.Equal(t, "orders", input["messageFrom"])
	assert.Equal(t, Execute("shipped($it)"), input["assertThat"])
	assert.Equal(t, patterns.UUID(), input["messageBody"].(map[string]any)["orderId"])

	test := c.TestSide()
	out := test["outputMessage"].(map[string]any)
	assert.Equal(t, "shipments", out["sentTo"])
}

func TestMake_TypedBodyCollectionsAreValidated(t *testing.T) {
	_, err := Make(func(b *Builder) {
		b.Response(func(r *ResponseBuilder) {
			r.Status(http.StatusOK)
			r.Body(map[string]any{
				"times": []Property{NewProperty("thisIsNotADate", patterns.ISO8601WithOffset())},
			})
		})
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPatternMismatch))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "response.body.times[0]", ve.Field)
}

func TestContract_TypedBodyCollectionsAreProjected(t *testing.T) {
	c, err := MakeValid(func(b *Builder) {
		b.Request(func(r *RequestBuilder) {
			r.Method(http.MethodPost)
			r.URL("/times")
			r.Body(map[string]any{
				"ids":   [2]int{1, 2},
				"raw":   []byte("abc"),
				"times": []Property{NewProperty("2024-01-31T10:00:00Z", patterns.ISO8601WithOffset())},
				"tags":  map[string]Property{"env": NewProperty("dev", "prod")},
			})
		})
		b.Response(func(r *ResponseBuilder) { r.Status(http.StatusOK) })
	})
	require.NoError(t, err)

	want := map[string]any{
		"ids":   []any{1, 2},
		"raw":   []byte("abc"),
		"times": []any{"2024-01-31T10:00:00Z"},
		"tags":  map[string]any{"env": "dev"},
	}
	got := c.StubSide()["request"].(map[string]any)["body"]
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stub body mismatch (-want +got):\n%s", diff)
	}

	test := c.TestSide()["request"].(map[string]any)["body"].(map[string]any)
	assert.Equal(t, map[string]any{"env": "prod"}, test["tags"])
	assert.Equal(t, []any{patterns.ISO8601WithOffset()}, test["times"])
}
