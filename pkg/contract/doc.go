// Package contract is the consumer-driven contract model.
//
// A Contract describes either an HTTP request/response pair or a messaging
// input/output pair. Every declared value is a Property with a consumer side
// (what stubs are generated from) and a producer side (what generated tests
// verify). A side that holds a pattern is paired with a concrete example on
// the other side, drawn from the pattern when it is not given explicitly.
//
// Contracts are declared with Make:
//
//	c, err := contract.MakeValid(func(b *contract.Builder) {
//		b.Request(func(r *contract.RequestBuilder) {
//			r.Method(http.MethodPut)
//			r.URL("/fraudcheck")
//			r.Body(map[string]any{
//				"clientId":   r.Value(r.C(r.Regex("[0-9]{10}")), r.P("1234567890")),
//				"loanAmount": 99999,
//			})
//			r.Headers(func(h *contract.HeadersBuilder) {
//				h.ContentType("application/vnd.fraud.v1+json")
//			})
//		})
//		b.Response(func(r *contract.ResponseBuilder) {
//			r.Status(http.StatusOK)
//			r.Body(map[string]any{"fraudCheckStatus": "FRAUD"})
//		})
//	})
//
// Make validates values: patterns must compile and every concrete value must
// satisfy the pattern it is paired with. Assert validates structure: an HTTP
// contract needs a method, a URL and a status.
package contract
