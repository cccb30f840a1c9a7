// Package matching evaluates contracts against real traffic.
//
// On the stub side a contract's request (its consumer-side values) is matched
// against an incoming HTTP request:
//
//   - Method: case-insensitive literal or pattern
//   - URL: literal or pattern, against the path or the full request URI
//   - Query parameters, headers and cookies: literal, pattern or command
//   - Body: concrete leaves compared as JSON values, pattern leaves as regex
//   - Body matchers: JSONPath or XPath conditions on the incoming body
//
// Matching is score based. Every declared field contributes its score when it
// matches; more specific declarations score higher. When several contracts
// match a request the one with the highest score wins, then the lowest
// priority. Score constants are defined in scores.go.
//
// On the test side a contract's response (its producer-side values) is
// verified against an actual response, and an output message against a
// received message. Verification reports every Mismatch rather than a score.
package matching
