package contract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/contractd/pkg/patterns"
)

// canonical renders v as a string that is equal for structurally equal
// values. It backs every Equal method and Contract.Hash, so equality and
// hashing cannot drift apart.
func canonical(v any) string {
	var sb strings.Builder
	writeCanonical(&sb, v)
	return sb.String()
}

func writeCanonical(sb *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("nil")
	case *Contract:
		if x == nil {
			sb.WriteString("nil")
			return
		}
		writeFields(sb, "contract",
			"description", x.description,
			"name", x.name,
			"ignored", x.ignored,
			"inProgress", x.inProgress,
			"priority", x.priority,
			"label", x.label,
			"request", x.request,
			"response", x.response,
			"input", x.input,
			"outputMessage", x.output)
	case *Request:
		if x == nil {
			sb.WriteString("nil")
			return
		}
		writeFields(sb, "request",
			"method", x.method,
			"url", x.url,
			"headers", x.headers,
			"cookies", x.cookies,
			"body", x.body,
			"matchers", x.bodyMatchers)
	case *Response:
		if x == nil {
			sb.WriteString("nil")
			return
		}
		writeFields(sb, "response",
			"status", x.status,
			"headers", x.headers,
			"cookies", x.cookies,
			"body", x.body,
			"matchers", x.bodyMatchers,
			"async", x.async,
			"delay", x.delay)
	case *Input:
		if x == nil {
			sb.WriteString("nil")
			return
		}
		writeFields(sb, "input",
			"triggeredBy", x.triggeredBy,
			"messageFrom", x.messageFrom,
			"headers", x.headers,
			"body", x.body,
			"assertThat", x.assertThat,
			"matchers", x.bodyMatchers)
	case *OutputMessage:
		if x == nil {
			sb.WriteString("nil")
			return
		}
		writeFields(sb, "output",
			"sentTo", x.sentTo,
			"headers", x.headers,
			"body", x.body,
			"assertThat", x.assertThat,
			"matchers", x.bodyMatchers)
	case *URL:
		if x == nil {
			sb.WriteString("nil")
			return
		}
		query := make([]string, len(x.query))
		for i, q := range x.query {
			query[i] = strconv.Quote(q.Name) + "=" + canonical(q.Value)
		}
		sort.Strings(query)
		writeFields(sb, "url", "value", x.value, "path", x.path, "query", query)
	case *Property:
		if x == nil {
			sb.WriteString("nil")
			return
		}
		writeCanonical(sb, *x)
	case *ExecutionProperty:
		if x == nil {
			sb.WriteString("nil")
			return
		}
		writeCanonical(sb, *x)
	case Property:
		sb.WriteString("prop(")
		writeCanonical(sb, x.consumer)
		sb.WriteByte(',')
		writeCanonical(sb, x.producer)
		sb.WriteByte(')')
	case patterns.Pattern:
		sb.WriteString("re(" + strconv.Quote(x.String()) + ")")
	case RegexProperty:
		sb.WriteString("regex(" + strconv.Quote(x.pattern.String()) + "," + x.kind.String() + ")")
	case OptionalProperty:
		sb.WriteString("optional(" + strconv.Quote(x.inner.String()) + ")")
	case ExecutionProperty:
		sb.WriteString("exec(" + strconv.Quote(x.command) + ")")
	case Headers:
		entries := make([]string, len(x.entries))
		for i, e := range x.entries {
			entries[i] = strconv.Quote(e.Name) + "=" + canonical(e.Value)
		}
		writeSorted(sb, "headers", entries)
	case Cookies:
		entries := make([]string, len(x.entries))
		for i, e := range x.entries {
			entries[i] = strconv.Quote(e.Name) + "=" + canonical(e.Value)
		}
		writeSorted(sb, "cookies", entries)
	case []BodyMatcher:
		sb.WriteByte('[')
		for i, m := range x {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeFields(sb, "matcher",
				"path", m.Path,
				"type", m.Match.Type.String(),
				"value", m.Match.Value,
				"min", m.Match.MinTypeOccurrence,
				"max", m.Match.MaxTypeOccurrence)
		}
		sb.WriteByte(']')
	case []string:
		sb.WriteString("[" + strings.Join(x, ",") + "]")
	case *int:
		if x == nil {
			sb.WriteString("nil")
			return
		}
		sb.WriteString(strconv.Itoa(*x))
	case string:
		sb.WriteString(strconv.Quote(x))
	case bool:
		sb.WriteString(strconv.FormatBool(x))
	case time.Duration:
		sb.WriteString(x.String())
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k) + ":")
			writeCanonical(sb, x[k])
		}
		sb.WriteByte('}')
	case []any:
		sb.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCanonical(sb, e)
		}
		sb.WriteByte(']')
	default:
		fmt.Fprintf(sb, "%T(%v)", x, x)
	}
}

// writeFields writes name{k1=v1;k2=v2...} for alternating key/value pairs.
func writeFields(sb *strings.Builder, name string, kv ...any) {
	sb.WriteString(name + "{")
	for i := 0; i+1 < len(kv); i += 2 {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(kv[i].(string) + "=")
		writeCanonical(sb, kv[i+1])
	}
	sb.WriteByte('}')
}

func writeSorted(sb *strings.Builder, name string, entries []string) {
	sort.Strings(entries)
	sb.WriteString(name + "[" + strings.Join(entries, ",") + "]")
}
