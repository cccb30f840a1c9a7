// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"net/http"
	"strings"
)

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to ':'.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{':'}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Definitions parses -D style "key=value" strings. A bare key is set to
// "true".
func Definitions(defs []string) (map[string]string, error) {
	result := make(map[string]string, len(defs))
	for _, d := range defs {
		key, value, ok := KeyValue(d, '=')
		if !ok {
			key, value = d, "true"
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid definition %q: missing key", d)
		}
		result[key] = value
	}
	return result, nil
}

// Header parses "Name: value" strings into an http.Header. Repeated names
// accumulate values.
func Header(headers []string) (http.Header, error) {
	h := make(http.Header, len(headers))
	for _, s := range headers {
		key, value, ok := KeyValue(s, ':')
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid header %q: expected name:value", s)
		}
		h.Add(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return h, nil
}
