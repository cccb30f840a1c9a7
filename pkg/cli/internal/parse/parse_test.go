package parse

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValue(t *testing.T) {
	tests := []struct {
		in         string
		delims     []rune
		key, value string
		ok         bool
	}{
		{"Content-Type:application/json", nil, "Content-Type", "application/json", true},
		{"a=b=c", []rune{'='}, "a", "b=c", true},
		{"a=b:c", []rune{':', '='}, "a", "b:c", true},
		{"novalue", nil, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, v, ok := KeyValue(tt.in, tt.delims...)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, k)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestDefinitions(t *testing.T) {
	got, err := Definitions([]string{"log.level=debug", "strict", "url=http://x?a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"log.level": "debug",
		"strict":    "true",
		"url":       "http://x?a=b",
	}, got)

	_, err = Definitions([]string{"=oops"})
	assert.ErrorContains(t, err, "missing key")
}

func TestHeader(t *testing.T) {
	h, err := Header([]string{"Accept: text/plain", "x-tag:a", "X-Tag: b"})
	require.NoError(t, err)
	assert.Equal(t, http.Header{
		"Accept": {"text/plain"},
		"X-Tag":  {"a", "b"},
	}, h)

	_, err = Header([]string{"broken"})
	assert.ErrorContains(t, err, "expected name:value")
}
