package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Compiles(t *testing.T) {
	s, err := Schema()
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name     string
		doc      map[string]any
		wantPath string
	}{
		{
			name: "valid",
			doc: map[string]any{
				"request":  map[string]any{"method": "GET", "url": "/a"},
				"response": map[string]any{"status": 200},
			},
		},
		{
			name:     "unknown top level field",
			doc:      map[string]any{"requst": map[string]any{}},
			wantPath: "",
		},
		{
			name:     "status out of range",
			doc:      map[string]any{"response": map[string]any{"status": 42}},
			wantPath: "response.status",
		},
		{
			name: "unknown matching type",
			doc: map[string]any{
				"response": map[string]any{
					"status":   200,
					"matchers": map[string]any{"body": []any{map[string]any{"path": "$.a", "type": "by_magic"}}},
				},
			},
			wantPath: "response.matchers.body[0].type",
		},
		{
			name: "url and urlPath together",
			doc: map[string]any{
				"request": map[string]any{"method": "GET", "url": "/a", "urlPath": "/a"},
			},
			wantPath: "request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDocument(tt.doc)
			if tt.name == "valid" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var se SchemaError
			require.True(t, errors.As(err, &se), "got %v", err)
			if tt.wantPath != "" {
				assert.Equal(t, tt.wantPath, se.Path)
			}
		})
	}
}

func TestValidateDocument_Numbers(t *testing.T) {
	doc := map[string]any{
		"priority": uint64(3),
		"request": map[string]any{
			"method": "POST",
			"url":    "/loans",
			"body":   map[string]any{"amount": 1.5, "count": 12345678901234},
		},
		"response": map[string]any{"status": int64(201)},
	}
	assert.NoError(t, validateDocument(doc))

	doc["response"] = map[string]any{"status": 200.5}
	assert.Error(t, validateDocument(doc))
}

func TestPointerToPath(t *testing.T) {
	assert.Equal(t, "", pointerToPath(""))
	assert.Equal(t, "request", pointerToPath("/request"))
	assert.Equal(t, "response.matchers.body[0].type", pointerToPath("/response/matchers/body/0/type"))
}
