package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/contractd/pkg/contract"
	"github.com/getmockd/contractd/pkg/patterns"
)

func TestMatchValue(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{"nil accepts anything", nil, "x", true},
		{"string equal", "a", "a", true},
		{"string differs", "a", "b", false},
		{"int vs json number", 42, float64(42), true},
		{"int vs header text", 200, "200", true},
		{"float text", 9.5, "9.5", true},
		{"bool", true, true, true},
		{"bool vs text", true, "false", false},
		{"pattern", patterns.PositiveInt(), "12", true},
		{"pattern on number", patterns.PositiveInt(), float64(12), true},
		{"pattern rejects", patterns.PositiveInt(), "0", false},
		{"pattern on nil", patterns.NonEmpty(), nil, false},
		{"command true", contract.Execute("$it == 'ok'"), "ok", true},
		{"command false", contract.Execute("$it == 'ok'"), "ko", false},
		{"nil actual", "a", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchValue(tt.expected, tt.actual)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchValue_CommandError(t *testing.T) {
	ok, err := MatchValue(contract.Execute("$it +"), 1)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, valuesEqual(nil, nil))
	assert.False(t, valuesEqual(nil, 1))
	assert.True(t, valuesEqual(int64(7), uint8(7)))
	assert.True(t, valuesEqual([]any{"a"}, []any{"a"}))
	assert.False(t, valuesEqual("1", 1))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "null", kind(nil))
	assert.Equal(t, "number", kind(float64(1)))
	assert.Equal(t, "number", kind(3))
	assert.Equal(t, "string", kind(patterns.UUID()))
	assert.Equal(t, "array", kind([]any{}))
	assert.Equal(t, "object", kind(map[string]any{}))
	assert.Equal(t, "boolean", kind(false))
}
