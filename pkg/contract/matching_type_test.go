package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/contractd/pkg/patterns"
)

func TestMatchingType_IsRegexRelated(t *testing.T) {
	tests := []struct {
		typ  MatchingType
		want bool
	}{
		{EqualityMatch, false},
		{TypeMatch, false},
		{CommandMatch, false},
		{RegexMatch, true},
		{DateMatch, true},
		{TimeMatch, true},
		{TimestampMatch, true},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.IsRegexRelated())
		})
	}
}

func TestParseMatchingType(t *testing.T) {
	tests := []struct {
		in   string
		want MatchingType
	}{
		{"REGEX", RegexMatch},
		{"by_regex", RegexMatch},
		{"by_equality", EqualityMatch},
		{"type", TypeMatch},
		{"BY_COMMAND", CommandMatch},
		{"by_date", DateMatch},
		{"by_time", TimeMatch},
		{"by_timestamp", TimestampMatch},
	}
	for _, tt := range tests {
		got, err := ParseMatchingType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMatchingType("by_magic")
	assert.Error(t, err)
}

func TestMatchingType_Text(t *testing.T) {
	b, err := TimestampMatch.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "TIMESTAMP", string(b))

	var mt MatchingType
	require.NoError(t, mt.UnmarshalText([]byte("by_type")))
	assert.Equal(t, TypeMatch, mt)

	assert.Equal(t, "MatchingType(42)", MatchingType(42).String())
}

func TestMatchingType_DefaultPattern(t *testing.T) {
	p, ok := DateMatch.DefaultPattern()
	require.True(t, ok)
	assert.True(t, p.Matches("2024-02-29"))

	p, ok = TimeMatch.DefaultPattern()
	require.True(t, ok)
	assert.True(t, p.Matches("23:59:59"))

	p, ok = TimestampMatch.DefaultPattern()
	require.True(t, ok)
	assert.True(t, p.Matches("2014-03-01T12:23:45"))

	_, ok = RegexMatch.DefaultPattern()
	assert.False(t, ok)
}

func TestMatchingTypeOf(t *testing.T) {
	re := mustRegex(t, "[a-z]+")
	opt, err := Optional("[a-z]+")
	require.NoError(t, err)

	tests := []struct {
		name string
		v    any
		want MatchingType
	}{
		{"literal", "abc", EqualityMatch},
		{"nil", nil, EqualityMatch},
		{"pattern", patterns.UUID(), RegexMatch},
		{"regex property", re, RegexMatch},
		{"optional", opt, RegexMatch},
		{"command", Execute("assertThat($it)"), CommandMatch},
		{"property with pattern", NewProperty(patterns.UUID(), "x"), RegexMatch},
		{"property with command", NewProperty("x", Execute("$it")), CommandMatch},
		{"plain property", Value(5), EqualityMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchingTypeOf(tt.v))
		})
	}
}

func mustRegex(t *testing.T, expr string) RegexProperty {
	t.Helper()
	r, err := Regex(expr)
	require.NoError(t, err)
	return r
}
