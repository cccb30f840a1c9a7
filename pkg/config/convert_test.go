package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/contractd/pkg/contract"
	"github.com/getmockd/contractd/pkg/patterns"
)

func intPtr(n int) *int { return &n }

func TestFile_Contract_RequestMatchersAreConsumerPatterns(t *testing.T) {
	f := &File{
		Name: "lookup",
		Request: &RequestFile{
			Method: "GET",
			URL:    "/users/42",
			Headers: map[string]any{
				"Accept": []any{"application/json", "text/plain"},
			},
			Cookies: map[string]any{"session": "abc123"},
			Matchers: &RequestMatchers{
				URL:     &ValueMatcher{Regex: "/users/[0-9]+"},
				Cookies: []KeyMatcher{{Key: "session", ValueMatcher: ValueMatcher{Predefined: "alpha_numeric"}}},
			},
		},
		Response: &ResponseFile{Status: 200},
	}

	c, err := f.Contract()
	require.NoError(t, err)

	url := c.Request().URL().Value()
	assert.Equal(t, "/users/42", url.Producer())
	p, ok := url.Consumer().(patterns.Pattern)
	require.True(t, ok)
	assert.True(t, p.Matches("/users/7"))

	assert.Equal(t, 2, c.Request().Headers().Len(), "list literals become repeated headers")

	session, ok := c.Request().Cookies().Get("session")
	require.True(t, ok)
	assert.Equal(t, "abc123", session.Producer())
	assert.Equal(t, patterns.AlphaNumeric(), session.Consumer())
}

func TestFile_Contract_ResponseCommand(t *testing.T) {
	f := &File{
		Request: &RequestFile{Method: "GET", URL: "/ping"},
		Response: &ResponseFile{
			Status:  200,
			Headers: map[string]any{"X-Count": "3"},
			Matchers: &ResponseMatchers{
				Headers: []KeyMatcher{{Key: "X-Count", ValueMatcher: ValueMatcher{Command: "assertCount($it)"}}},
			},
		},
	}

	c, err := f.Contract()
	require.NoError(t, err)

	h, ok := c.Response().Headers().Get("X-Count")
	require.True(t, ok)
	assert.Equal(t, "3", h.Consumer())
	assert.Equal(t, contract.Execute("assertCount($it)"), h.Producer())
}

func TestFile_Contract_BodyMatchers(t *testing.T) {
	f := &File{
		Request: &RequestFile{Method: "GET", URL: "/items"},
		Response: &ResponseFile{
			Status: 200,
			Body:   map[string]any{"items": []any{"a", "b"}, "created": "2024-01-31"},
			Matchers: &ResponseMatchers{
				Body: []BodyMatcher{
					{Path: "$.items", Type: "by_type", MinOccurrence: intPtr(1), MaxOccurrence: intPtr(5)},
					{Path: "$.created", Type: "by_date"},
					{Path: "$.items[*]", Predefined: "only_alpha_unicode"},
				},
			},
		},
	}

	c, err := f.Contract()
	require.NoError(t, err)

	ms := c.Response().BodyMatchers()
	require.Len(t, ms, 3)
	assert.Equal(t, contract.TypeMatch, ms[0].Match.Type)
	require.NotNil(t, ms[0].Match.MaxTypeOccurrence)
	assert.Equal(t, 5, *ms[0].Match.MaxTypeOccurrence)
	assert.Equal(t, contract.DateMatch, ms[1].Match.Type)
	assert.Equal(t, contract.RegexMatch, ms[2].Match.Type, "the type defaults to by_regex")
}

func TestFile_Contract_XPathMatcher(t *testing.T) {
	f := &File{
		Request: &RequestFile{Method: "GET", URL: "/duck"},
		Response: &ResponseFile{
			Status: 200,
			Body:   "<test><duck>123</duck></test>",
			Matchers: &ResponseMatchers{
				Body: []BodyMatcher{{Path: "/test/duck", Value: "[0-9]{3}"}},
			},
		},
	}

	c, err := f.Contract()
	require.NoError(t, err)
	require.Len(t, c.Response().BodyMatchers(), 1)
	assert.Equal(t, "/test/duck", c.Response().BodyMatchers()[0].Path)
}

func TestFile_Contract_Errors(t *testing.T) {
	tests := []struct {
		name string
		file *File
		want string
	}{
		{
			name: "command on the consumer side",
			file: &File{
				Request: &RequestFile{
					Method:   "GET",
					URL:      "/a",
					Headers:  map[string]any{"X-A": "1"},
					Matchers: &RequestMatchers{Headers: []KeyMatcher{{Key: "X-A", ValueMatcher: ValueMatcher{Command: "check($it)"}}}},
				},
				Response: &ResponseFile{Status: 200},
			},
			want: "commands are only allowed on the producer side",
		},
		{
			name: "command without a value",
			file: &File{
				Request: &RequestFile{Method: "GET", URL: "/a"},
				Response: &ResponseFile{
					Status:   200,
					Matchers: &ResponseMatchers{Headers: []KeyMatcher{{Key: "X-A", ValueMatcher: ValueMatcher{Command: "check($it)"}}}},
				},
			},
			want: "a command matcher needs a value for the other side",
		},
		{
			name: "query parameters without url",
			file: &File{
				Request:  &RequestFile{Method: "GET", QueryParameters: map[string]any{"q": "x"}},
				Response: &ResponseFile{Status: 200},
			},
			want: "query parameters need a url or urlPath",
		},
		{
			name: "duplicate matcher",
			file: &File{
				Request: &RequestFile{
					Method: "GET",
					URL:    "/a",
					Matchers: &RequestMatchers{Headers: []KeyMatcher{
						{Key: "X-A", ValueMatcher: ValueMatcher{Regex: "a"}},
						{Key: "X-A", ValueMatcher: ValueMatcher{Regex: "b"}},
					}},
				},
				Response: &ResponseFile{Status: 200},
			},
			want: "duplicate matcher",
		},
		{
			name: "regex and predefined",
			file: &File{
				Request: &RequestFile{
					Method:   "GET",
					URL:      "/a",
					Matchers: &RequestMatchers{URL: &ValueMatcher{Regex: "/a", Predefined: "url"}},
				},
				Response: &ResponseFile{Status: 200},
			},
			want: "set either regex or predefined, not both",
		},
		{
			name: "unknown predefined pattern",
			file: &File{
				Request: &RequestFile{
					Method:   "GET",
					URL:      "/a",
					Matchers: &RequestMatchers{Cookies: []KeyMatcher{{Key: "c", ValueMatcher: ValueMatcher{Predefined: "zip_code"}}}},
				},
				Response: &ResponseFile{Status: 200},
			},
			want: `unknown predefined pattern "zip_code"`,
		},
		{
			name: "command body matcher without value",
			file: &File{
				Request: &RequestFile{Method: "GET", URL: "/a"},
				Response: &ResponseFile{
					Status:   200,
					Body:     map[string]any{"a": 1},
					Matchers: &ResponseMatchers{Body: []BodyMatcher{{Path: "$.a", Type: "by_command"}}},
				},
			},
			want: "by_command needs a value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.file.Contract()
			assert.Nil(t, c)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
