package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/contractd/pkg/contract"
	"github.com/getmockd/contractd/pkg/patterns"
)

func TestLoader_LoadFile_MultiDocumentYAML(t *testing.T) {
	var l Loader
	cs, err := l.LoadFile(filepath.Join("testdata", "valid", "fraud.yml"))
	require.NoError(t, err)
	require.Len(t, cs, 2)

	assert.Equal(t, "fraud_0", cs[0].Name(), "unnamed documents get the file stem and index")
	assert.Equal(t, "Should mark client as fraud", cs[0].Description())
	assert.Equal(t, "not_fraud", cs[1].Name())
	assert.Equal(t, 2, cs[1].Priority())

	req := cs[0].Request()
	require.NotNil(t, req)
	assert.Equal(t, "PUT", req.Method().Producer())
	require.Len(t, req.BodyMatchers(), 1)
	assert.Equal(t, "$.clientId", req.BodyMatchers()[0].Path)
	assert.Equal(t, 200, cs[0].Response().Status().Producer())
}

func TestLoader_LoadFile_Messaging(t *testing.T) {
	var l Loader
	cs, err := l.LoadFile(filepath.Join("testdata", "valid", "shipping.yaml"))
	require.NoError(t, err)
	require.Len(t, cs, 1)

	c := cs[0]
	assert.Equal(t, "shipping", c.Name())
	assert.Equal(t, "order_shipped", c.Label())
	assert.True(t, c.IsMessaging())
	assert.False(t, c.IsHTTP())
	assert.Equal(t, "shipOrder()", c.Input().TriggeredBy())

	out := c.OutputMessage()
	require.NotNil(t, out)
	assert.Equal(t, "shipments", out.SentTo().Producer())
	require.Len(t, out.BodyMatchers(), 1)
	p, ok := out.BodyMatchers()[0].Match.Pattern()
	require.True(t, ok)
	assert.Equal(t, patterns.UUID(), p)
}

func TestLoader_LoadFile_JSONArray(t *testing.T) {
	var l Loader
	cs, err := l.LoadFile(filepath.Join("testdata", "valid", "nested", "loan.json"))
	require.NoError(t, err)
	require.Len(t, cs, 1)

	url := cs[0].Request().URL()
	require.NotNil(t, url)
	assert.True(t, url.IsPath())
	assert.Equal(t, "/loans", url.Value().Producer())

	params := url.QueryParameters()
	require.Len(t, params, 1)
	assert.Equal(t, "limit", params[0].Name)
	assert.Equal(t, "10", params[0].Value.Producer())
	assert.IsType(t, patterns.Pattern{}, params[0].Value.Consumer())
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	var l Loader
	_, err := l.LoadFile(filepath.Join("testdata", "missing.yml"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 0, le.Document)
	assert.Contains(t, err.Error(), "file not found")
}

func TestLoader_LoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"unknown field", "unknown_field.yml", "(document 1)"},
		{"status out of range", "bad_status.yml", "(document 1)"},
		{"no documents", "empty.yml", "file contains no contracts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Loader
			cs, err := l.LoadFile(filepath.Join("testdata", "invalid", tt.file))
			require.Error(t, err)
			assert.Empty(t, cs)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoader_LoadFile_KeepsValidDocuments(t *testing.T) {
	var l Loader
	cs, err := l.LoadFile(filepath.Join("testdata", "invalid", "mixed.yml"))
	require.Error(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "ok", cs[0].Name())

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 2, le.Document)
}

func TestLoader_Parse_Options(t *testing.T) {
	data := []byte(`
request:
  method: GET
  url: /ping
  matchers:
    headers:
      - key: X-Id
        predefined: uuid
response:
  status: 200
`)
	load := func() string {
		l := Loader{Options: []contract.Option{contract.WithSeed(7)}}
		cs, err := l.Parse("ping.yml", data)
		require.NoError(t, err)
		require.Len(t, cs, 1)
		h, ok := cs[0].Request().Headers().Get("X-Id")
		require.True(t, ok)
		s, ok := h.Producer().(string)
		require.True(t, ok, "producer side is drawn from the pattern")
		return s
	}

	first := load()
	assert.True(t, patterns.UUID().Matches(first))
	assert.Equal(t, first, load(), "seeded draws repeat")
}

func TestLoader_LoadAll(t *testing.T) {
	files, err := Discover(filepath.Join("testdata", "valid"))
	require.NoError(t, err)

	var l Loader
	cs, err := l.LoadAll(files)
	require.NoError(t, err)
	assert.Len(t, cs, 4)
}

func TestDiscover(t *testing.T) {
	valid := filepath.Join("testdata", "valid")

	t.Run("directory", func(t *testing.T) {
		files, err := Discover(valid)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(valid, "fraud.yml"),
			filepath.Join(valid, "nested", "loan.json"),
			filepath.Join(valid, "shipping.yaml"),
		}, files)
	})

	t.Run("glob", func(t *testing.T) {
		files, err := Discover(filepath.Join(valid, "**", "*.json"))
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(valid, "nested", "loan.json")}, files)
	})

	t.Run("file and duplicates", func(t *testing.T) {
		f := filepath.Join(valid, "fraud.yml")
		files, err := Discover(f, valid)
		require.NoError(t, err)
		assert.Len(t, files, 3)
		assert.Contains(t, files, f)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := Discover(filepath.Join(valid, "*.xml"))
		assert.ErrorContains(t, err, "no files match")
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := Discover(filepath.Join(valid, "[a-"))
		assert.ErrorContains(t, err, "invalid glob pattern")
	})
}

func TestDiscover_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("#"), 0o600))

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}
