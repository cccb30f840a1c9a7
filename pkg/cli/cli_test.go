package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/contractd/pkg/config"
	"github.com/getmockd/contractd/pkg/contract"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"contractd": Main,
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
	})
}

func TestFlattenErrors(t *testing.T) {
	a, b, c := errors.New("a"), errors.New("b"), errors.New("c")
	le := &config.LoadError{Path: "x.yml", Document: 2, Err: errors.Join(b, c)}

	got := flattenErrors(errors.Join(a, errors.Join(le)))
	require.Len(t, got, 3)
	assert.Equal(t, a, got[0])
	assert.Equal(t, "x.yml (document 2): b", got[1].Error())
	assert.Equal(t, "x.yml (document 2): c", got[2].Error())

	assert.Nil(t, flattenErrors(nil))
}

func TestSelectContract(t *testing.T) {
	mk := func(name string, withResponse bool) *contract.Contract {
		c, err := contract.Make(func(b *contract.Builder) {
			b.Name(name)
			b.Request(func(r *contract.RequestBuilder) {
				r.Method("GET")
				r.URL("/" + name)
			})
			if withResponse {
				b.Response(func(r *contract.ResponseBuilder) { r.Status(200) })
			}
		})
		require.NoError(t, err)
		return c
	}
	contracts := []*contract.Contract{mk("a", true), mk("b", false), mk("c", true)}
	hasResponse := func(c *contract.Contract) bool { return c.Response() != nil }

	c, err := selectContract(contracts, "b", hasResponse)
	require.NoError(t, err)
	assert.Equal(t, "b", c.Name(), "a named contract is returned even when keep rejects it")

	_, err = selectContract(contracts, "", hasResponse)
	assert.ErrorContains(t, err, "2 contracts apply")

	c, err = selectContract(contracts[:2], "", hasResponse)
	require.NoError(t, err)
	assert.Equal(t, "a", c.Name())

	_, err = selectContract(contracts[1:2], "", hasResponse)
	assert.ErrorContains(t, err, "no applicable contract")

	_, err = selectContract(contracts, "z", hasResponse)
	assert.ErrorContains(t, err, `no contract named "z"`)
}

func TestRawBody(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{``, ``},
		{`null`, ``},
		{`"<duck>123</duck>"`, `<duck>123</duck>`},
		{`{"a": 1}`, `{"a": 1}`},
		{`[1, 2]`, `[1, 2]`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := rawBody([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestHeaderValues(t *testing.T) {
	got, err := headerValues([]any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = headerValues(float64(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, got)

	_, err = headerValues([]any{"a", 1.0})
	assert.Error(t, err)
}

func TestRenderStarter(t *testing.T) {
	s := starter{Name: "create_order", Method: "POST", URL: "/orders", Status: 201}

	data, err := renderStarter(s, ".yml")
	require.NoError(t, err)

	var f config.File
	require.NoError(t, yaml.Unmarshal(data, &f))
	assert.Equal(t, "create_order", f.Name)
	assert.Equal(t, "POST", f.Request.Method)
	assert.Equal(t, 201, f.Response.Status)

	var l config.Loader
	cs, err := l.Parse("create_order.yml", data)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "create_order", cs[0].Name())

	data, err = renderStarter(s, ".JSON")
	require.NoError(t, err)
	cs, err = l.Parse("create_order.json", data)
	require.NoError(t, err)
	require.Len(t, cs, 1)
}

func TestBuildInfoString(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"dev", "contractd dev (abc123, 2026-01-02)"},
		{"1.2.0", "contractd v1.2.0 (abc123, 2026-01-02)"},
		{"v1.2.0", "contractd v1.2.0 (abc123, 2026-01-02)"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			b := buildInfo{Version: tt.version, Commit: "abc123", Date: "2026-01-02"}
			assert.Equal(t, tt.want, b.String())
		})
	}
}
