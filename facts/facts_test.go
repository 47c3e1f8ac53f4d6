package facts

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/extlookup/lookup"
)

func TestSet_ResolveOrder(t *testing.T) {
	s := New(
		WithEnviron([]string{"HOME=/home/ops", "EMPTY="}),
		WithFact("hostname", "override"),
		WithFacts(map[string]string{"environment": "production"}),
	)

	tests := []struct {
		name string
		want string
	}{
		{"environment", "production"},
		{"hostname", "override"},
		{"env.HOME", "/home/ops"},
		{"env.EMPTY", ""},
		{"os", getOS()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Resolve(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSet_Unknown(t *testing.T) {
	s := New(WithEnviron(nil), WithoutBuiltins())

	for _, name := range []string{"nope", "env.NOPE", "os"} {
		_, err := s.Resolve(name)
		require.Error(t, err)
		assert.True(t, errors.Is(err, lookup.ErrUnresolvedVariable), name)
	}
}

func TestSet_Expr(t *testing.T) {
	s := New(
		WithEnviron([]string{"DC=ams1"}),
		WithoutBuiltins(),
		WithFact("hostname", "web01"),
		WithExpr("role", `hostname startsWith "web" ? "frontend" : "backend"`),
		WithExpr("site", `upper(env.DC)`),
		WithExpr("label", `fact("role") + "-" + fact("site")`),
		WithExpr("port", `8000 + 80`),
	)

	tests := map[string]string{
		"role":  "frontend",
		"site":  "AMS1",
		"label": "frontend-AMS1",
		"port":  "8080",
	}

	for name, want := range tests {
		got, err := s.Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestSet_ExprMung(t *testing.T) {
	sep := string(os.PathListSeparator)
	s := New(
		WithoutBuiltins(),
		WithEnviron([]string{"PATH=/usr/bin"}),
		WithExpr("path", `mung.prefix(env.PATH, "/opt/bin")`),
	)

	got, err := s.Resolve("path")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(got, sep), "/opt/bin")
	assert.Contains(t, strings.Split(got, sep), "/usr/bin")
}

func TestSet_ExprErrors(t *testing.T) {
	s := New(
		WithoutBuiltins(),
		WithEnviron(nil),
		WithExpr("bad", `1 +`),
		WithExpr("self", `fact("self")`),
		WithExpr("a", `fact("b")`),
		WithExpr("b", `fact("a")`),
	)

	_, err := s.Resolve("bad")
	assert.True(t, errors.Is(err, ErrFactExpr))

	_, err = s.Resolve("self")
	assert.True(t, errors.Is(err, ErrFactCycle))

	_, err = s.Resolve("a")
	assert.True(t, errors.Is(err, ErrFactCycle))
}

func TestSet_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "facts.yaml")

	require.NoError(t, os.WriteFile(path, []byte(
		"environment: staging\nreplicas: 3\nprimary: true\nblank:\n",
	), 0o600))

	s := New(WithoutBuiltins(), WithEnviron(nil), WithFact("environment", "dev"))
	require.NoError(t, s.LoadFile(path))

	for name, want := range map[string]string{
		"environment": "staging",
		"replicas":    "3",
		"primary":     "true",
		"blank":       "",
	} {
		got, err := s.Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	names := s.Names()
	slices.Sort(names)
	assert.Equal(t, []string{"blank", "environment", "primary", "replicas"}, names)

	s.Define("environment", "production")

	got, err := s.Resolve("environment")
	require.NoError(t, err)
	assert.Equal(t, "production", got)
}

func TestSet_LoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested.yaml")
	require.NoError(t, os.WriteFile(nested, []byte("a:\n  b: c\n"), 0o600))

	s := New(WithoutBuiltins())

	err := s.LoadFile(nested)
	assert.True(t, errors.Is(err, ErrFactsFile))

	err = s.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, ErrFactsFile))
}

func TestSet_LoadFileAllOrNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"alpha: 1\nbeta: two\nlist: [a, b]\nomega: last\nzeta: z\n",
	), 0o600))

	for range 20 {
		s := New(WithoutBuiltins(), WithEnviron(nil), WithFact("beta", "kept"))

		err := s.LoadFile(path)
		require.True(t, errors.Is(err, ErrFactsFile))

		var ee *lookup.Error
		require.True(t, errors.As(err, &ee))

		fact, ok := ee.Attr("fact")
		require.True(t, ok)
		assert.Equal(t, "list", fact.String())

		assert.Equal(t, []string{"beta"}, s.Names())

		got, err := s.Resolve("beta")
		require.NoError(t, err)
		assert.Equal(t, "kept", got)
	}
}

func TestSet_AsLookupResolver(t *testing.T) {
	var r lookup.VariableResolver = New(WithoutBuiltins(), WithFact("fqdn", "db1.example.com"))

	got, err := lookup.Interpolate("hosts/%{fqdn}", r, 0)
	require.NoError(t, err)
	assert.Equal(t, "hosts/db1.example.com", got)
}
