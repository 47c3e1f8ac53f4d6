package lookup

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	vars := MapResolver{
		"foobar":   "myfoobar",
		"fqdn":     "web01.example.com",
		"nested":   "%{fqdn}",
		"empty":    "",
		"deep":     "%{nested}/%{foobar}",
		"percent":  "100%",
		"brace":    "}",
		"selfless": "%%{foobar}",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholder", "plain text", "plain text"},
		{"single", "%{foobar}", "myfoobar"},
		{"embedded", "hosts/%{fqdn}.yaml", "hosts/web01.example.com.yaml"},
		{"multiple", "%{foobar}-%{fqdn}", "myfoobar-web01.example.com"},
		{"recursive", "%{nested}", "web01.example.com"},
		{"two levels", "%{deep}", "web01.example.com/myfoobar"},
		{"empty value", "a%{empty}b", "ab"},
		{"escaped", `\%{foobar}`, "myfoobar"},
		{"lone percent", "100% %{foobar}", "100% myfoobar"},
		{"value with percent", "%{percent}", "100%"},
		{"unterminated", "%{foobar", "%{foobar"},
		{"empty name", "%{}", "%{}"},
		{"percent before placeholder", "%{selfless}", "%myfoobar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpolate(tt.in, vars, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpolate_Unresolved(t *testing.T) {
	_, err := Interpolate("%{known}/%{unknown}", MapResolver{"known": "k"}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedVariable))
	assert.Contains(t, err.Error(), "unknown")
}

func TestInterpolate_ResolverFailureIsWrapped(t *testing.T) {
	boom := fmt.Errorf("backend down")
	r := ResolverFunc(func(string) (string, error) { return "", boom })

	_, err := Interpolate("%{x}", r, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedVariable))
	assert.True(t, errors.Is(err, boom))
}

func TestInterpolate_SelfReferenceIsBounded(t *testing.T) {
	calls := 0
	r := ResolverFunc(func(name string) (string, error) {
		calls++

		return "x%{" + name + "}", nil
	})

	_, err := Interpolate("%{loop}", r, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubstitutionLimit))
	assert.Equal(t, 5, calls)
}

func TestInterpolate_ConvergesAtLimit(t *testing.T) {
	r := MapResolver{"a": "%{b}", "b": "done"}

	got, err := Interpolate("%{a}", r, 2)
	require.NoError(t, err)
	assert.Equal(t, "done", got)
}

func TestSubstitute(t *testing.T) {
	vars := MapResolver{"foobar": "myfoobar", "dc": "ams1"}

	in := MapOf(
		Entry{Key: "v1", Value: Scalar("%{foobar}")},
		Entry{Key: "%{dc}", Value: List("ntp.%{dc}", "static")},
		Entry{Key: "port", Value: Literal(uint64(123))},
		Entry{Key: "inner", Value: MapOf(Entry{Key: "k", Value: Scalar(`\%{dc}`)})},
	)

	want := MapOf(
		Entry{Key: "v1", Value: Scalar("myfoobar")},
		Entry{Key: "%{dc}", Value: List("ntp.ams1", "static")},
		Entry{Key: "port", Value: Literal(uint64(123))},
		Entry{Key: "inner", Value: MapOf(Entry{Key: "k", Value: Scalar("ams1")})},
	)

	got, err := Substitute(in, vars, 0)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Substitute mismatch (-want +got):\n%s", diff)
	}

	// input is untouched
	v1, _ := in.Map.Get("v1")
	assert.Equal(t, "%{foobar}", v1.Scalar)
}

func TestSubstitute_ListError(t *testing.T) {
	_, err := Substitute(List("ok", "%{missing}"), MapResolver{}, 0)
	assert.True(t, errors.Is(err, ErrUnresolvedVariable))
}
