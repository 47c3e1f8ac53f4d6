package lookup

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"
)

// DefaultMaxSubstitutions bounds the number of placeholder replacements
// performed on a single string. Self-referential variables otherwise never
// converge.
var DefaultMaxSubstitutions = 100

// VariableResolver returns the current value of a named variable, or an error
// if the name is unknown.
type VariableResolver interface {
	Resolve(name string) (string, error)
}

// ResolverFunc adapts an ordinary function to a [VariableResolver].
type ResolverFunc func(name string) (string, error)

// Resolve implements [VariableResolver].
func (f ResolverFunc) Resolve(name string) (string, error) { return f(name) }

// MapResolver is a [VariableResolver] backed by a fixed set of variables.
type MapResolver map[string]string

// Resolve implements [VariableResolver].
func (m MapResolver) Resolve(name string) (string, error) {
	if v, ok := m[name]; ok {
		return v, nil
	}

	return "", ErrUnresolvedVariable.With(slog.String("variable", name))
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

const (
	escapedOpen = `\%{`
	openBrace   = `%{`
)

// Substitute returns a copy of v with every %{name} placeholder replaced
// using r. Map keys and literals are left untouched. A limit < 1 selects
// [DefaultMaxSubstitutions].
func Substitute(v Value, r VariableResolver, limit int) (Value, error) {
	switch v.Kind {
	case KindScalar:
		s, err := Interpolate(v.Scalar, r, limit)
		if err != nil {
			return Value{}, err
		}

		return Scalar(s), nil

	case KindList:
		list := make([]Value, len(v.List))

		for i, item := range v.List {
			sub, err := Substitute(item, r, limit)
			if err != nil {
				return Value{}, err
			}

			list[i] = sub
		}

		return Value{Kind: KindList, List: list}, nil

	case KindMap:
		m := make(Map, len(v.Map))

		for i, e := range v.Map {
			sub, err := Substitute(e.Value, r, limit)
			if err != nil {
				return Value{}, err
			}

			m[i] = Entry{Key: e.Key, Value: sub}
		}

		return Value{Kind: KindMap, Map: m}, nil

	case KindLiteral:
		return v, nil

	default:
		return v, nil
	}
}

// Interpolate unescapes s once and then replaces the leftmost %{name}
// placeholder until none remain. Replacement text may itself contain
// placeholders.
func Interpolate(s string, r VariableResolver, limit int) (string, error) {
	if limit < 1 {
		limit = DefaultMaxSubstitutions
	}

	s = strings.ReplaceAll(s, escapedOpen, openBrace)

	for range limit {
		loc := placeholder.FindStringSubmatchIndex(s)
		if loc == nil {
			return s, nil
		}

		name := s[loc[2]:loc[3]]

		val, err := r.Resolve(name)
		if err != nil {
			return "", unresolved(name, err)
		}

		s = s[:loc[0]] + val + s[loc[1]:]
	}

	if placeholder.MatchString(s) {
		return "", ErrSubstitutionLimit.With(
			slog.Int("limit", limit),
			slog.String("value", s),
		)
	}

	return s, nil
}

func unresolved(name string, err error) error {
	if errors.Is(err, ErrUnresolvedVariable) {
		return err
	}

	return ErrUnresolvedVariable.Wrap(err).With(slog.String("variable", name))
}
