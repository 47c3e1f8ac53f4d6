package facts

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/extlookup/lookup"
)

// envPrefix selects process environment variables, as in %{env.HOME}.
const envPrefix = "env."

// Set is a [lookup.VariableResolver] over the facts of a host. Names are
// resolved in this order:
//
//  1. literal facts ([WithFact], [WithFacts], [Set.LoadFile])
//  2. computed facts ([WithExpr]), evaluated once on first use
//  3. env.NAME, the process environment
//  4. built-in host facts (hostname, fqdn, domain, os, arch, user, cwd)
//
// A Set is safe for concurrent use.
type Set struct {
	mu         sync.Mutex
	literal    map[string]string
	exprs      map[string]string
	computed   map[string]string
	evaluating map[string]bool
	env        map[string]string
	builtin    map[string]string
}

// Option configures a [Set].
type Option func(*Set)

// WithFact defines a literal fact.
func WithFact(name, value string) Option {
	return func(s *Set) {
		s.literal[name] = value
	}
}

// WithFacts defines several literal facts.
func WithFacts(facts map[string]string) Option {
	return func(s *Set) {
		maps.Copy(s.literal, facts)
	}
}

// WithExpr defines a fact computed by an expr-lang expression. The
// expression sees every other fact by name, the process environment as env,
// fact(name) for names that are not identifiers, and mung.prefix and
// mung.prefixif for PATH-like lists.
func WithExpr(name, source string) Option {
	return func(s *Set) {
		s.exprs[name] = source
	}
}

// WithEnviron replaces the process environment ("KEY=VALUE" entries).
func WithEnviron(env []string) Option {
	return func(s *Set) {
		s.env = environ(env)
	}
}

// WithoutBuiltins disables the built-in host facts.
func WithoutBuiltins() Option {
	return func(s *Set) {
		s.builtin = map[string]string{}
	}
}

// New returns a fact set configured by opts.
func New(opts ...Option) *Set {
	s := &Set{
		literal:    make(map[string]string),
		exprs:      make(map[string]string),
		computed:   make(map[string]string),
		evaluating: make(map[string]bool),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.env == nil {
		s.env = environ(os.Environ())
	}

	if s.builtin == nil {
		s.builtin = builtins()
	}

	return s
}

// LoadFile adds the literal facts of a YAML file whose top level maps fact
// names to scalars. Existing facts of the same name are replaced. If any
// value is not a scalar, no fact from the file is added.
func (s *Set) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrFactsFile.Wrap(err).With(slog.String("path", path))
	}

	var doc map[string]any

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return ErrFactsFile.Wrap(err).With(slog.String("path", path))
	}

	parsed := make(map[string]string, len(doc))

	for _, name := range slices.Sorted(maps.Keys(doc)) {
		switch v := doc[name].(type) {
		case string:
			parsed[name] = v
		case nil:
			parsed[name] = ""
		case []any, map[string]any, map[any]any:
			return ErrFactsFile.With(
				slog.String("path", path),
				slog.String("fact", name),
				slog.String("reason", "value is not a scalar"),
			)
		default:
			parsed[name] = fmt.Sprint(v)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	maps.Copy(s.literal, parsed)

	return nil
}

// Define sets a literal fact, replacing any existing fact of the same name.
func (s *Set) Define(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.literal[name] = value
}

// Resolve implements [lookup.VariableResolver].
func (s *Set) Resolve(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolve(name)
}

// Names returns the names of all defined facts, excluding env.*.
func (s *Set) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})

	for _, m := range []map[string]string{s.literal, s.exprs, s.builtin} {
		for k := range m {
			seen[k] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}

	return names
}

func (s *Set) resolve(name string) (string, error) {
	if v, ok := s.literal[name]; ok {
		return v, nil
	}

	if _, ok := s.exprs[name]; ok {
		return s.compute(name)
	}

	if key, ok := strings.CutPrefix(name, envPrefix); ok {
		if v, ok := s.env[key]; ok {
			return v, nil
		}
	}

	if v, ok := s.builtin[name]; ok {
		return v, nil
	}

	return "", lookup.ErrUnresolvedVariable.With(slog.String("variable", name))
}

// compute evaluates a computed fact. Called with s.mu held.
func (s *Set) compute(name string) (string, error) {
	if v, ok := s.computed[name]; ok {
		return v, nil
	}

	if s.evaluating[name] {
		return "", ErrFactCycle.With(slog.String("fact", name))
	}

	s.evaluating[name] = true
	defer delete(s.evaluating, name)

	var inner error

	source := s.exprs[name]
	env := s.exprEnv(name, &inner)

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return "", ErrFactExpr.Wrap(err).With(
			slog.String("fact", name),
			slog.String("source", source),
		)
	}

	out, err := vm.Run(program, env)
	if err != nil {
		// keep the typed error of a failing fact(name) call
		if inner != nil {
			return "", inner
		}

		return "", ErrFactExpr.Wrap(err).With(
			slog.String("fact", name),
			slog.String("source", source),
		)
	}

	var result string

	switch v := out.(type) {
	case string:
		result = v
	case nil:
		result = ""
	default:
		result = fmt.Sprint(v)
	}

	s.computed[name] = result

	return result, nil
}

// exprEnv builds the environment of the expression computing self. Other
// computed facts are reachable through fact(name) only, so they are evaluated
// on demand. The first error of a fact(name) call is stored in inner.
// Called with s.mu held.
func (s *Set) exprEnv(self string, inner *error) map[string]any {
	env := make(map[string]any, len(s.builtin)+len(s.literal)+4)

	for k, v := range s.builtin {
		env[k] = v
	}

	for k, v := range s.literal {
		env[k] = v
	}

	env["env"] = maps.Clone(s.env)
	env["fact"] = func(name string) (string, error) {
		if name == self {
			*inner = ErrFactCycle.With(slog.String("fact", name))

			return "", *inner
		}

		v, err := s.resolve(name)
		if err != nil && *inner == nil {
			*inner = err
		}

		return v, err
	}
	env["mung"] = map[string]any{
		"prefix":   mungPrefix,
		"prefixif": mungPrefixIf,
	}

	return env
}
