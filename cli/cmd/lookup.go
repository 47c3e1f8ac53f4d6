package cmd

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/extlookup/log"
	"github.com/ardnew/extlookup/lookup"
)

// maxSuggestions bounds the similar keys reported when a key is not found.
const maxSuggestions = 3

// Lookup resolves a key against the configured data files.
type Lookup struct {
	Args []string `arg:"" help:"KEY [DEFAULT [FILE]]: key to resolve, value returned if no data file defines it, data file searched first" name:"key"`
}

// Run executes the lookup command.
func (l *Lookup) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	t, err := targetFrom(ctx)
	if err != nil {
		return err
	}

	v, err := t.Engine.Lookup(ctx, t.Request, l.Args...)
	if err != nil {
		ee := ErrLookup.Wrap(err)

		if errors.Is(err, lookup.ErrNotFound) {
			if similar := l.suggest(ctx, t); len(similar) > 0 {
				ee = ee.With(slog.String("similar", strings.Join(similar, ",")))
			}
		}

		return ee
	}

	log.DebugContext(ctx, "lookup",
		slog.String("key", l.Args[0]),
		slog.String("kind", v.Kind.String()),
	)

	if t.Output != OutputText {
		return t.Output.encode(t.Stdout, v)
	}

	switch v.Kind {
	case lookup.KindMap:
		return OutputYAML.encode(t.Stdout, v)

	case lookup.KindList:
		// One element per line; elements may themselves contain commas.
		lines := make([]string, len(v.List))
		for i, item := range v.List {
			lines[i] = item.String()
		}

		return writeLines(t.Stdout, lines...)

	default:
		return writeLines(t.Stdout, v.String())
	}
}

// suggest returns the keys along the search path that best match the key
// that was not found.
func (l *Lookup) suggest(ctx context.Context, t Target) []string {
	var extra string
	if len(l.Args) > 2 {
		extra = l.Args[2]
	}

	keys, err := t.Engine.Keys(ctx, t.Request, extra)
	if err != nil {
		log.DebugContext(ctx, "no suggestions", slog.Any("error", err))

		return nil
	}

	matches := fuzzy.Find(l.Args[0], keys)

	similar := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(similar) == maxSuggestions {
			break
		}

		similar = append(similar, m.Str)
	}

	return similar
}
