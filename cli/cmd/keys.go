package cmd

import (
	"context"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Keys lists the keys defined along the search path, in the order a lookup
// would find them. With a pattern, only fuzzy matches are listed, best first.
type Keys struct {
	Pattern   string `arg:"" help:"Fuzzy pattern keys must match"          optional:""`
	ExtraFile string `help:"Data file searched before the precedence files" name:"file" type:"path"`
}

// Run executes the keys command.
func (k *Keys) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	t, err := targetFrom(ctx)
	if err != nil {
		return err
	}

	keys, err := t.Engine.Keys(ctx, t.Request, k.ExtraFile)
	if err != nil {
		return ErrListKeys.Wrap(err)
	}

	if k.Pattern == "" {
		if t.Output != OutputText {
			return t.Output.encode(t.Stdout, nonNil(keys))
		}

		return writeLines(t.Stdout, keys...)
	}

	matches := fuzzy.Find(k.Pattern, keys)

	if t.Output != OutputText {
		found := make([]string, len(matches))
		for i, m := range matches {
			found[i] = m.Str
		}

		return t.Output.encode(t.Stdout, found)
	}

	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = highlight(m)
	}

	return writeLines(t.Stdout, lines...)
}

// highlight renders the matched characters of m in bold.
func highlight(m fuzzy.Match) string {
	var sb strings.Builder

	for i, r := range m.Str {
		if slices.Contains(m.MatchedIndexes, i) {
			sb.WriteString(matchStyle.Render(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
