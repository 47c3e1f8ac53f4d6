package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/extlookup/lookup"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Target is everything a command needs to query data files.
type Target struct {
	Engine  *lookup.Engine
	Request lookup.Request
	Output  Output
	// Stdout receives command output. Defaults to os.Stdout.
	Stdout io.Writer
}

type targetKey struct{}

// WithTarget returns a new context.Context containing t.
func WithTarget(ctx context.Context, t Target) context.Context {
	return context.WithValue(ctx, targetKey{}, t)
}

func targetFrom(ctx context.Context) (Target, error) {
	t, ok := ctx.Value(targetKey{}).(Target)
	if !ok || t.Engine == nil {
		return Target{}, ErrNoTarget
	}

	if t.Stdout == nil {
		t.Stdout = os.Stdout
	}

	return t, nil
}
