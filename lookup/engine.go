package lookup

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/ardnew/extlookup/log"
)

// MaxArgs is the largest number of positional arguments accepted by
// [Engine.Lookup]: key, default and extra file.
const MaxArgs = 3

// Engine resolves keys against the data files of a session.
type Engine struct {
	cache    *Cache
	fsys     billy.Filesystem
	logger   log.Logger // zero value discards
	maxSubst int
	workdir  string // relative paths resolve here on the host filesystem
}

// Option configures an [Engine].
type Option func(*Engine)

// WithFilesystem sets the filesystem data files are read from.
// By default, the host filesystem is used, and relative data directories and
// extra files are resolved against the working directory at construction.
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(e *Engine) {
		e.fsys = fsys
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSubstitutions bounds placeholder replacements per string.
func WithMaxSubstitutions(n int) Option {
	return func(e *Engine) {
		e.maxSubst = n
	}
}

// New returns an engine storing its results in cache. A nil cache gives the
// engine a private one.
func New(cache *Cache, opts ...Option) *Engine {
	if cache == nil {
		cache = NewCache()
	}

	e := &Engine{
		cache:    cache,
		maxSubst: DefaultMaxSubstitutions,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.fsys == nil {
		e.fsys = osfs.New(string(filepath.Separator))
		e.workdir, _ = os.Getwd()
	}

	return e
}

// Request is the environment a lookup runs in.
type Request struct {
	// Session scopes both cache tiers, e.g. the target host name.
	Session string
	// Datadir is the directory precedence templates are relative to.
	Datadir string
	// Precedence lists path templates, highest priority first, without
	// file name extension.
	Precedence []string
	// Resolver supplies values for %{name} placeholders.
	Resolver VariableResolver
}

// Query identifies the datum to resolve.
type Query struct {
	Key string
	// Default is returned verbatim when no data file defines Key.
	Default *string
	// ExtraFile, if it exists, is searched before the precedence files.
	ExtraFile string
}

// QueryOf builds a query from positional arguments (key, default, extra
// file).
func QueryOf(args ...string) (Query, error) {
	if len(args) == 0 || len(args) > MaxArgs {
		return Query{}, ErrArity.With(
			slog.Int("got", len(args)),
			slog.String("want", "1 to "+strconv.Itoa(MaxArgs)),
		)
	}

	q := Query{Key: args[0]}

	if len(args) > 1 {
		q.Default = &args[1]
	}

	if len(args) > 2 {
		q.ExtraFile = args[2]
	}

	return q, nil
}

// Lookup resolves the positional call (key [, default [, extraFile]]).
func (e *Engine) Lookup(
	ctx context.Context,
	req Request,
	args ...string,
) (Value, error) {
	q, err := QueryOf(args...)
	if err != nil {
		return Value{}, err
	}

	return e.Resolve(ctx, req, q)
}

// Resolve returns the value of q.Key from the first data file that defines it,
// interpolated with req.Resolver. Successful results, including defaults, are
// cached in the request's session.
func (e *Engine) Resolve(
	ctx context.Context,
	req Request,
	q Query,
) (Value, error) {
	if q.Key == "" {
		return Value{}, ErrInvalidKey.With(slog.String("reason", "empty key"))
	}

	sess := e.cache.Session(req.Session)

	if v, ok := sess.Resolved(q.Key); ok {
		e.logger.TraceContext(ctx, "resolution cache hit",
			slog.String("session", req.Session),
			slog.String("key", q.Key),
		)

		return v, nil
	}

	files, err := e.Files(ctx, req, q.ExtraFile)
	if err != nil {
		return Value{}, WrapError(err).With(slog.String("key", q.Key))
	}

	raw, from, found, err := e.scan(ctx, req, files, q.Key)
	if err != nil {
		return Value{}, WrapError(err).With(slog.String("key", q.Key))
	}

	var result Value

	switch {
	case found:
		result, err = Substitute(raw, e.resolver(req), e.maxSubst)
		if err != nil {
			return Value{}, WrapError(err).With(
				slog.String("key", q.Key),
				slog.String("path", from),
			)
		}

		e.logger.DebugContext(ctx, "resolved",
			slog.String("session", req.Session),
			slog.String("key", q.Key),
			slog.String("path", from),
			slog.String("kind", result.Kind.String()),
		)

	case q.Default != nil:
		result = Scalar(*q.Default)

		e.logger.DebugContext(ctx, "resolved default",
			slog.String("session", req.Session),
			slog.String("key", q.Key),
		)

	default:
		return Value{}, ErrNotFound.With(
			slog.String("key", q.Key),
			slog.Int("files", len(files)),
		)
	}

	return sess.Store(q.Key, result), nil
}

// scan returns the raw value of key from the first file defining it.
func (e *Engine) scan(
	ctx context.Context,
	req Request,
	files []Candidate,
	key string,
) (Value, string, bool, error) {
	for _, c := range files {
		file, err := e.DataFile(ctx, req, c)
		if err != nil {
			return Value{}, "", false, err
		}

		if v, ok := file.Get(key); ok {
			return v, c.Path, true, nil
		}
	}

	return Value{}, "", false, nil
}

// Files returns the ordered data files a lookup in req would search.
func (e *Engine) Files(
	ctx context.Context,
	req Request,
	extraFile string,
) ([]Candidate, error) {
	files, err := Candidates(
		e.fsys,
		e.hostPath(req.Datadir),
		req.Precedence,
		e.resolver(req),
		e.hostPath(extraFile),
		e.maxSubst,
	)
	if err != nil {
		return nil, err
	}

	e.logger.TraceContext(ctx, "precedence expanded",
		slog.String("datadir", req.Datadir),
		slog.Int("templates", len(req.Precedence)),
		slog.Int("files", len(files)),
	)

	return files, nil
}

// Keys returns every key defined along the search path of req, each once, in
// the order a lookup would find it.
func (e *Engine) Keys(
	ctx context.Context,
	req Request,
	extraFile string,
) ([]string, error) {
	files, err := e.Files(ctx, req, extraFile)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var keys []string

	for _, c := range files {
		file, err := e.DataFile(ctx, req, c)
		if err != nil {
			return nil, err
		}

		for _, k := range file.Keys {
			if _, ok := seen[k]; ok {
				continue
			}

			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}

	return keys, nil
}

// DataFile returns the parsed content of c from the file tier of the
// request's session.
func (e *Engine) DataFile(
	ctx context.Context,
	req Request,
	c Candidate,
) (*DataFile, error) {
	sess := e.cache.Session(req.Session)

	file, cached, err := sess.File(e.fsys, c.Path, c.Format)
	if err != nil {
		return nil, err
	}

	if !cached {
		e.logger.TraceContext(ctx, "loaded data file",
			slog.String("session", sess.ID()),
			slog.String("path", c.Path),
			slog.String("format", c.Format.String()),
			slog.String("checksum", strconv.FormatUint(file.Checksum, 16)),
			slog.Int("keys", file.Len()),
		)
	}

	return file, nil
}

// Discard drops the caches of session.
func (e *Engine) Discard(session string) {
	e.cache.Discard(session)
}

// hostPath anchors a relative path at the working directory when reading
// from the host filesystem.
func (e *Engine) hostPath(p string) string {
	if p == "" || e.workdir == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(e.workdir, p)
}

// resolver returns req.Resolver, or one that knows no variables.
func (e *Engine) resolver(req Request) VariableResolver {
	if req.Resolver != nil {
		return req.Resolver
	}

	return MapResolver(nil)
}
