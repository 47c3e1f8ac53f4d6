// Package lookup resolves keys against a precedence-ordered set of data
// files.
//
// # Data Files
//
// Two formats are supported, selected by file name extension:
//
//   - Tabular (.csv): one row per key. The first cell is the key. A row of
//     two cells defines a scalar; a longer row defines a list of the cells
//     following the key. Only the first row for a key is used.
//   - Structured (.yaml): a mapping from key to scalar, list or nested
//     mapping. Key order is preserved.
//
// # Precedence
//
// A lookup searches the files named by a list of path templates relative to
// a data directory. Templates may contain %{name} placeholders:
//
//	precedence: ["hosts/%{fqdn}", "env/%{environment}", "common"]
//
// For each template the structured file is used if it exists, otherwise the
// tabular file, otherwise the template is skipped. The first file defining
// the key wins.
//
// # Interpolation
//
// Placeholders in matched values are replaced using a [VariableResolver]
// until none remain. A replacement may introduce further placeholders. The
// sequence \%{ is unescaped to %{ before substitution. Map keys are never
// interpolated, and defaults are returned as given.
//
// # Caching
//
// An [Engine] stores parsed files and resolved keys in a [Cache], scoped by
// session (typically the target host). Repeated lookups of a key in the same
// session touch no files. [Cache.Discard] drops a session.
//
// # Example
//
//	engine := lookup.New(lookup.NewCache())
//	v, err := engine.Lookup(ctx, lookup.Request{
//		Session:    "web01",
//		Datadir:    "/etc/extdata",
//		Precedence: []string{"%{fqdn}", "common"},
//		Resolver:   lookup.MapResolver{"fqdn": "web01.example.com"},
//	}, "ntp_servers", "pool.ntp.org")
package lookup
