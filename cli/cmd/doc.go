// Package cmd implements the extlookup subcommands: lookup, files, keys and
// init.
//
// Commands receive their shared state through the [context.Context] passed
// to Run. The CLI stores the parsed [kong.Context] with [WithContext] and the
// resolved [Target] with [WithTarget].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
