// Package cli contains the command line interface for extlookup.
//
// # Usage
//
//	extlookup [flags] KEY [DEFAULT [FILE]]
//	extlookup files [FILE]
//	extlookup keys [PATTERN]
//	extlookup init [--force]
//
// Lookup is the default command. A lookup searches the data files named by
// the precedence templates, relative to the data directory, after replacing
// %{name} placeholders with facts:
//
//	extlookup -d /etc/puppet/extdata \
//	  -p 'host/%{fqdn},domain/%{domain},common' \
//	  -f environment=production ntp_servers
//
// # Facts
//
// Placeholders resolve against, in order: facts defined with --fact, facts
// files given with --facts, computed facts (--fact-expr), the process
// environment as env.NAME and the built-in host facts hostname, fqdn,
// domain, os, arch, user and cwd. The fqdn fact also names the cache
// session unless --session is given.
//
// # Configuration
//
// Flags are also read from $XDG_CONFIG_HOME/extlookup/config.yaml (see
// [resolve]) and config.json in the same directory, and from environment
// variables named EXTLOOKUP_ followed by the flag name, e.g.
// EXTLOOKUP_PRECEDENCE. Command-line flags take priority. The init command
// writes the current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/extlookup/pprof)
package cli
