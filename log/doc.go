// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("lookup", slog.String("key", "ntp_servers"))
//
// # Configuration
//
// Loggers are configured with functional options when created, or derived
// from an existing logger with [Logger.Wrap]:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithPretty(true),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Debug], [InfoContext], ...) write to a
// default logger that is reconfigured with [Config].
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for per-file and
// per-cache-entry detail. Messages below the configured level are discarded.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText]. Text output can be colorized
// with [WithPretty]. Time formatting accepts named layouts of the [time]
// package or a custom layout; an empty layout or "none" omits timestamps.
package log
