// Package log provides a thin front-end over log/slog with an additional
// Trace level, selectable text/JSON output, colorized pretty printing,
// and a package-level default logger configured via functional options.
//
// The zero value Logger discards all messages, so library code can log
// unconditionally without nil checks.
//
// Example:
//
//	log.Config(
//	    log.WithLevel(log.LevelDebug),
//	    log.WithFormat(log.FormatJSON),
//	)
//	log.Debug("compiled", slog.Int("keys", n))
package log
