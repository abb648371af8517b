// Package log provides structured trace logging for instrument
// sessions.
//
// Every session operation (write, read, clear, attribute access, event
// subscription changes, lifecycle transitions) can be captured as an
// Event and handed to a Logger. Events are encoded as CBOR with
// integer keys, which keeps capture files compact enough to leave
// tracing enabled on long bench runs.
//
// # Loggers
//
//   - NoopLogger discards everything (the default).
//   - FileLogger appends CBOR events to a capture file.
//   - SlogAdapter bridges events into a log/slog logger for console
//     output during development.
//   - MultiLogger fans out to several loggers at once.
//
// # Reading Captures
//
// Reader iterates a capture file, optionally filtered by session,
// category, direction, or time range.
//
// Logging must never affect session behavior: loggers swallow their
// own errors, and implementations must be safe for concurrent use
// since driver callback contexts can emit events concurrently with the
// session owner.
package log
