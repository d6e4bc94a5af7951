// Package logging defines the structured-logging interface used across the
// directory console. The default implementation wraps log/slog.
package logging

import "context"

// Logger is the logging surface the console depends on. Arguments after msg
// are alternating keys and values:
//
//	log.Info(ctx, "group created", "group", name, "id", id)
//
// Operator-facing output never goes through a Logger; records go to stderr
// so they do not interleave with menus.
type Logger interface {
	// Debug is for per-request detail such as method, path and status.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)

	// Warn marks failures that were contained, e.g. one unresolved member.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying args on every record.
	With(args ...any) Logger
}
