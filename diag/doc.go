// Package diag carries the diagnostics side of template loading and
// rendering: a mutable Position naming the segment and line being worked
// on, and a Log that accumulates categorized entries. Recoverable
// conditions never surface as errors to callers; they end up here.
//
// A Log can forward every entry to a *slog.Logger as it is recorded and
// can export the accumulated entries as JSON.
package diag
