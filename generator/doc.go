// Package generator renders segments of a loaded template into an
// in-memory buffer of output lines.
//
// A Generator owns the template, the indent and token processors and the
// diagnostics position; one render is in flight at a time. Segments can be
// rendered in any order and any number of times. The running column
// carries over from one call to the next, except across InsertSegment and
// pad segments, which save and restore it.
package generator
