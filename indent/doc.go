// Package indent tracks the running output column while segments are
// rendered. Each body line moves the column to an absolute or relative
// tab position, or overrides it for that line only. A stack of saved
// columns lets a nested segment render without disturbing its caller.
package indent
