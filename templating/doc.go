// Package templating wires the segment renderer to files. The Engine type
// holds configuration (token tags, loader settings, stamp and binding
// files) and renders a template via the Expand method: it reads the
// template lines, binds token values per segment, renders the requested
// segments and hands the result to a Sink.
//
// Configuration can come from a YAML file (LoadConfig) and be overridden
// by CLI flags, see cmd/main.go.
package templating
