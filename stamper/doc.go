// Package stamper reads Bazel-style workspace status files and expands
// single-brace {VAR} stamp references inside token binding values.
// LoadStamps parses one or more status files into a variable map;
// ExpandValues applies it to a set of bindings before they are handed to
// the renderer.
package stamper
