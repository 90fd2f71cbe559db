// Package segment holds the parsed form of a template: the ordered
// registry of named segments with their body lines, and the control
// options declared on each segment header.
package segment
