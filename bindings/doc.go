// Package bindings loads token values from YAML or JSON files. A file
// holds global values, which apply to every segment, and per-segment
// values that override them:
//
//	global:
//	  AUTHOR: "{BUILD_USER}"
//	segments:
//	  Header:
//	    NAME: Bob
//
// A null value binds the token to null rather than leaving it unbound.
package bindings
