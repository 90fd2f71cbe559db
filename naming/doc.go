// Package naming validates segment and token names and generates
// deterministic fallback names for segments whose declared name cannot be
// used.
package naming
