// Package token substitutes named placeholders in rendered text.
//
// A placeholder is a name between a start and an end marker, "<<NAME>>"
// with the default markers. An escape marker directly in front of a start
// or end marker makes it literal. Values are bound per segment and looked
// up in the bindings of the segment being rendered.
//
// Text is scanned once from left to right; substituted values are never
// rescanned. Unknown, invalid or unterminated placeholders are left in the
// output and reported through the log.
package token
