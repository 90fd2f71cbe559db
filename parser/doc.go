// Package parser reads the fixed-column template format into a
// segment.Template.
//
// Column 0 of every line selects its kind:
//
//	# NAME KEY=VALUE ...   header: segment name from column 2, then options
//	* anything             comment, ignored
//	CSD text               body line
//
// A body line starts with a three-column control field. C is the control
// code, S the sign and D the digit of the indent in tabs. Column 3 must be
// blank and the text starts at column 4:
//
//	code   relative  one-time
//	' ' R  yes       no
//	A      no        no
//	r      yes       yes
//	a      no        yes
//
// S is '+', '-' or blank; D is '0'..'9', or blank together with a blank S
// for an indent of 0. Short lines are padded with blanks, so an empty line
// is an empty body line that keeps the current column.
//
// Header options are FTI (first-time indent, -9..9), PAD (pad segment
// name) and TAB (tab size, 1..9). Problems with names and options are
// logged and defaulted. A malformed control field aborts the load.
package parser
