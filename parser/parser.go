package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/byte4ever/segment_templates/indent"
	"github.com/byte4ever/segment_templates/segment"
)

// Line markers and layout.
const (
	HeaderMarker  = '#'
	CommentMarker = '*'

	// NameColumn is where a header's segment name starts.
	NameColumn = 2

	// TextColumn is where a body line's text starts.
	TextColumn = 4
)

// Header option keys.
const (
	OptionFirstTimeIndent = "FTI"
	OptionPadSegment      = "PAD"
	OptionTabSize         = "TAB"
)

// ErrFatalLine reports a body line whose control field cannot be parsed.
var ErrFatalLine = errors.New("malformed body line")

// Kind is the classification of a raw line.
type Kind int

// Line kinds.
const (
	Body Kind = iota
	Header
	Comment
)

// Classify returns the kind of a raw line from its first column.
func Classify(line string) Kind {
	if line == "" {
		return Body
	}

	switch line[0] {
	case HeaderMarker:
		return Header
	case CommentMarker:
		return Comment
	default:
		return Body
	}
}

// HeaderLine is the raw content of a header line.
type HeaderLine struct {
	// Name is the text from NameColumn up to the first space.
	Name string

	// Options are the space separated fields after the name. An empty
	// field marks a doubled space.
	Options []string

	// Blank reports whether column 1 is blank as required.
	Blank bool
}

// ParseHeader splits a header line. Trailing blanks are ignored.
func ParseHeader(line string) HeaderLine {
	line = strings.TrimRight(line, " ")

	hl := HeaderLine{Blank: len(line) < 2 || line[1] == ' '}

	if len(line) <= NameColumn {
		return hl
	}

	rest := line[NameColumn:]

	name, opts, found := strings.Cut(rest, " ")
	hl.Name = name

	if found {
		hl.Options = strings.Split(opts, " ")
	}

	return hl
}

// SplitOption splits a KEY=VALUE field. It fails on an empty key or value
// and on more than one '='.
func SplitOption(field string) (string, string, bool) {
	if strings.Count(field, "=") != 1 {
		return "", "", false
	}

	key, val, _ := strings.Cut(field, "=")
	if key == "" || val == "" {
		return "", "", false
	}

	return key, val, true
}

// ParseBody parses a body line into a TextItem.
func ParseBody(line string) (segment.TextItem, error) {
	field := [3]byte{' ', ' ', ' '}
	copy(field[:], line)

	var item segment.TextItem

	switch field[0] {
	case ' ', 'R':
		item.IsRelative = true
	case 'A':
	case 'r':
		item.IsRelative = true
		item.IsOneTime = true
	case 'a':
		item.IsOneTime = true
	default:
		return segment.TextItem{}, fmt.Errorf(
			"%w: unknown control code %q", ErrFatalLine, field[0],
		)
	}

	val, err := parseIndent(field[1], field[2])
	if err != nil {
		return segment.TextItem{}, err
	}

	item.Indent = val

	if len(line) > TextColumn-1 && line[TextColumn-1] != ' ' {
		return segment.TextItem{}, fmt.Errorf(
			"%w: column %d must be blank", ErrFatalLine, TextColumn-1,
		)
	}

	if len(line) > TextColumn {
		item.Text = line[TextColumn:]
	}

	return item, nil
}

func parseIndent(sign, digit byte) (int, error) {
	if sign == ' ' && digit == ' ' {
		return 0, nil
	}

	if sign != ' ' && sign != '+' && sign != '-' {
		return 0, fmt.Errorf("%w: bad indent sign %q", ErrFatalLine, sign)
	}

	if digit < '0' || digit > '9' {
		return 0, fmt.Errorf("%w: bad indent digit %q", ErrFatalLine, digit)
	}

	val, ok := indent.IsValidIndentValue(string([]byte{sign, digit}))
	if !ok {
		return 0, fmt.Errorf(
			"%w: bad indent %q", ErrFatalLine, string([]byte{sign, digit}),
		)
	}

	return val, nil
}
