package diag

import "strconv"

// Position names the segment and the 1-based line currently being parsed
// or rendered. The zero value means "no position".
type Position struct {
	Segment string
	Line    int
}

// Set replaces both fields.
func (po *Position) Set(segment string, line int) {
	po.Segment = segment
	po.Line = line
}

// SetLine moves to another line of the same segment.
func (po *Position) SetLine(line int) {
	po.Line = line
}

// Clear resets the position to its zero value.
func (po *Position) Clear() {
	po.Segment = ""
	po.Line = 0
}

func (po Position) String() string {
	if po.Segment == "" {
		return "line " + strconv.Itoa(po.Line)
	}

	return po.Segment + ":" + strconv.Itoa(po.Line)
}
