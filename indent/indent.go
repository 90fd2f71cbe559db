package indent

import (
	"strconv"
	"strings"

	"github.com/byte4ever/segment_templates/diag"
	"github.com/byte4ever/segment_templates/segment"
)

// DefaultTabSize is the tab size of a fresh Processor.
const DefaultTabSize = 4

// Log messages.
const (
	MsgTruncated      = "indent truncated to column 0"
	MsgFirstTruncated = "first-time indent truncated to column 0"
	MsgTabSizeClamped = "tab size clamped"
	MsgRestoreNoSaved = "indent restore without saved state"
)

// Processor computes per-line indentation.
type Processor struct {
	log     diag.Logger
	pos     *diag.Position
	column  int
	tabSize int
	saved   []int
}

// New returns a Processor at column 0. pos is the shared position
// attached to log entries and may be nil.
func New(log diag.Logger, pos *diag.Position) *Processor {
	return &Processor{
		log:     log,
		pos:     pos,
		tabSize: DefaultTabSize,
	}
}

// Indent returns the column for item and advances the running column
// unless the item is one-time. On the first render of a segment that
// declares a first-time indent, the line is placed at that indent
// whatever its own code and value.
func (pr *Processor) Indent(
	item segment.TextItem,
	ctrl *segment.ControlItem,
) int {
	if ctrl != nil && ctrl.IsFirstTime {
		ctrl.IsFirstTime = false

		if ctrl.FirstTimeIndent != 0 {
			return pr.advance(item, pr.FirstTimeIndent(ctrl))
		}
	}

	target := item.Indent * pr.tabSize
	if item.IsRelative {
		target += pr.column
	}

	if target < 0 {
		pr.log.Log(
			diag.Warning, pr.pos, MsgTruncated,
			strconv.Itoa(target),
		)

		target = 0
	}

	return pr.advance(item, target)
}

func (pr *Processor) advance(item segment.TextItem, target int) int {
	if !item.IsOneTime {
		pr.column = target
	}

	return target
}

// FirstTimeIndent returns the column of a first render's first line,
// clamped at 0. The running column is not modified.
func (pr *Processor) FirstTimeIndent(ctrl *segment.ControlItem) int {
	col := ctrl.FirstTimeIndent * pr.tabSize
	if col < 0 {
		pr.log.Log(
			diag.Warning, pr.pos, MsgFirstTruncated,
			strconv.Itoa(col),
		)

		return 0
	}

	return col
}

// Save pushes the running column.
func (pr *Processor) Save() {
	pr.saved = append(pr.saved, pr.column)
}

// Restore pops the last saved column. With nothing saved it logs an error
// and keeps the current column.
func (pr *Processor) Restore() {
	if len(pr.saved) == 0 {
		pr.log.Log(diag.Error, pr.pos, MsgRestoreNoSaved)
		return
	}

	last := len(pr.saved) - 1
	pr.column = pr.saved[last]
	pr.saved = pr.saved[:last]
}

// Depth returns the number of saved columns.
func (pr *Processor) Depth() int {
	return len(pr.saved)
}

// Reset returns to column 0, the default tab size and an empty stack.
func (pr *Processor) Reset() {
	pr.column = 0
	pr.tabSize = DefaultTabSize
	pr.saved = nil
}

// SetTabSize sets the active tab size, clamping it to 1..9.
func (pr *Processor) SetTabSize(size int) {
	clamped := clampTabSize(size)
	if clamped != size {
		pr.log.Log(
			diag.Warning, pr.pos, MsgTabSizeClamped,
			strconv.Itoa(size), strconv.Itoa(clamped),
		)
	}

	pr.tabSize = clamped
}

// TabSize returns the active tab size.
func (pr *Processor) TabSize() int {
	return pr.tabSize
}

// Column returns the running column.
func (pr *Processor) Column() int {
	return pr.column
}

// IsValidIndentValue parses a signed single-digit indent such as "-3",
// "+2" or "7".
func IsValidIndentValue(s string) (int, bool) {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}

	if val < segment.MinIndent || val > segment.MaxIndent {
		return val, false
	}

	return val, true
}

// IsValidTabSizeValue parses a tab size. A numeric value outside 1..9 is
// returned clamped with ok set to false; callers distinguish it from a
// non-numeric value through numeric.
func IsValidTabSizeValue(s string) (val int, numeric bool, ok bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false, false
	}

	clamped := clampTabSize(parsed)

	return clamped, true, clamped == parsed
}

func clampTabSize(size int) int {
	switch {
	case size < segment.MinTabSize:
		return segment.MinTabSize
	case size > segment.MaxTabSize:
		return segment.MaxTabSize
	default:
		return size
	}
}
