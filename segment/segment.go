package segment

// Tab size bounds and the first-time indent domain.
const (
	MinTabSize = 1
	MaxTabSize = 9
	MinIndent  = -9
	MaxIndent  = 9
)

// ControlItem holds the header options of one segment.
type ControlItem struct {
	// IsFirstTime is true until the segment has been rendered once.
	IsFirstTime bool

	// FirstTimeIndent is the column baseline, in tabs, used by the first
	// render. Zero disables it.
	FirstTimeIndent int

	// PadSegment names a segment rendered ahead of this one on repeat
	// renders. Empty means none.
	PadSegment string

	// TabSize is the number of columns per indent step.
	TabSize int
}

// NewControlItem returns the defaults for a freshly declared segment.
func NewControlItem(tabSize int) *ControlItem {
	return &ControlItem{IsFirstTime: true, TabSize: tabSize}
}

// TextItem is one parsed body line.
type TextItem struct {
	// Indent is a signed number of tabs.
	Indent int

	// IsRelative applies Indent to the running column instead of
	// column zero.
	IsRelative bool

	// IsOneTime keeps the running column unchanged after this line.
	IsOneTime bool

	Text string
}
