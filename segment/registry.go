package segment

// Template is a loaded template: segments in declaration order and their
// control items. Both maps share the same key set.
type Template struct {
	names    []string
	lines    map[string][]TextItem
	controls map[string]*ControlItem
}

// NewTemplate returns an empty template.
func NewTemplate() *Template {
	return &Template{
		lines:    make(map[string][]TextItem),
		controls: make(map[string]*ControlItem),
	}
}

// Add declares a segment. It returns false when the name is already
// declared.
func (tp *Template) Add(name string, ctrl *ControlItem) bool {
	if _, ok := tp.controls[name]; ok {
		return false
	}

	tp.names = append(tp.names, name)
	tp.lines[name] = nil
	tp.controls[name] = ctrl

	return true
}

// Append adds a body line to a declared segment.
func (tp *Template) Append(name string, item TextItem) {
	if _, ok := tp.controls[name]; !ok {
		return
	}

	tp.lines[name] = append(tp.lines[name], item)
}

// Remove drops a segment and its control item.
func (tp *Template) Remove(name string) {
	if _, ok := tp.controls[name]; !ok {
		return
	}

	delete(tp.lines, name)
	delete(tp.controls, name)

	for idx, na := range tp.names {
		if na == name {
			tp.names = append(tp.names[:idx], tp.names[idx+1:]...)
			break
		}
	}
}

// Has reports whether name is declared.
func (tp *Template) Has(name string) bool {
	_, ok := tp.controls[name]
	return ok
}

// Names returns the segment names in declaration order.
func (tp *Template) Names() []string {
	return append([]string(nil), tp.names...)
}

// Lines returns the body lines of a segment.
func (tp *Template) Lines(name string) []TextItem {
	return tp.lines[name]
}

// Control returns the control item of a segment, or nil.
func (tp *Template) Control(name string) *ControlItem {
	return tp.controls[name]
}

// Len returns the number of declared segments.
func (tp *Template) Len() int {
	return len(tp.names)
}
