package generator

import (
	"fmt"
	"strings"

	"github.com/byte4ever/segment_templates/diag"
	"github.com/byte4ever/segment_templates/indent"
	"github.com/byte4ever/segment_templates/parser"
	"github.com/byte4ever/segment_templates/segment"
	"github.com/byte4ever/segment_templates/token"
)

// Log messages.
const (
	MsgLoadFailed        = "template load failed, state reset"
	MsgDelimitersInvalid = "token delimiters rejected, state reset"
	MsgNotLoaded         = "no template loaded"
	MsgUnknownSegment    = "unknown segment"
)

// Generator renders segments of one template.
type Generator struct {
	cfg    parser.Config
	log    diag.Logger
	pos    diag.Position
	tpl    *segment.Template
	indent *indent.Processor
	tokens *token.Processor
	buf    []string
	loaded bool
}

// New returns a Generator with no template loaded.
func New(log diag.Logger, cfg parser.Config) *Generator {
	gen := &Generator{
		cfg: cfg,
		log: log,
		tpl: segment.NewTemplate(),
	}

	gen.indent = indent.New(log, &gen.pos)
	gen.tokens = token.New(log, &gen.pos)

	return gen
}

// LoadTemplate parses lines and replaces the current template. On failure
// every registry and processor is reset and the error is returned.
func (gen *Generator) LoadTemplate(lines []string) error {
	const errCtx = "loading template"

	tpl, err := parser.Load(lines, gen.cfg, gen.log, &gen.pos)
	if err != nil {
		gen.ResetAll()
		gen.log.Log(diag.Error, nil, MsgLoadFailed, err.Error())

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	gen.tpl = tpl
	gen.loaded = true

	return nil
}

// Loaded reports whether a template is loaded.
func (gen *Generator) Loaded() bool {
	return gen.loaded
}

// Template returns the loaded template.
func (gen *Generator) Template() *segment.Template {
	return gen.tpl
}

// Segments returns the segment names in declaration order.
func (gen *Generator) Segments() []string {
	return gen.tpl.Names()
}

// GenerateSegment appends the rendering of a segment to the buffer.
// Problems are reported through the log only.
func (gen *Generator) GenerateSegment(name string) {
	if !gen.loaded {
		gen.log.Log(diag.Error, nil, MsgNotLoaded, name)
		return
	}

	ctrl := gen.tpl.Control(name)
	if ctrl == nil {
		gen.log.Log(diag.Error, nil, MsgUnknownSegment, name)
		return
	}

	gen.render(name, ctrl)
	gen.pos.Clear()
}

// InsertSegment renders a segment like GenerateSegment, then restores the
// running column to its value before the call.
func (gen *Generator) InsertSegment(name string) {
	tabSize := gen.indent.TabSize()

	gen.indent.Save()
	gen.GenerateSegment(name)
	gen.indent.Restore()
	gen.indent.SetTabSize(tabSize)
}

func (gen *Generator) render(name string, ctrl *segment.ControlItem) {
	if !ctrl.IsFirstTime && ctrl.PadSegment != "" {
		gen.pad(ctrl.PadSegment)
	}

	gen.indent.SetTabSize(ctrl.TabSize)

	for idx, item := range gen.tpl.Lines(name) {
		gen.pos.Set(name, idx+1)

		col := gen.indent.Indent(item, ctrl)
		text := gen.tokens.Replace(name, item.Text)

		if text == "" {
			gen.buf = append(gen.buf, "")
			continue
		}

		gen.buf = append(gen.buf, strings.Repeat(" ", col)+text)
	}

	ctrl.IsFirstTime = false
}

// pad renders a pad segment without letting it move the running column.
func (gen *Generator) pad(name string) {
	ctrl := gen.tpl.Control(name)
	if ctrl == nil {
		gen.log.Log(diag.Error, &gen.pos, MsgUnknownSegment, name)
		return
	}

	gen.indent.Save()
	gen.render(name, ctrl)
	gen.indent.Restore()
}

// SetTokenDelimiters replaces the token markers. Invalid markers reset
// every registry and processor.
func (gen *Generator) SetTokenDelimiters(start, end, escape string) error {
	const errCtx = "configuring generator"

	if err := gen.tokens.SetDelimiters(start, end, escape); err != nil {
		gen.ResetAll()
		gen.log.Log(diag.Error, nil, MsgDelimitersInvalid, err.Error())

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// ResetTokenDelimiters restores the default token markers.
func (gen *Generator) ResetTokenDelimiters() {
	gen.tokens.ResetDelimiters()
}

// LoadTokenValues binds token values for a segment.
func (gen *Generator) LoadTokenValues(name string, values map[string]any) {
	gen.tokens.LoadValues(name, values)
}

// ClearTokens drops every token binding.
func (gen *Generator) ClearTokens() {
	gen.tokens.Clear()
}

// Column returns the running column.
func (gen *Generator) Column() int {
	return gen.indent.Column()
}

// Lines returns the generated lines.
func (gen *Generator) Lines() []string {
	return append([]string(nil), gen.buf...)
}

// Text returns the generated lines joined by newlines, with a final
// newline when the buffer is not empty.
func (gen *Generator) Text() string {
	if len(gen.buf) == 0 {
		return ""
	}

	return strings.Join(gen.buf, "\n") + "\n"
}

// ClearBuffer drops the generated lines.
func (gen *Generator) ClearBuffer() {
	gen.buf = nil
}

// ResetAll unloads the template, clears the buffer and the bindings and
// resets both processors.
func (gen *Generator) ResetAll() {
	gen.tpl = segment.NewTemplate()
	gen.loaded = false
	gen.buf = nil
	gen.pos.Clear()
	gen.indent.Reset()
	gen.tokens.Clear()
	gen.tokens.ResetDelimiters()
}
