package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/byte4ever/segment_templates/diag"
	"github.com/byte4ever/segment_templates/indent"
	"github.com/byte4ever/segment_templates/naming"
	"github.com/byte4ever/segment_templates/segment"
)

// Log messages.
const (
	MsgHeaderColumn      = "header column 1 must be blank"
	MsgInvalidName       = "invalid segment name replaced"
	MsgDuplicateName     = "duplicate segment name replaced"
	MsgMissingHeader     = "missing initial header, default segment created"
	MsgEmptySegment      = "empty segment dropped"
	MsgMalformedOption   = "malformed header option dropped"
	MsgDuplicateOption   = "duplicate header option dropped"
	MsgUnknownOption     = "unknown header option dropped"
	MsgFTIDisabled       = "first-time indent 0 disables first-time indent"
	MsgInvalidFTI        = "invalid first-time indent ignored"
	MsgInvalidTab        = "invalid tab size ignored"
	MsgTabClamped        = "tab size clamped"
	MsgInvalidPad        = "invalid pad segment name ignored"
	MsgPadSelf           = "pad segment references its own segment"
	MsgPadUndefined      = "pad segment not defined earlier"
	MsgPadMultipleLevels = "pad segment has its own pad segment, multiple levels not allowed"
	MsgPadDropped        = "pad segment was dropped, reference cleared"
)

// ErrNoSegments is returned when a load yields no segment at all.
var ErrNoSegments = errors.New("template defines no segments")

// Config tunes the loader.
type Config struct {
	// DefaultNamePrefix prefixes generated segment names.
	DefaultNamePrefix string

	// NameCeiling bounds the generated names.
	NameCeiling int

	// DefaultTabSize is the tab size of the first segment without TAB.
	DefaultTabSize int
}

// DefaultConfig returns the loader defaults.
func DefaultConfig() Config {
	return Config{
		DefaultNamePrefix: "DefaultSegment",
		NameCeiling:       999,
		DefaultTabSize:    indent.DefaultTabSize,
	}
}

// withDefaults fills unset or out-of-range fields from DefaultConfig.
func (cf Config) withDefaults() Config {
	def := DefaultConfig()

	if cf.DefaultNamePrefix == "" {
		cf.DefaultNamePrefix = def.DefaultNamePrefix
	}

	if cf.NameCeiling <= 0 {
		cf.NameCeiling = def.NameCeiling
	}

	if cf.DefaultTabSize < segment.MinTabSize ||
		cf.DefaultTabSize > segment.MaxTabSize {
		cf.DefaultTabSize = def.DefaultTabSize
	}

	return cf
}

type loader struct {
	cfg     Config
	log     diag.Logger
	pos     *diag.Position
	namer   *naming.Namer
	tpl     *segment.Template
	current string
	tabSize int
}

// Load parses lines into a template. Content problems are logged and the
// load goes on. A malformed body line, an exhausted default name sequence
// or an empty result aborts it: the returned template is then empty.
func Load(
	lines []string,
	cfg Config,
	log diag.Logger,
	pos *diag.Position,
) (*segment.Template, error) {
	const errCtx = "loading template"

	if pos == nil {
		pos = &diag.Position{}
	}

	cfg = cfg.withDefaults()

	ld := &loader{
		cfg:     cfg,
		log:     log,
		pos:     pos,
		namer:   naming.NewNamer(cfg.DefaultNamePrefix, cfg.NameCeiling),
		tpl:     segment.NewTemplate(),
		tabSize: cfg.DefaultTabSize,
	}

	pos.Clear()

	for idx, line := range lines {
		pos.Set(ld.current, idx+1)

		if err := ld.line(strings.TrimSuffix(line, "\r")); err != nil {
			return segment.NewTemplate(), fmt.Errorf(
				"%s: line %d: %w", errCtx, idx+1, err,
			)
		}
	}

	ld.finish()

	if ld.tpl.Len() == 0 {
		return segment.NewTemplate(), fmt.Errorf(
			"%s: %w", errCtx, ErrNoSegments,
		)
	}

	return ld.tpl, nil
}

func (ld *loader) line(line string) error {
	switch Classify(line) {
	case Comment:
		return nil
	case Header:
		return ld.header(ParseHeader(line))
	}

	item, err := ParseBody(line)
	if err != nil {
		return err
	}

	if ld.current == "" {
		ctrl := segment.NewControlItem(ld.tabSize)

		name, err := ld.namer.Next(ld.tpl.Has)
		if err != nil {
			return err
		}

		ld.log.Log(diag.Warning, ld.pos, MsgMissingHeader, name)
		ld.open(name, ctrl)
	}

	ld.tpl.Append(ld.current, item)

	return nil
}

func (ld *loader) header(hl HeaderLine) error {
	if !hl.Blank {
		ld.log.Log(diag.Warning, ld.pos, MsgHeaderColumn)
	}

	name := hl.Name

	switch {
	case !naming.IsValid(name):
		alt, err := ld.namer.Next(ld.tpl.Has)
		if err != nil {
			return err
		}

		ld.log.Log(diag.Warning, ld.pos, MsgInvalidName, name, alt)
		name = alt

	case ld.tpl.Has(name):
		alt, err := ld.namer.Next(ld.tpl.Has)
		if err != nil {
			return err
		}

		ld.log.Log(diag.Warning, ld.pos, MsgDuplicateName, name, alt)
		name = alt
	}

	ld.pos.Segment = name

	ctrl := segment.NewControlItem(ld.tabSize)
	ld.options(name, ctrl, hl.Options)
	ld.open(name, ctrl)

	return nil
}

func (ld *loader) open(name string, ctrl *segment.ControlItem) {
	ld.tpl.Add(name, ctrl)
	ld.current = name
	ld.tabSize = ctrl.TabSize
	ld.pos.Segment = name
}

func (ld *loader) options(
	name string,
	ctrl *segment.ControlItem,
	fields []string,
) {
	seen := make(map[string]bool, len(fields))

	for _, field := range fields {
		key, val, ok := SplitOption(field)
		if !ok {
			ld.log.Log(diag.Warning, ld.pos, MsgMalformedOption, field)
			continue
		}

		if seen[key] {
			ld.log.Log(diag.Warning, ld.pos, MsgDuplicateOption, key, val)
			continue
		}

		seen[key] = true

		switch key {
		case OptionFirstTimeIndent:
			ld.firstTimeIndent(ctrl, val)
		case OptionTabSize:
			ld.tab(ctrl, val)
		case OptionPadSegment:
			ld.pad(name, ctrl, val)
		default:
			ld.log.Log(diag.Warning, ld.pos, MsgUnknownOption, key, val)
		}
	}
}

func (ld *loader) firstTimeIndent(ctrl *segment.ControlItem, val string) {
	fti, ok := indent.IsValidIndentValue(val)
	if !ok {
		ld.log.Log(diag.Warning, ld.pos, MsgInvalidFTI, val)
		return
	}

	if fti == 0 {
		ld.log.Log(diag.Info, ld.pos, MsgFTIDisabled)
	}

	ctrl.FirstTimeIndent = fti
}

func (ld *loader) tab(ctrl *segment.ControlItem, val string) {
	size, numeric, ok := indent.IsValidTabSizeValue(val)
	if !numeric {
		ld.log.Log(diag.Warning, ld.pos, MsgInvalidTab, val)
		return
	}

	if !ok {
		ld.log.Log(
			diag.Warning, ld.pos, MsgTabClamped, val, strconv.Itoa(size),
		)
	}

	ctrl.TabSize = size
}

func (ld *loader) pad(name string, ctrl *segment.ControlItem, val string) {
	switch {
	case !naming.IsValid(val):
		ld.log.Log(diag.Warning, ld.pos, MsgInvalidPad, val)
	case val == name:
		ld.log.Log(diag.Warning, ld.pos, MsgPadSelf, val)
	case !ld.tpl.Has(val):
		ld.log.Log(diag.Warning, ld.pos, MsgPadUndefined, val)
	case ld.tpl.Control(val).PadSegment != "":
		ld.log.Log(
			diag.Warning, ld.pos, MsgPadMultipleLevels,
			val, ld.tpl.Control(val).PadSegment,
		)
	default:
		ctrl.PadSegment = val
	}
}

// finish drops empty segments and clears pad references to them.
func (ld *loader) finish() {
	for _, name := range ld.tpl.Names() {
		if len(ld.tpl.Lines(name)) > 0 {
			continue
		}

		ld.pos.Set(name, 0)
		ld.log.Log(diag.Warning, ld.pos, MsgEmptySegment, name)
		ld.tpl.Remove(name)
	}

	for _, name := range ld.tpl.Names() {
		ctrl := ld.tpl.Control(name)
		if ctrl.PadSegment == "" || ld.tpl.Has(ctrl.PadSegment) {
			continue
		}

		ld.pos.Set(name, 0)
		ld.log.Log(diag.Warning, ld.pos, MsgPadDropped, ctrl.PadSegment)
		ctrl.PadSegment = ""
	}

	ld.pos.Clear()
}
