package templating

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/segment_templates/bindings"
	"github.com/byte4ever/segment_templates/diag"
	"github.com/byte4ever/segment_templates/generator"
	"github.com/byte4ever/segment_templates/stamper"
)

// ErrNotLoaded is returned when the template could not
// be loaded; the log holds the reason.
var ErrNotLoaded = errors.New("template not loaded")

// Engine renders templates into a Sink.
type Engine struct {
	Config

	// Log receives every diagnostic of the run.
	Log diag.Logger

	// Sink receives the output. Defaults to FileSink.
	Sink Sink

	// Funcs are token values computed at render time. They are bound to
	// every segment; binding files and variables override them by name.
	Funcs map[string]fasttemplate.TagFunc
}

// Expand renders the template at tplPath and writes the
// result to outPath (stdout if empty).
//
// Processing order:
//  1. Load stamp files into a stamp map.
//  2. Load binding files, then apply each variable
//     NAME=VALUE as a global binding.
//  3. Expand {VAR} stamp references in all string
//     binding values.
//  4. Load the template and render the configured
//     segments, or every segment once, in order.
//  5. Write the generated lines to the sink.
func (en *Engine) Expand(
	tplPath string,
	outPath string,
	vars []string,
) error {
	const errCtx = "expanding template"

	log := en.Log
	if log == nil {
		log = diag.NewLog(nil)
	}

	stamps, err := stamper.LoadStamps(en.StampInfoFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	values, err := bindings.LoadAll(en.BindingFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := resolveVars(vars, values); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	values.Stamp(stamps)

	gen := generator.New(log, en.parserConfig())

	startTag, endTag, escapeTag := en.tags()
	if err := gen.SetTokenDelimiters(
		startTag, endTag, escapeTag,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	lines := ReadLines(tplPath, log)
	if lines == nil {
		return fmt.Errorf("%s: %w", errCtx, ErrNotLoaded)
	}

	if err := gen.LoadTemplate(lines); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	segments := en.Segments
	if len(segments) == 0 {
		segments = gen.Segments()
	}

	for _, name := range segments {
		gen.LoadTokenValues(name, en.segmentValues(values, name))
		gen.GenerateSegment(name)
	}

	sink := en.Sink
	if sink == nil {
		sink = FileSink{}
	}

	if err := sink.WriteLines(outPath, gen.Lines()); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// segmentValues layers the bindings of a segment over Funcs.
func (en *Engine) segmentValues(
	values *bindings.Set,
	name string,
) map[string]any {
	bound := values.Values(name)
	if len(en.Funcs) == 0 {
		return bound
	}

	merged := make(map[string]any, len(en.Funcs)+len(bound))
	for key, fn := range en.Funcs {
		merged[key] = fn
	}

	for key, val := range bound {
		merged[key] = val
	}

	return merged
}

// resolveVars processes --variable flags. Each variable
// is stored as a global binding.
func resolveVars(
	vars []string,
	values *bindings.Set,
) error {
	const errCtx = "resolving variables"

	for _, vr := range vars {
		parts := strings.SplitN(vr, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf(
				"%s: variable must be VAR=value, got %s",
				errCtx, vr,
			)
		}

		values.SetGlobal(parts[0], parts[1])
	}

	return nil
}
