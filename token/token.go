package token

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/segment_templates/diag"
	"github.com/byte4ever/segment_templates/naming"
)

// Default markers.
const (
	DefaultStart  = "<<"
	DefaultEnd    = ">>"
	DefaultEscape = `\`
)

// Log messages.
const (
	MsgEmptyName    = "empty token name"
	MsgUnterminated = "unterminated token"
	MsgInvalidName  = "invalid token name"
	MsgUnknownToken = "token has no bound value"
	MsgEmptyValue   = "token bound to empty value"
	MsgNullValue    = "token bound to null value"
	MsgValueFailed  = "token value function failed"
)

// ErrInvalidDelimiters is returned when markers are empty or when one
// marker is a prefix of another.
var ErrInvalidDelimiters = errors.New("invalid token delimiters")

// Delimiters are the markers recognized by Processor.
type Delimiters struct {
	Start  string
	End    string
	Escape string
}

// DefaultDelimiters returns "<<", ">>" and a backslash.
func DefaultDelimiters() Delimiters {
	return Delimiters{
		Start:  DefaultStart,
		End:    DefaultEnd,
		Escape: DefaultEscape,
	}
}

// Validate checks that all markers are non-empty and that none is a
// prefix of another. Overlapping markers would let one shadow the other
// during a scan.
func (de Delimiters) Validate() error {
	if de.Start == "" || de.End == "" || de.Escape == "" {
		return fmt.Errorf(
			"%w: markers must not be empty", ErrInvalidDelimiters,
		)
	}

	markers := [...]string{de.Start, de.End, de.Escape}

	for i, a := range markers {
		for j, b := range markers {
			if i != j && strings.HasPrefix(b, a) {
				return fmt.Errorf(
					"%w: marker %q overlaps %q",
					ErrInvalidDelimiters, a, b,
				)
			}
		}
	}

	return nil
}

// Processor holds the active markers and the bindings of every segment.
type Processor struct {
	log      diag.Logger
	pos      *diag.Position
	delims   Delimiters
	bindings map[string]map[string]any
}

// New returns a Processor with the default markers and no bindings.
func New(log diag.Logger, pos *diag.Position) *Processor {
	return &Processor{
		log:      log,
		pos:      pos,
		delims:   DefaultDelimiters(),
		bindings: make(map[string]map[string]any),
	}
}

// SetDelimiters replaces the markers. Invalid markers are rejected and the
// previous ones stay active.
func (pr *Processor) SetDelimiters(start, end, escape string) error {
	const errCtx = "setting token delimiters"

	de := Delimiters{Start: start, End: end, Escape: escape}
	if err := de.Validate(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	pr.delims = de

	return nil
}

// ResetDelimiters restores the default markers.
func (pr *Processor) ResetDelimiters() {
	pr.delims = DefaultDelimiters()
}

// Delimiters returns the active markers.
func (pr *Processor) Delimiters() Delimiters {
	return pr.delims
}

// LoadValues replaces the bindings of a segment. A nil value binds the
// name to null. Values may be strings, byte slices, fmt.Stringers,
// fasttemplate.TagFunc or anything fmt.Sprint can format.
func (pr *Processor) LoadValues(segment string, values map[string]any) {
	bound := make(map[string]any, len(values))
	for key, val := range values {
		bound[key] = val
	}

	pr.bindings[segment] = bound
}

// Values returns the bindings of a segment.
func (pr *Processor) Values(segment string) map[string]any {
	return pr.bindings[segment]
}

// Clear drops the bindings of every segment.
func (pr *Processor) Clear() {
	pr.bindings = make(map[string]map[string]any)
}

// Replace substitutes the placeholders of text using the bindings of
// segment.
func (pr *Processor) Replace(segment string, text string) string {
	de := pr.delims

	if !strings.Contains(text, de.Start) &&
		!strings.Contains(text, de.Escape) {
		return text
	}

	var sb strings.Builder

	sb.Grow(len(text))

	for idx := 0; idx < len(text); {
		rest := text[idx:]

		switch {
		case strings.HasPrefix(rest, de.Escape):
			after := rest[len(de.Escape):]

			switch {
			case strings.HasPrefix(after, de.Start):
				sb.WriteString(de.Start)
				idx += len(de.Escape) + len(de.Start)
			case strings.HasPrefix(after, de.End):
				sb.WriteString(de.End)
				idx += len(de.Escape) + len(de.End)
			default:
				sb.WriteString(de.Escape)
				idx += len(de.Escape)
			}

		case strings.HasPrefix(rest, de.Start):
			idx += pr.placeholder(segment, rest, &sb)

		default:
			sb.WriteByte(text[idx])
			idx++
		}
	}

	return sb.String()
}

// placeholder handles text starting with a start marker. It writes the
// output for the consumed prefix and returns its length.
func (pr *Processor) placeholder(
	segment string,
	text string,
	sb *strings.Builder,
) int {
	de := pr.delims
	begin := len(de.Start)

	for idx := begin; idx < len(text); {
		rest := text[idx:]

		switch {
		// An escaped marker neither opens nor closes a name.
		case strings.HasPrefix(rest, de.Escape+de.Start):
			idx += len(de.Escape) + len(de.Start)

		case strings.HasPrefix(rest, de.Escape+de.End):
			idx += len(de.Escape) + len(de.End)

		case strings.HasPrefix(rest, de.Start):
			sb.WriteString(text[:idx])
			return idx

		case strings.HasPrefix(rest, de.End):
			raw := text[:idx+len(de.End)]
			sb.WriteString(pr.resolve(segment, text[begin:idx], raw))

			return len(raw)

		default:
			idx++
		}
	}

	pr.log.Log(diag.Warning, pr.pos, MsgUnterminated, text)
	sb.WriteString(text)

	return len(text)
}

// resolve returns the replacement of one placeholder; raw is the verbatim
// placeholder text.
func (pr *Processor) resolve(segment, name, raw string) string {
	if name == "" {
		pr.log.Log(diag.Warning, pr.pos, MsgEmptyName, raw)
		return raw
	}

	if !naming.IsValid(name) {
		pr.log.Log(diag.Warning, pr.pos, MsgInvalidName, name)
		return raw
	}

	val, ok := pr.bindings[segment][name]
	if !ok {
		pr.log.Log(diag.Warning, pr.pos, MsgUnknownToken, name, segment)
		return raw
	}

	if val == nil {
		pr.log.Log(diag.Warning, pr.pos, MsgNullValue, name)
		return ""
	}

	str := pr.format(name, val)
	if str == "" {
		pr.log.Log(diag.Warning, pr.pos, MsgEmptyValue, name)
	}

	return str
}

func (pr *Processor) format(name string, val any) string {
	switch typed := val.(type) {
	case string:
		return typed
	case []byte:
		return string(typed)
	case fasttemplate.TagFunc:
		return pr.call(name, typed)
	case func(w io.Writer, tag string) (int, error):
		return pr.call(name, typed)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

func (pr *Processor) call(name string, fn fasttemplate.TagFunc) string {
	var buf bytes.Buffer

	if _, err := fn(&buf, name); err != nil {
		pr.log.Log(diag.Warning, pr.pos, MsgValueFailed, name, err.Error())
		return ""
	}

	return buf.String()
}
