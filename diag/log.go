package diag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	json "github.com/goccy/go-json"
)

// Category classifies a log entry.
type Category string

// Categories used by the loader and the renderer.
const (
	Info    Category = "info"
	Warning Category = "warning"
	Error   Category = "error"
)

// maxArgs is the number of message arguments kept per entry.
const maxArgs = 2

// Logger records a diagnostic. pos may be nil when the condition is not
// tied to a template line. Only the first two args are kept.
type Logger interface {
	Log(cat Category, pos *Position, msg string, args ...string)
}

// Entry is one recorded diagnostic.
type Entry struct {
	Category Category `json:"category"`
	Segment  string   `json:"segment,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
	Args     []string `json:"args,omitempty"`
}

func (en Entry) String() string {
	var sb strings.Builder

	sb.WriteString(string(en.Category))

	if en.Segment != "" || en.Line != 0 {
		sb.WriteString(" [")
		sb.WriteString(Position{Segment: en.Segment, Line: en.Line}.String())
		sb.WriteByte(']')
	}

	sb.WriteString(": ")
	sb.WriteString(en.Message)

	for _, arg := range en.Args {
		fmt.Fprintf(&sb, " %q", arg)
	}

	return sb.String()
}

// Log accumulates entries in order and optionally mirrors them to a
// *slog.Logger.
type Log struct {
	entries []Entry
	sl      *slog.Logger
}

// NewLog returns an empty Log. sl may be nil.
func NewLog(sl *slog.Logger) *Log {
	return &Log{sl: sl}
}

// Log implements Logger.
func (lo *Log) Log(
	cat Category,
	pos *Position,
	msg string,
	args ...string,
) {
	en := Entry{Category: cat, Message: msg}

	if pos != nil {
		en.Segment = pos.Segment
		en.Line = pos.Line
	}

	if len(args) > maxArgs {
		args = args[:maxArgs]
	}

	if len(args) > 0 {
		en.Args = append([]string(nil), args...)
	}

	lo.entries = append(lo.entries, en)

	if lo.sl != nil {
		lo.forward(en)
	}
}

func (lo *Log) forward(en Entry) {
	level := slog.LevelInfo

	switch en.Category {
	case Warning:
		level = slog.LevelWarn
	case Error:
		level = slog.LevelError
	}

	attrs := make([]slog.Attr, 0, 3)

	if en.Segment != "" {
		attrs = append(attrs, slog.String("segment", en.Segment))
	}

	if en.Line != 0 {
		attrs = append(attrs, slog.Int("line", en.Line))
	}

	if len(en.Args) > 0 {
		attrs = append(attrs, slog.Any("args", en.Args))
	}

	lo.sl.LogAttrs(context.Background(), level, en.Message, attrs...)
}

// Entries returns a copy of the recorded entries.
func (lo *Log) Entries() []Entry {
	return append([]Entry(nil), lo.entries...)
}

// Count returns how many entries carry the given category.
func (lo *Log) Count(cat Category) int {
	nb := 0

	for _, en := range lo.entries {
		if en.Category == cat {
			nb++
		}
	}

	return nb
}

// Find returns the entries whose message equals msg.
func (lo *Log) Find(msg string) []Entry {
	var found []Entry

	for _, en := range lo.entries {
		if en.Message == msg {
			found = append(found, en)
		}
	}

	return found
}

// Reset drops every recorded entry.
func (lo *Log) Reset() {
	lo.entries = nil
}

// WriteJSON writes the recorded entries as a JSON array.
func (lo *Log) WriteJSON(w io.Writer) error {
	const errCtx = "writing diagnostics report"

	entries := lo.entries
	if entries == nil {
		entries = []Entry{}
	}

	buf, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	buf = append(buf, '\n')

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
