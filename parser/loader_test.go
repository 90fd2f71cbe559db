package parser_test

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/segment_templates/diag"
	"github.com/byte4ever/segment_templates/parser"
	"github.com/byte4ever/segment_templates/segment"
)

func load(
	tb testing.TB,
	lines ...string,
) (*segment.Template, *diag.Log) {
	tb.Helper()

	lo := diag.NewLog(nil)

	tpl, err := parser.Load(lines, parser.DefaultConfig(), lo, nil)
	require.NoError(tb, err)

	return tpl, lo
}

// snapshot flattens a template for structural comparison.
type snapshot struct {
	Names    []string
	Lines    map[string][]segment.TextItem
	Controls map[string]segment.ControlItem
}

func snap(tpl *segment.Template) snapshot {
	sn := snapshot{
		Names:    tpl.Names(),
		Lines:    make(map[string][]segment.TextItem),
		Controls: make(map[string]segment.ControlItem),
	}

	for _, name := range sn.Names {
		sn.Lines[name] = tpl.Lines(name)
		sn.Controls[name] = *tpl.Control(name)
	}

	return sn
}

func TestLoad_builds_registries(t *testing.T) {
	t.Parallel()

	tpl, lo := load(t,
		"* sample template",
		"# Open TAB=2",
		"A 0 func main() {",
		"R+1 body",
		"# Close FTI=1 PAD=Open",
		"A 0 }",
	)

	want := snapshot{
		Names: []string{"Open", "Close"},
		Lines: map[string][]segment.TextItem{
			"Open": {
				{Text: "func main() {"},
				{Indent: 1, IsRelative: true, Text: "body"},
			},
			"Close": {
				{Text: "}"},
			},
		},
		Controls: map[string]segment.ControlItem{
			"Open": {IsFirstTime: true, TabSize: 2},
			"Close": {
				IsFirstTime:     true,
				FirstTimeIndent: 1,
				PadSegment:      "Open",
				TabSize:         2,
			},
		},
	}

	if diff := cmp.Diff(want, snap(tpl)); diff != "" {
		t.Fatalf("template mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, lo.Entries())
}

func TestLoad_duplicate_name_gets_default(t *testing.T) {
	t.Parallel()

	tpl, lo := load(t,
		"# A",
		"    first",
		"# A",
		"    second",
	)

	assert.Equal(t, []string{"A", "DefaultSegment1"}, tpl.Names())
	assert.Equal(t, "second", tpl.Lines("DefaultSegment1")[0].Text)

	found := lo.Find(parser.MsgDuplicateName)
	require.Len(t, found, 1)
	assert.Equal(t, []string{"A", "DefaultSegment1"}, found[0].Args)
	assert.Equal(t, 3, found[0].Line)
}

func TestLoad_invalid_name_gets_default(t *testing.T) {
	t.Parallel()

	tpl, lo := load(t,
		"#",
		"    x",
		"# a/b",
		"    y",
	)

	assert.Equal(
		t, []string{"DefaultSegment1", "DefaultSegment2"}, tpl.Names(),
	)
	assert.Len(t, lo.Find(parser.MsgInvalidName), 2)
}

func TestLoad_default_name_skips_declared(t *testing.T) {
	t.Parallel()

	tpl, _ := load(t,
		"# DefaultSegment1",
		"    x",
		"# DefaultSegment1",
		"    y",
	)

	assert.Equal(
		t, []string{"DefaultSegment1", "DefaultSegment2"}, tpl.Names(),
	)
}

func TestLoad_missing_initial_header(t *testing.T) {
	t.Parallel()

	tpl, lo := load(t,
		"    orphan",
		"# Next",
		"    x",
	)

	assert.Equal(t, []string{"DefaultSegment1", "Next"}, tpl.Names())
	assert.Equal(t, "orphan", tpl.Lines("DefaultSegment1")[0].Text)
	assert.Len(t, lo.Find(parser.MsgMissingHeader), 1)
}

func TestLoad_empty_segment_dropped(t *testing.T) {
	t.Parallel()

	tpl, lo := load(t,
		"# Empty",
		"* only a comment",
		"# Full",
		"    x",
	)

	assert.Equal(t, []string{"Full"}, tpl.Names())

	found := lo.Find(parser.MsgEmptySegment)
	require.Len(t, found, 1)
	assert.Equal(t, []string{"Empty"}, found[0].Args)
}

func TestLoad_pad_to_dropped_segment_is_cleared(t *testing.T) {
	t.Parallel()

	tpl, lo := load(t,
		"# Pad",
		"# User PAD=Pad",
		"    x",
	)

	assert.Empty(t, tpl.Control("User").PadSegment)
	assert.Len(t, lo.Find(parser.MsgPadDropped), 1)
}

func TestLoad_header_column_warning(t *testing.T) {
	t.Parallel()

	tpl, lo := load(t, "#-Name", "    x")

	assert.Equal(t, []string{"Name"}, tpl.Names())
	assert.Len(t, lo.Find(parser.MsgHeaderColumn), 1)
	assert.Contains(t, parser.MsgHeaderColumn, "column 1")
	assert.Equal(t, byte(' '), "# Name"[parser.NameColumn-1])
}

func TestLoad_option_anomalies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		msg    string
		want   segment.ControlItem
	}{
		{
			name:   "unknown key",
			header: "# S XYZ=1",
			msg:    parser.MsgUnknownOption,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
		{
			name:   "bare key",
			header: "# S TAB",
			msg:    parser.MsgMalformedOption,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
		{
			name:   "bare equals",
			header: "# S =",
			msg:    parser.MsgMalformedOption,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
		{
			name:   "trailing text",
			header: "# S TAB=2=3",
			msg:    parser.MsgMalformedOption,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
		{
			name:   "doubled space",
			header: "# S  TAB=2",
			msg:    parser.MsgMalformedOption,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 2},
		},
		{
			name:   "duplicate key first wins",
			header: "# S TAB=2 TAB=3",
			msg:    parser.MsgDuplicateOption,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 2},
		},
		{
			name:   "fti zero",
			header: "# S FTI=0",
			msg:    parser.MsgFTIDisabled,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
		{
			name:   "fti out of range",
			header: "# S FTI=10",
			msg:    parser.MsgInvalidFTI,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
		{
			name:   "fti not numeric",
			header: "# S FTI=one",
			msg:    parser.MsgInvalidFTI,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
		{
			name:   "tab below range",
			header: "# S TAB=0",
			msg:    parser.MsgTabClamped,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 1},
		},
		{
			name:   "tab above range",
			header: "# S TAB=10",
			msg:    parser.MsgTabClamped,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 9},
		},
		{
			name:   "tab not numeric",
			header: "# S TAB=wide",
			msg:    parser.MsgInvalidTab,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
		{
			name:   "pad invalid name",
			header: "# S PAD=a/b",
			msg:    parser.MsgInvalidPad,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
		{
			name:   "pad self",
			header: "# S PAD=S",
			msg:    parser.MsgPadSelf,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
		{
			name:   "pad defined later",
			header: "# S PAD=Later",
			msg:    parser.MsgPadUndefined,
			want:   segment.ControlItem{IsFirstTime: true, TabSize: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tpl, lo := load(t, tt.header, "    x", "# Later", "    y")

			assert.Equal(t, tt.want, *tpl.Control("S"))

			got := lo.Entries()
			require.Len(t, got, 1)
			assert.Equal(t, tt.msg, got[0].Message)
			assert.Equal(t, "S", got[0].Segment)
			assert.Equal(t, 1, got[0].Line)
		})
	}
}

func TestLoad_fti_valid_values(t *testing.T) {
	t.Parallel()

	for fti := segment.MinIndent; fti <= segment.MaxIndent; fti++ {
		tpl, _ := load(t, "# S FTI="+strconv.Itoa(fti), "    x")
		assert.Equal(t, fti, tpl.Control("S").FirstTimeIndent)
	}
}

func TestLoad_tab_valid_values(t *testing.T) {
	t.Parallel()

	for size := segment.MinTabSize; size <= segment.MaxTabSize; size++ {
		tpl, lo := load(t, "# S TAB="+strconv.Itoa(size), "    x")
		assert.Equal(t, size, tpl.Control("S").TabSize)
		assert.Empty(t, lo.Entries())
	}
}

func TestLoad_tab_size_inherited(t *testing.T) {
	t.Parallel()

	tpl, _ := load(t,
		"# A TAB=2",
		"    x",
		"# B TAB=bad",
		"    y",
		"# C",
		"    z",
	)

	assert.Equal(t, 2, tpl.Control("B").TabSize)
	assert.Equal(t, 2, tpl.Control("C").TabSize)
}

func TestLoad_pad_multiple_levels(t *testing.T) {
	t.Parallel()

	tpl, lo := load(t,
		"# Base",
		"    b",
		"# Mid PAD=Base",
		"    m",
		"# Top PAD=Mid",
		"    t",
	)

	assert.Equal(t, "Base", tpl.Control("Mid").PadSegment)
	assert.Empty(t, tpl.Control("Top").PadSegment)

	found := lo.Find(parser.MsgPadMultipleLevels)
	require.Len(t, found, 1)
	assert.Equal(t, []string{"Mid", "Base"}, found[0].Args)
	assert.Empty(t, lo.Find(parser.MsgPadUndefined))
}

func TestLoad_pad_to_renamed_duplicate(t *testing.T) {
	t.Parallel()

	tpl, lo := load(t,
		"# A",
		"    a",
		"# A PAD=A",
		"    b",
	)

	assert.Equal(t, "A", tpl.Control("DefaultSegment1").PadSegment)
	assert.Len(t, lo.Find(parser.MsgDuplicateName), 1)
	assert.Empty(t, lo.Find(parser.MsgPadSelf))
}

func TestLoad_strips_carriage_returns(t *testing.T) {
	t.Parallel()

	tpl, _ := load(t, "# S\r", "    x\r")

	assert.Equal(t, []string{"S"}, tpl.Names())
	assert.Equal(t, "x", tpl.Lines("S")[0].Text)
}

func TestLoad_fatal_body_line_aborts(t *testing.T) {
	t.Parallel()

	lo := diag.NewLog(nil)

	tpl, err := parser.Load(
		[]string{"# S", "    ok", "Q+1 bad"},
		parser.DefaultConfig(), lo, nil,
	)

	require.ErrorIs(t, err, parser.ErrFatalLine)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, 0, tpl.Len())
}

func TestLoad_no_segments(t *testing.T) {
	t.Parallel()

	for _, lines := range [][]string{nil, {"* comment"}, {"# Empty"}} {
		tpl, err := parser.Load(
			lines, parser.DefaultConfig(), diag.NewLog(nil), nil,
		)

		require.ErrorIs(t, err, parser.ErrNoSegments)
		assert.Equal(t, 0, tpl.Len())
	}
}

func TestLoad_name_ceiling(t *testing.T) {
	t.Parallel()

	cfg := parser.DefaultConfig()
	cfg.NameCeiling = 1

	_, err := parser.Load(
		[]string{"#", "    x", "#", "    y"},
		cfg, diag.NewLog(nil), nil,
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ceiling")
}

func TestLoad_updates_position(t *testing.T) {
	t.Parallel()

	pos := diag.Position{Segment: "stale", Line: 99}

	_, err := parser.Load(
		[]string{"# S", "    x"},
		parser.DefaultConfig(), diag.NewLog(nil), &pos,
	)

	require.NoError(t, err)
	assert.Equal(t, diag.Position{}, pos)
}
