package bindings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/segment_templates/bindings"
)

func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

const yamlDoc = `global:
  AUTHOR: "{BUILD_USER}"
  GREETING: Hello
segments:
  Header:
    NAME: Bob
    GREETING: Hi
    EMPTY: ""
    NULL: ~
`

func TestParse_yaml(t *testing.T) {
	t.Parallel()

	set, err := bindings.Parse([]byte(yamlDoc), bindings.YAML)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"AUTHOR":   "{BUILD_USER}",
		"GREETING": "Hi",
		"NAME":     "Bob",
		"EMPTY":    "",
		"NULL":     nil,
	}, set.Values("Header"))

	assert.Equal(t, map[string]any{
		"AUTHOR":   "{BUILD_USER}",
		"GREETING": "Hello",
	}, set.Values("Other"))

	assert.Equal(t, []string{"Header"}, set.SegmentNames())
}

func TestParse_json(t *testing.T) {
	t.Parallel()

	doc := `{"global": {"A": "a"}, "segments": {"S": {"B": "b", "N": null}}}`

	set, err := bindings.Parse([]byte(doc), bindings.JSON)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"A": "a",
		"B": "b",
		"N": nil,
	}, set.Values("S"))
}

func TestParse_empty_document(t *testing.T) {
	t.Parallel()

	set, err := bindings.Parse(nil, bindings.YAML)
	require.NoError(t, err)
	assert.Empty(t, set.Values("S"))
}

func TestParse_invalid(t *testing.T) {
	t.Parallel()

	_, err := bindings.Parse([]byte(`{"global": [`), bindings.JSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing bindings")
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bindings.JSON, bindings.FormatOf("a/b.JSON"))
	assert.Equal(t, bindings.YAML, bindings.FormatOf("a/b.yaml"))
	assert.Equal(t, bindings.YAML, bindings.FormatOf("values"))
}

func TestLoadAll_later_files_override(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first := writeTemp(t, dir, "a.yaml", yamlDoc)
	second := writeTemp(
		t, dir, "b.json",
		`{"segments": {"Header": {"NAME": "Alice"}}}`,
	)

	set, err := bindings.LoadAll([]string{first, second})
	require.NoError(t, err)

	got := set.Values("Header")
	assert.Equal(t, "Alice", got["NAME"])
	assert.Equal(t, "Hi", got["GREETING"])
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := bindings.LoadAll([]string{"/nonexistent/b.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading bindings")
}

func TestStamp_and_set_global(t *testing.T) {
	t.Parallel()

	set, err := bindings.Parse([]byte(yamlDoc), bindings.YAML)
	require.NoError(t, err)

	set.SetGlobal("HOST", "{BUILD_HOST}")
	set.Stamp(map[string]interface{}{
		"BUILD_USER": "alice",
		"BUILD_HOST": "ci-01",
	})

	got := set.Values("Header")
	assert.Equal(t, "alice", got["AUTHOR"])
	assert.Equal(t, "ci-01", got["HOST"])
	assert.Nil(t, got["NULL"])
}
