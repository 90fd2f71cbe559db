package bindings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/segment_templates/stamper"
)

// Format is the encoding of a bindings file.
type Format int

// Supported formats.
const (
	YAML Format = iota
	JSON
)

// FormatOf picks the format from a file extension; anything but ".json"
// is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}

	return YAML
}

// Set holds global and per-segment token values.
type Set struct {
	Global   map[string]any            `json:"global" yaml:"global"`
	Segments map[string]map[string]any `json:"segments" yaml:"segments"`
}

// New returns an empty Set.
func New() *Set {
	return &Set{
		Global:   make(map[string]any),
		Segments: make(map[string]map[string]any),
	}
}

// Parse decodes a bindings document.
func Parse(data []byte, format Format) (*Set, error) {
	const errCtx = "parsing bindings"

	var (
		set Set
		err error
	)

	switch format {
	case JSON:
		err = json.Unmarshal(data, &set)
	default:
		err = yaml.Unmarshal(data, &set)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	out := New()
	out.Merge(&set)

	return out, nil
}

// Load reads and decodes a bindings file.
func Load(path string) (*Set, error) {
	const errCtx = "loading bindings"

	data, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	set, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return set, nil
}

// LoadAll loads files in order; later files override earlier ones.
func LoadAll(paths []string) (*Set, error) {
	out := New()

	for _, pa := range paths {
		set, err := Load(pa)
		if err != nil {
			return nil, err
		}

		out.Merge(set)
	}

	return out, nil
}

// Merge copies the values of other into se, overriding existing keys.
func (se *Set) Merge(other *Set) {
	for key, val := range other.Global {
		se.Global[key] = val
	}

	for name, values := range other.Segments {
		dst, ok := se.Segments[name]
		if !ok {
			dst = make(map[string]any, len(values))
			se.Segments[name] = dst
		}

		for key, val := range values {
			dst[key] = val
		}
	}
}

// SetGlobal binds a value for every segment.
func (se *Set) SetGlobal(key string, val any) {
	se.Global[key] = val
}

// Values returns the values seen by a segment: globals overridden by the
// segment's own values.
func (se *Set) Values(segment string) map[string]any {
	own := se.Segments[segment]
	out := make(map[string]any, len(se.Global)+len(own))

	for key, val := range se.Global {
		out[key] = val
	}

	for key, val := range own {
		out[key] = val
	}

	return out
}

// SegmentNames returns the names with their own values, sorted.
func (se *Set) SegmentNames() []string {
	names := make([]string, 0, len(se.Segments))
	for name := range se.Segments {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Stamp expands {VAR} stamp references in every string value.
func (se *Set) Stamp(stamps map[string]interface{}) {
	if len(stamps) == 0 {
		return
	}

	se.Global = stamper.ExpandValues(se.Global, stamps)

	for name, values := range se.Segments {
		se.Segments[name] = stamper.ExpandValues(values, stamps)
	}
}
