package templating

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/segment_templates/parser"
	"github.com/byte4ever/segment_templates/token"
)

// Config holds every setting of a render run.
type Config struct {
	// StartTag, EndTag and EscapeTag are the token markers.
	StartTag  string `yaml:"start_tag"`
	EndTag    string `yaml:"end_tag"`
	EscapeTag string `yaml:"escape_tag"`

	// DefaultNamePrefix names segments with an unusable name.
	DefaultNamePrefix string `yaml:"default_name_prefix"`

	// NameCeiling bounds the generated segment names.
	NameCeiling int `yaml:"name_ceiling"`

	// TabSize is the tab size of segments without TAB.
	TabSize int `yaml:"tab_size"`

	// StampInfoFiles are workspace status files whose
	// variables expand {VAR} references in binding values.
	StampInfoFiles []string `yaml:"stamp_info_files"`

	// BindingFiles are YAML or JSON token value files.
	BindingFiles []string `yaml:"binding_files"`

	// Segments lists the segments to render in order.
	// Empty renders every segment once.
	Segments []string `yaml:"segments"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	const errCtx = "loading config"

	var cfg Config

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return cfg, nil
}

// tags returns the configured markers, falling back to
// the token defaults.
func (cf Config) tags() (string, string, string) {
	startTag := cf.StartTag
	if startTag == "" {
		startTag = token.DefaultStart
	}

	endTag := cf.EndTag
	if endTag == "" {
		endTag = token.DefaultEnd
	}

	escapeTag := cf.EscapeTag
	if escapeTag == "" {
		escapeTag = token.DefaultEscape
	}

	return startTag, endTag, escapeTag
}

// parserConfig maps the loader settings; zero values
// fall back to the loader defaults.
func (cf Config) parserConfig() parser.Config {
	return parser.Config{
		DefaultNamePrefix: cf.DefaultNamePrefix,
		NameCeiling:       cf.NameCeiling,
		DefaultTabSize:    cf.TabSize,
	}
}
