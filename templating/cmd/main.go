// Binary segment_templates renders segments of a
// fixed-column template with token substitution.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/byte4ever/segment_templates/diag"
	"github.com/byte4ever/segment_templates/templating"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func run() error {
	const errCtx = "segment_templates"

	var (
		stampInfoFile arrayFlags
		bindingFiles  arrayFlags
		segments      arrayFlags
		variable      arrayFlags
		configFile    string
		output        string
		tpl           string
		report        string
		executable    bool
		startTag      string
		endTag        string
		escapeTag     string
		tabSize       int
	)

	flag.Var(
		&stampInfoFile,
		"stamp_info_file",
		"Stamp info file path (repeatable)",
	)

	flag.Var(
		&bindingFiles,
		"bindings",
		"YAML or JSON token bindings file (repeatable)",
	)

	flag.Var(
		&segments,
		"segment",
		"Segment to render, in order (repeatable, default all)",
	)

	flag.Var(
		&variable,
		"variable",
		"Global token binding in NAME=VALUE format (repeatable)",
	)

	flag.StringVar(
		&configFile, "config", "",
		"YAML configuration file",
	)

	flag.StringVar(
		&output, "output", "",
		"Output file path (stdout if empty)",
	)

	flag.StringVar(
		&tpl, "template", "",
		"Input template file path (stdin if empty)",
	)

	flag.StringVar(
		&report, "report", "",
		"Write diagnostics as JSON to this file",
	)

	flag.BoolVar(
		&executable, "executable", false,
		"Set executable bit on output file",
	)

	flag.StringVar(
		&startTag, "start_tag", "",
		"Start tag for tokens (default <<)",
	)

	flag.StringVar(
		&endTag, "end_tag", "",
		"End tag for tokens (default >>)",
	)

	flag.StringVar(
		&escapeTag, "escape_tag", "",
		`Escape tag for tokens (default \)`,
	)

	flag.IntVar(
		&tabSize, "tab_size", 0,
		"Tab size of segments without TAB (default 4)",
	)

	flag.Parse()

	var cfg templating.Config

	if configFile != "" {
		loaded, err := templating.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		cfg = loaded
	}

	overrideString(&cfg.StartTag, startTag)
	overrideString(&cfg.EndTag, endTag)
	overrideString(&cfg.EscapeTag, escapeTag)

	if tabSize != 0 {
		cfg.TabSize = tabSize
	}

	cfg.StampInfoFiles = append(cfg.StampInfoFiles, stampInfoFile...)
	cfg.BindingFiles = append(cfg.BindingFiles, bindingFiles...)

	if len(segments) > 0 {
		cfg.Segments = segments
	}

	log := diag.NewLog(
		slog.New(slog.NewTextHandler(os.Stderr, nil)),
	)

	en := templating.Engine{
		Config: cfg,
		Log:    log,
		Sink:   templating.FileSink{Executable: executable},
	}

	expandErr := en.Expand(tpl, output, variable)

	if report != "" {
		if err := writeReport(report, log); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	if expandErr != nil {
		return fmt.Errorf("%s: %w", errCtx, expandErr)
	}

	return nil
}

func overrideString(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

func writeReport(path string, log *diag.Log) error {
	fo, err := os.Create(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	//nolint:errcheck // best-effort close
	defer fo.Close()

	return log.WriteJSON(fo)
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
