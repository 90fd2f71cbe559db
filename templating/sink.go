package templating

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/segment_templates/digester"
)

// Sink receives the generated lines of a run.
type Sink interface {
	WriteLines(target string, lines []string) error
}

// FileSink writes generated lines to a file and records
// a digest sidecar, or to Stdout when the target is empty.
type FileSink struct {
	// Executable gives the output file mode 0777
	// instead of 0666.
	Executable bool

	// Stdout receives output for an empty target.
	// Defaults to os.Stdout.
	Stdout io.Writer
}

// WriteLines implements Sink. A file whose digest
// sidecar already matches the content is left untouched.
func (fs FileSink) WriteLines(target string, lines []string) error {
	const errCtx = "writing output"

	content := []byte(joinLines(lines))

	if target == "" {
		out := fs.Stdout
		if out == nil {
			out = os.Stdout
		}

		if _, err := out.Write(content); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	same, err := digester.Unchanged(target, content)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if same {
		slog.Info("output unchanged", "path", target)
		return nil
	}

	if err := fs.writeFile(target, content); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := digester.SaveDigest(target, content); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func (fs FileSink) writeFile(target string, content []byte) error {
	var perm os.FileMode = 0o666
	if fs.Executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		target,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return err
	}

	if _, err := fi.Write(content); err != nil {
		_ = fi.Close() //nolint:errcheck // write error wins

		return err
	}

	return fi.Close()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n") + "\n"
}
