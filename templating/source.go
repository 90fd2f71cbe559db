package templating

import (
	"io"
	"os"
	"strings"

	"github.com/byte4ever/segment_templates/diag"
)

// MsgReadFailed is logged when the template cannot be read.
const MsgReadFailed = "reading template failed"

// ReadLines returns the lines of the file at path, or of
// stdin when path is empty. A read failure is logged and
// yields no lines.
func ReadLines(path string, log diag.Logger) []string {
	var (
		content []byte
		err     error
	)

	if path == "" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(path) //nolint:gosec // path from CLI flag
	}

	if err != nil {
		log.Log(diag.Error, nil, MsgReadFailed, path, err.Error())
		return nil
	}

	return SplitLines(string(content))
}

// SplitLines splits text on newlines. A final newline
// does not start another line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
