package stamper

import (
	"fmt"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// LoadStamps reads workspace status files and merges them
// into a single map. Each line is "KEY VALUE" with the
// first space as delimiter. Lines without a space are
// silently skipped; later files override earlier ones.
func LoadStamps(
	infoFiles []string,
) (map[string]interface{}, error) {
	const errCtx = "loading stamps"

	stamps := make(map[string]interface{})

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			line = strings.TrimSuffix(line, "\r")

			parts := strings.SplitN(line, " ", 2)
			if len(parts) == 2 && parts[0] != "" {
				stamps[parts[0]] = parts[1]
			}
		}
	}

	return stamps, nil
}

// Expand substitutes {VAR} references in s. Unknown
// variables are preserved as-is; a string with an
// unclosed brace is returned unchanged.
func Expand(
	s string,
	stamps map[string]interface{},
) string {
	if len(stamps) == 0 || !strings.Contains(s, "{") {
		return s
	}

	var sb strings.Builder

	if _, err := fasttemplate.ExecuteStd(
		s, "{", "}", &sb, stamps,
	); err != nil {
		return s
	}

	return sb.String()
}

// ExpandValues returns a copy of values in which every
// string value has its stamp references expanded. Other
// values are copied unchanged.
func ExpandValues(
	values map[string]any,
	stamps map[string]interface{},
) map[string]any {
	out := make(map[string]any, len(values))

	for key, val := range values {
		if str, ok := val.(string); ok {
			out[key] = Expand(str, stamps)
			continue
		}

		out[key] = val
	}

	return out
}
