package naming

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// reserved holds characters that may not appear in a name. They are path
// delimiters or have a meaning in the template grammar.
const reserved = `/\:*?"<>|=#`

// ErrCeilingExceeded is returned by Namer.Next once every name up to the
// ceiling has been handed out.
var ErrCeilingExceeded = errors.New("default name ceiling exceeded")

// IsValid reports whether name can be used as a segment or token name.
func IsValid(name string) bool {
	if name == "" {
		return false
	}

	for _, ru := range name {
		if unicode.IsSpace(ru) || unicode.IsControl(ru) {
			return false
		}

		if strings.ContainsRune(reserved, ru) {
			return false
		}
	}

	return true
}

// Namer yields Prefix1, Prefix2, ... up to Ceiling.
type Namer struct {
	prefix  string
	ceiling int
	next    int
}

// NewNamer returns a Namer starting at 1.
func NewNamer(prefix string, ceiling int) *Namer {
	return &Namer{prefix: prefix, ceiling: ceiling, next: 1}
}

// Next returns the next name for which taken reports false. taken may be
// nil.
func (na *Namer) Next(taken func(string) bool) (string, error) {
	for na.next <= na.ceiling {
		name := na.prefix + strconv.Itoa(na.next)
		na.next++

		if taken == nil || !taken(name) {
			return name, nil
		}
	}

	return "", fmt.Errorf(
		"%w: %s%d", ErrCeilingExceeded, na.prefix, na.ceiling,
	)
}

// Reset restarts the sequence at 1.
func (na *Namer) Reset() {
	na.next = 1
}
