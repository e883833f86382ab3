// Package dateutil formats invoice dates from user-friendly layout tokens.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// IssueDateFormat is the layout of a defaulted invoice issue date (2025-1-9).
const IssueDateFormat = "YYYY-M-D"

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// dateTokens maps tokens to Go layout components, longest first for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// GoLayout converts a token format (YYYY, YY, MMMM, MMM, MM, M, DD, D) to a Go layout.
// Text inside brackets is kept literally: "[Due] D MMM" -> "Due 2 Jan".
func GoLayout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 8)

	rest := format
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(rest, t.token) {
				b.WriteString(t.goFmt)
				rest = rest[len(t.token):]
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(rest[0])
			rest = rest[1:]
		}
	}

	return b.String(), nil
}

// Format renders t using a token format.
func Format(t time.Time, format string) (string, error) {
	layout, err := GoLayout(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// IssueDate renders t as a default invoice issue date.
func IssueDate(t time.Time) string {
	return t.Format("2006-1-2")
}

// ResolveDate expands "auto" and "auto:FORMAT" to the date of t.
// Any other value is returned unchanged.
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}
	if lower == "auto" {
		return IssueDate(t), nil
	}
	if !strings.HasPrefix(lower, "auto:") {
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}
	return Format(t, value[len("auto:"):])
}
