package cabrillo

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrContactOutOfRange is returned when a sequence index does not exist in the log
var ErrContactOutOfRange = errors.New("contact index out of range")

// WriteSubset emits a syntactically valid log subset: all retained header
// lines verbatim, followed by the raw text of every contact whose sequence
// index falls in [start, end] inclusive, in original order. Reversed indexes
// are accepted and swapped. Contact lines are never re-numbered, re-formatted
// or re-validated.
func (l *Log) WriteSubset(w io.Writer, start, end int) error {
	if start > end {
		start, end = end, start
	}
	if start < 0 || end >= len(l.contacts) {
		return fmt.Errorf("%w: range [%d, %d], log has %d contacts", ErrContactOutOfRange, start, end, len(l.contacts))
	}

	for _, line := range l.headerLines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write header line: %w", err)
		}
	}

	for i := start; i <= end; i++ {
		if _, err := fmt.Fprintln(w, l.contacts[i].Raw); err != nil {
			return fmt.Errorf("failed to write contact line: %w", err)
		}
	}

	return nil
}

// Subset returns the subset text for the inclusive contact range [start, end].
func (l *Log) Subset(start, end int) (string, error) {
	var sb strings.Builder
	if err := l.WriteSubset(&sb, start, end); err != nil {
		return "", err
	}
	return sb.String(), nil
}
