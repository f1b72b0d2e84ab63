package cabrillo

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// qsoPrefix marks a contact record line in a Cabrillo log
const qsoPrefix = "QSO:"

// minQSOTokens is the minimum token count of a well-formed contact line:
// QSO: freq mode date time mycall rst-sent exch-sent hiscall rst-rcvd exch-rcvd
const minQSOTokens = 11

// Contact represents one logged contact (QSO) with its position in the log.
// Raw preserves the original line verbatim for lossless subset export.
type Contact struct {
	Raw       string
	Timestamp time.Time
	Sequence  int
	Frequency string
	Mode      string
	MyCall    string
	SentRST   string
	SentExch  string
	TheirCall string
	RcvdRST   string
	RcvdExch  string
}

// Log is a parsed Cabrillo log: the contact records in original order plus
// every non-contact line retained verbatim for reproduction in subsets.
type Log struct {
	headerLines []string
	contacts    []Contact
}

// Parse reads a Cabrillo log. Lines starting with "QSO:" become contacts;
// every other line is kept as a header line. A contact line with a malformed
// timestamp or too few tokens is skipped, never fatal to the whole parse.
func Parse(r io.Reader) (*Log, error) {
	l := &Log{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if !strings.HasPrefix(trimmed, qsoPrefix) {
			l.headerLines = append(l.headerLines, line)
			continue
		}

		contact, err := parseContactLine(line)
		if err != nil {
			log.Printf("[DEBUG] Skipping malformed QSO line %d: %v", lineNo, err)
			continue
		}

		contact.Sequence = len(l.contacts)
		l.contacts = append(l.contacts, contact)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}

	return l, nil
}

// parseContactLine parses a single QSO line. The line is stored untrimmed:
// Raw must reproduce the original log text byte for byte in subsets.
// Layout: QSO: freq mode YYYY-MM-DD HHMM mycall rst exch hiscall rst exch [...]
func parseContactLine(line string) (Contact, error) {
	parts := strings.Fields(line)
	if len(parts) < minQSOTokens {
		return Contact{}, fmt.Errorf("expected at least %d tokens, got %d", minQSOTokens, len(parts))
	}

	ts, err := time.ParseInLocation("2006-01-02 1504", parts[3]+" "+parts[4], time.UTC)
	if err != nil {
		return Contact{}, fmt.Errorf("invalid timestamp %q %q: %w", parts[3], parts[4], err)
	}

	return Contact{
		Raw:       line,
		Timestamp: ts,
		Frequency: parts[1],
		Mode:      parts[2],
		MyCall:    parts[5],
		SentRST:   parts[6],
		SentExch:  parts[7],
		TheirCall: parts[8],
		RcvdRST:   parts[9],
		RcvdExch:  parts[10],
	}, nil
}

// Contacts returns the ordered contact records. The returned slice is a copy,
// so callers can enumerate repeatedly without affecting the log.
func (l *Log) Contacts() []Contact {
	out := make([]Contact, len(l.contacts))
	copy(out, l.contacts)
	return out
}

// Contact returns the record at the given sequence index.
func (l *Log) Contact(index int) (Contact, error) {
	if index < 0 || index >= len(l.contacts) {
		return Contact{}, fmt.Errorf("%w: index %d, log has %d contacts", ErrContactOutOfRange, index, len(l.contacts))
	}
	return l.contacts[index], nil
}

// Len returns the number of contact records.
func (l *Log) Len() int {
	return len(l.contacts)
}

// HeaderLines returns the retained non-contact lines in original order.
func (l *Log) HeaderLines() []string {
	out := make([]string, len(l.headerLines))
	copy(out, l.headerLines)
	return out
}
