package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedSequence = errors.New("malformed sequence value")

// NextSequenceNumber returns the value following latest, keeping the prefix
// and zero padding: ("REQ", 4, "REQ-0042") -> "REQ-0043". An empty latest
// starts the sequence at 1.
func NextSequenceNumber(prefix string, width int, latest string) (string, error) {
	if latest == "" {
		return formatSequence(prefix, width, 1), nil
	}
	n, ok := parseSequence(prefix, latest)
	if !ok {
		return "", fmt.Errorf("%w: %q is not %s-<digits>", ErrMalformedSequence, latest, prefix)
	}
	return formatSequence(prefix, width, n+1), nil
}

// parseSequence reads the number out of "<prefix>-<digits>".
func parseSequence(prefix, value string) (int, bool) {
	digits, ok := strings.CutPrefix(value, prefix+"-")
	if !ok || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func formatSequence(prefix string, width, n int) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, n)
}

// LatestFunc returns the most recently created sequence value, or "" when
// no record exists yet.
type LatestFunc func(ctx context.Context) (string, error)

// Sequencer derives the next number from the latest stored one.
//
// It is not concurrency-safe: two callers can read the same latest value and
// produce the same next number. The stored column carries a unique
// constraint, so the second insert fails with a conflict instead of
// duplicating the number.
type Sequencer struct {
	Prefix string
	Width  int
	Latest LatestFunc
}

func (s Sequencer) Next(ctx context.Context) (string, error) {
	latest, err := s.Latest(ctx)
	if err != nil {
		return "", err
	}
	return NextSequenceNumber(s.Prefix, s.Width, latest)
}

// Valid reports whether value belongs to this sequence. Values outside it
// must not be stored in the sequenced column: Latest would return them and
// Next would fail.
func (s Sequencer) Valid(value string) bool {
	_, ok := parseSequence(s.Prefix, value)
	return ok
}
