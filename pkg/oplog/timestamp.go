package oplog

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/semtparser/pkg/logging"
)

// Timestamp is a record's time. Valid timestamps carry the parsed instant;
// invalid ones keep the raw text so nothing is lost.
type Timestamp struct {
	Time  time.Time
	Raw   string
	Valid bool
}

// ParseTimestamp parses an RFC3339 timestamp, tolerating failure.
func ParseTimestamp(raw string) Timestamp {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		log := logging.GetLogger("oplog.timestamp")
		log.Warn().
			Str("timestamp", raw).
			Err(err).
			Msg("Unparseable timestamp, keeping raw value")
		return Timestamp{Raw: raw}
	}
	return Timestamp{Time: t, Raw: raw, Valid: true}
}

// String returns the canonical RFC3339 form for valid timestamps and the
// raw text otherwise.
func (t Timestamp) String() string {
	if t.Valid {
		return t.Time.Format(time.RFC3339Nano)
	}
	return t.Raw
}

// UnknownTimestamps decides where records without a valid timestamp sort.
type UnknownTimestamps int

const (
	// UnknownFirst sorts invalid timestamps before every valid one.
	UnknownFirst UnknownTimestamps = iota
	// UnknownLast sorts invalid timestamps after every valid one.
	UnknownLast
)

func (u UnknownTimestamps) String() string {
	if u == UnknownLast {
		return "last"
	}
	return "first"
}

// ParseUnknownTimestamps parses "first" or "last".
func ParseUnknownTimestamps(s string) (UnknownTimestamps, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return UnknownFirst, nil
	case "last":
		return UnknownLast, nil
	}
	return UnknownFirst, fmt.Errorf("unknown timestamp policy %q (want first or last)", s)
}

// CompareTimestamps is a total order: valid timestamps compare
// chronologically, two invalid ones are equal, and an invalid one sits
// below or above every valid one depending on policy.
func CompareTimestamps(a, b Timestamp, policy UnknownTimestamps) int {
	switch {
	case a.Valid && b.Valid:
		return a.Time.Compare(b.Time)
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		if policy == UnknownLast {
			return 1
		}
		return -1
	default:
		if policy == UnknownLast {
			return -1
		}
		return 1
	}
}
