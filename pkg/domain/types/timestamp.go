package types

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// MessageTS is a Slack message timestamp such as "1726000000.000100".
// It is the primary identity of an archived message. The token is treated
// as opaque: Slack zero-pads the fractional part, so plain string
// comparison yields chronological order and equality is exact identity.
type MessageTS string

var messageTSPattern = regexp.MustCompile(`^\d+\.\d+$`)

// Validate checks if the MessageTS has the "<seconds>.<fraction>" form
func (x MessageTS) Validate() error {
	if x == "" {
		return goerr.New("message timestamp cannot be empty")
	}
	if !messageTSPattern.MatchString(string(x)) {
		return goerr.New("message timestamp must be '<seconds>.<fraction>'", goerr.V("ts", x))
	}
	return nil
}

// String returns the string representation of MessageTS
func (x MessageTS) String() string {
	return string(x)
}

// IsZero reports whether the timestamp is unset
func (x MessageTS) IsZero() bool {
	return x == ""
}

// Before reports whether x is chronologically earlier than other
func (x MessageTS) Before(other MessageTS) bool {
	return x < other
}

// After reports whether x is chronologically later than other
func (x MessageTS) After(other MessageTS) bool {
	return x > other
}

// Time converts the seconds part to a wall-clock time for display.
// The sub-second fraction is discarded. Returns the zero time when the
// token is unset or malformed.
func (x MessageTS) Time() time.Time {
	sec, _, ok := strings.Cut(string(x), ".")
	if !ok {
		return time.Time{}
	}
	n, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(n, 0).UTC()
}
