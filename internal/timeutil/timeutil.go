package timeutil

import (
	"strings"
	"time"
)

const (
	// DepartureLayout is the upstream timestamp without its zone suffix.
	DepartureLayout = "2006-01-02T15:04:05"
	// ClockLayout is the HH:MM form drawn on the board.
	ClockLayout = "15:04"
	// UnknownClock replaces timestamps that cannot be parsed.
	UnknownClock = "??:??"
)

// StripZone truncates raw at the first '+' or, failing that, the first 'Z'.
// The offset is dropped on purpose: the board shows the source's local wall time.
func StripZone(raw string) string {
	if i := strings.IndexByte(raw, '+'); i >= 0 {
		return raw[:i]
	}
	if i := strings.IndexByte(raw, 'Z'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// ParseDeparture parses an upstream departure timestamp, ignoring any zone suffix.
func ParseDeparture(raw string) (time.Time, error) {
	return time.Parse(DepartureLayout, StripZone(raw))
}

// NormalizeDeparture renders raw as HH:MM, or UnknownClock when it does not parse.
func NormalizeDeparture(raw string) string {
	t, err := ParseDeparture(raw)
	if err != nil {
		return UnknownClock
	}
	return t.Format(ClockLayout)
}
