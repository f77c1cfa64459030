package testutil

import "time"

// UpstreamLayout is the timestamp form the timetable API emits, e.g. 2026-01-02T20:53:00+0100.
const UpstreamLayout = "2006-01-02T15:04:05-0700"

// NowAt returns a clock frozen at t.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseUpstream parses an upstream-style timestamp and panics on bad input.
func MustParseUpstream(v string) time.Time {
	t, err := time.Parse(UpstreamLayout, v)
	if err != nil {
		panic(err)
	}
	return t
}
