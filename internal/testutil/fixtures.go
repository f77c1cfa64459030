package testutil

import "github.com/preston-bernstein/departure-board/internal/domain/departures"

// SampleRecords returns five departures twenty minutes apart; the third is three minutes late.
func SampleRecords() []departures.Record {
	return []departures.Record{
		{ScheduledDeparture: "2026-01-02T20:53:00+0100"},
		{ScheduledDeparture: "2026-01-02T21:13:00+0100"},
		{ScheduledDeparture: "2026-01-02T21:33:00+0100", DelayMinutes: 3},
		{ScheduledDeparture: "2026-01-02T21:53:00+0100"},
		{ScheduledDeparture: "2026-01-02T22:13:00+0100"},
	}
}
