package metrics

import (
	"sync"
	"time"
)

type fetchStats struct {
	fetches          int
	successes        int
	unchanged        int
	failures         int
	failuresByReason map[string]int
	lastFetchLatency time.Duration
	renders          int
	lastRows         int
}

// Recorder captures lightweight, in-memory metrics about board cycles.
// When telemetry is enabled the same events are forwarded to OpenTelemetry instruments.
type Recorder struct {
	mu    sync.Mutex
	stats fetchStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: fetchStats{failuresByReason: make(map[string]int)},
		otel:  otel,
	}
}

// RecordFetch counts one fetch outcome. reason is only meaningful for failures.
func (r *Recorder) RecordFetch(outcome, reason string, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.stats.fetches++
	r.stats.lastFetchLatency = duration
	switch outcome {
	case OutcomeSuccess:
		r.stats.successes++
	case OutcomeUnchanged:
		r.stats.unchanged++
	case OutcomeFailed:
		r.stats.failures++
		r.stats.failuresByReason[reason]++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetch(outcome, reason, duration)
	}
}

// RecordRender tracks a committed board render and how many departure rows it drew.
func (r *Recorder) RecordRender(rows int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.stats.renders++
	r.stats.lastRows = rows
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRender(rows)
	}
}

// Outcome labels shared with the fetch pipeline.
const (
	OutcomeSuccess   = "success"
	OutcomeUnchanged = "unchanged"
	OutcomeFailed    = "failed"
)

// Snapshot is a copy of the current counters.
type Snapshot struct {
	Fetches          int
	Successes        int
	Unchanged        int
	Failures         int
	FailuresByReason map[string]int
	LastFetchLatency time.Duration
	Renders          int
	LastRows         int
}

// Snapshot returns a copy of the current stats.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{FailuresByReason: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	reasons := make(map[string]int, len(r.stats.failuresByReason))
	for k, v := range r.stats.failuresByReason {
		reasons[k] = v
	}
	return Snapshot{
		Fetches:          r.stats.fetches,
		Successes:        r.stats.successes,
		Unchanged:        r.stats.unchanged,
		Failures:         r.stats.failures,
		FailuresByReason: reasons,
		LastFetchLatency: r.stats.lastFetchLatency,
		Renders:          r.stats.renders,
		LastRows:         r.stats.lastRows,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}
