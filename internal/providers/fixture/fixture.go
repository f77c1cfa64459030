package fixture

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// upstreamZone is where the timetable service reports wall times. Its offset is always
// east of UTC, so timestamps carry a "+HHMM" suffix like the live API.
var upstreamZone = mustLoadZone("Europe/Zurich")

func mustLoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// SampleBody is a five-connection response as returned by the connections endpoint.
const SampleBody = `{"connections":[{"from":{"departure":"2026-01-02T20:53:00+0100","delay":0}},{"from":{"departure":"2026-01-02T21:13:00+0100","delay":0}},{"from":{"departure":"2026-01-02T21:33:00+0100","delay":0}},{"from":{"departure":"2026-01-02T21:53:00+0100","delay":0}},{"from":{"departure":"2026-01-02T22:13:00+0100","delay":0}}]}`

// Provider serves timetable bodies without touching the network. Useful for local runs
// and for exercising the board on a desk without Wi-Fi.
type Provider struct {
	now  func() time.Time
	body string
}

// New creates a fixture provider that returns SampleBody.
func New() *Provider {
	return &Provider{now: time.Now, body: SampleBody}
}

// NewRolling creates a fixture provider that emits five departures every 20 minutes,
// starting at the next full 20-minute slot after now. The body changes as time passes,
// which drives real redraws during demos.
func NewRolling() *Provider {
	return &Provider{now: time.Now}
}

// Name identifies the source in logs and metrics.
func (p *Provider) Name() string {
	return "fixture"
}

// Fetch returns the configured body.
func (p *Provider) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.body != "" {
		return []byte(p.body), nil
	}
	return []byte(rollingBody(p.now())), nil
}

func rollingBody(now time.Time) string {
	start := now.In(upstreamZone).Truncate(20 * time.Minute).Add(20 * time.Minute)
	parts := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		dep := start.Add(time.Duration(i) * 20 * time.Minute)
		parts = append(parts, fmt.Sprintf(`{"from":{"departure":%q,"delay":0}}`, dep.Format("2006-01-02T15:04:05-0700")))
	}
	return `{"connections":[` + strings.Join(parts, ",") + `]}`
}
