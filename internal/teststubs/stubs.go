package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/departure-board/internal/domain/departures"
	"github.com/preston-bernstein/departure-board/internal/render"
)

// StubFetcher is a test double for poller.Fetcher. It replays Outcomes in order
// and repeats the last one once exhausted.
type StubFetcher struct {
	mu       sync.Mutex
	Outcomes []departures.Outcome
	Calls    atomic.Int32
	Notify   chan struct{}
}

// Fetch returns the next scripted outcome while tracking calls.
func (s *StubFetcher) Fetch(ctx context.Context) departures.Outcome {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	n := int(s.Calls.Add(1)) - 1

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Outcomes) == 0 {
		return departures.Unchanged()
	}
	if n >= len(s.Outcomes) {
		n = len(s.Outcomes) - 1
	}
	return s.Outcomes[n]
}

// StubDisplay records what a cycle sent to the panel.
type StubDisplay struct {
	mu        sync.Mutex
	Draws     [][]render.Command
	Commits   int
	PowerOffs int
	DrawErr   error
	CommitErr error
}

func (d *StubDisplay) Draw(cmds []render.Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Draws = append(d.Draws, cmds)
	return d.DrawErr
}

func (d *StubDisplay) Commit(ctx context.Context) error {
	_ = ctx
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Commits++
	return d.CommitErr
}

func (d *StubDisplay) PowerOff() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.PowerOffs++
	return nil
}

// DrawCount returns how many times Draw was called.
func (d *StubDisplay) DrawCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Draws)
}

// Published is one call captured by StubPublisher.
type Published struct {
	Outcome    departures.Outcome
	PixelShift int
	At         time.Time
}

// StubPublisher is a test double for poller.Publisher.
type StubPublisher struct {
	mu    sync.Mutex
	Calls []Published
}

func (p *StubPublisher) Publish(outcome departures.Outcome, pixelShift int, at time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls = append(p.Calls, Published{Outcome: outcome, PixelShift: pixelShift, At: at})
}

// Shifts returns the pixel shifts seen so far.
func (p *StubPublisher) Shifts() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int, 0, len(p.Calls))
	for _, c := range p.Calls {
		out = append(out, c.PixelShift)
	}
	return out
}
