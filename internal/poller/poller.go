package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/departure-board/internal/display"
	"github.com/preston-bernstein/departure-board/internal/domain/departures"
	"github.com/preston-bernstein/departure-board/internal/logging"
	"github.com/preston-bernstein/departure-board/internal/metrics"
	"github.com/preston-bernstein/departure-board/internal/render"
)

const defaultInterval = 120 * time.Second

// Fetcher produces one outcome per call. fetch.Client is the production implementation.
type Fetcher interface {
	Fetch(ctx context.Context) departures.Outcome
}

// Publisher receives the outcome of every cycle together with the shift it was drawn at.
type Publisher interface {
	Publish(outcome departures.Outcome, pixelShift int, at time.Time)
}

// Config wires a Poller.
type Config struct {
	Fetcher   Fetcher
	Display   display.Display
	Publisher Publisher
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
	Interval  time.Duration
}

// Poller runs fetch, render and display cycles on an interval. It owns the pixel shift.
type Poller struct {
	fetcher   Fetcher
	display   display.Display
	publisher Publisher
	renderer  *render.Renderer
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	trigger  chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	cycleMu sync.Mutex
	shift   int

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastOutcome         departures.Kind
	LastAttempt         time.Time
	LastSuccess         time.Time
	PixelShift          int
	Cycles              int
}

// IsReady reports whether the poller has had a recent good fetch and is not failing repeatedly.
// An unchanged response counts as good.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(cfg Config) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		fetcher:   cfg.Fetcher,
		display:   cfg.Display,
		publisher: cfg.Publisher,
		renderer:  render.New(cfg.Logger),
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
		trigger:   make(chan struct{}, 1),
	}
}

// Interval returns the configured cycle interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.cycle(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.cycle(ctx)
			case <-p.trigger:
				logging.Info(p.logger, "manual refresh")
				p.cycle(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// Trigger queues an immediate cycle on the polling goroutine.
// It returns false when a refresh is already queued.
func (p *Poller) Trigger() bool {
	select {
	case p.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// RunOnce runs a single cycle on the caller's goroutine.
func (p *Poller) RunOnce(ctx context.Context) departures.Outcome {
	return p.cycle(ctx)
}

func (p *Poller) cycle(ctx context.Context) departures.Outcome {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	start := p.now()
	p.recordAttempt(start)

	outcome := departures.Failed(errNoFetcher)
	if p.fetcher != nil {
		outcome = p.fetcher.Fetch(ctx)
	}
	shift := p.shift
	cmds := p.renderer.Render(outcome, shift)
	displayErr := p.show(ctx, cmds)

	if outcome.IsSuccess() {
		p.metrics.RecordRender(len(outcome.Departures))
		p.shift = render.NextShift(p.shift)
	}
	if p.publisher != nil {
		p.publisher.Publish(outcome, shift, start)
	}

	err := errors.Join(outcome.Err, displayErr)
	elapsed := p.now().Sub(start)
	p.metrics.RecordPollerCycle(elapsed, err)
	if err != nil {
		p.recordFailure(outcome.Kind, err, start)
		logging.Error(p.logger, "cycle failed", err,
			logging.FieldOutcome, string(outcome.Kind),
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
		return outcome
	}
	p.recordSuccess(outcome.Kind, start)
	logging.Info(p.logger, "cycle complete",
		logging.FieldOutcome, string(outcome.Kind),
		logging.FieldPixelShift, shift,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return outcome
}

// show draws, commits and powers off. Commit and power-off run even when nothing was drawn.
func (p *Poller) show(ctx context.Context, cmds []render.Command) error {
	if p.display == nil {
		return nil
	}
	var errs []error
	if len(cmds) > 0 {
		if err := p.display.Draw(cmds); err != nil {
			errs = append(errs, err)
		}
	}
	if err := p.display.Commit(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := p.display.PowerOff(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(kind departures.Kind, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastOutcome = kind
	p.status.LastSuccess = at
	p.status.PixelShift = p.shift
	p.status.Cycles++
}

func (p *Poller) recordFailure(kind departures.Kind, err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastOutcome = kind
	p.status.LastAttempt = at
	p.status.PixelShift = p.shift
	p.status.Cycles++
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

var errNoFetcher = errors.New("no fetcher configured")
