// Package fetch runs one request against the timetable source and decides
// whether the board needs redrawing.
package fetch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/departure-board/internal/domain/departures"
	"github.com/preston-bernstein/departure-board/internal/fingerprint"
	"github.com/preston-bernstein/departure-board/internal/logging"
	"github.com/preston-bernstein/departure-board/internal/metrics"
	"github.com/preston-bernstein/departure-board/internal/netlink"
	"github.com/preston-bernstein/departure-board/internal/providers"
	"github.com/preston-bernstein/departure-board/internal/providers/opendata"
)

// ParseFunc turns a response body into departure records.
type ParseFunc func(body []byte) ([]departures.Record, error)

// Config wires a Client.
type Config struct {
	Link    netlink.Link
	Source  providers.Source
	Parse   ParseFunc
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Client owns the fingerprint of the last accepted response.
// It is meant to be driven by a single poller.
type Client struct {
	link    netlink.Link
	source  providers.Source
	parse   ParseFunc
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	mu   sync.Mutex
	last uint32
}

// New constructs a Client. A nil Link is treated as always up; a nil Parse uses opendata.Parse.
func New(cfg Config) *Client {
	link := cfg.Link
	if link == nil {
		link = netlink.Always{}
	}
	parse := cfg.Parse
	if parse == nil {
		parse = opendata.Parse
	}
	return &Client{
		link:    link,
		source:  cfg.Source,
		parse:   parse,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		now:     time.Now,
	}
}

// Fingerprint returns the checksum of the last accepted body, or fingerprint.None.
func (c *Client) Fingerprint() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Fetch performs one cycle of link check, request, change detection and parse.
// Every failure clears the fingerprint so the next good response is redrawn.
func (c *Client) Fetch(ctx context.Context) departures.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.now()
	out := c.fetch(ctx)
	c.record(out, c.now().Sub(start))
	return out
}

func (c *Client) fetch(ctx context.Context) departures.Outcome {
	if err := c.link.Check(ctx); err != nil {
		return c.fail(ctx, &providers.LinkDownError{Detail: err.Error()}, "network link down")
	}
	if c.source == nil {
		return c.fail(ctx, &providers.TransportError{Err: errNoSource}, "no source configured")
	}

	body, err := c.source.Fetch(ctx)
	if err != nil {
		return c.fail(ctx, err, "request failed")
	}

	sum := fingerprint.Sum(body)
	if c.last != fingerprint.None && !fingerprint.Changed(sum, c.last) {
		logging.Info(c.logger, "response unchanged", logging.FieldChecksum, fingerprint.Hex(sum))
		return departures.Unchanged()
	}
	c.last = sum

	records, err := c.parse(body)
	if err != nil {
		return c.fail(ctx, err, "response rejected")
	}
	logging.Info(c.logger, "departures parsed",
		logging.FieldChecksum, fingerprint.Hex(sum),
		logging.FieldCount, len(records),
	)
	return departures.Success(records)
}

func (c *Client) fail(ctx context.Context, err error, msg string) departures.Outcome {
	c.last = fingerprint.None
	args := []any{logging.FieldReason, Classify(err)}
	if tErr, ok := providers.AsTransportError(err); ok && tErr.Body != "" {
		args = append(args, logging.FieldBody, tErr.Body)
	}
	logging.ErrorContext(ctx, c.logger, msg, err, args...)
	return departures.Failed(err)
}

func (c *Client) record(out departures.Outcome, d time.Duration) {
	switch out.Kind {
	case departures.KindSuccess:
		c.metrics.RecordFetch(metrics.OutcomeSuccess, "", d)
	case departures.KindUnchanged:
		c.metrics.RecordFetch(metrics.OutcomeUnchanged, "", d)
	default:
		c.metrics.RecordFetch(metrics.OutcomeFailed, Classify(out.Err), d)
	}
}
