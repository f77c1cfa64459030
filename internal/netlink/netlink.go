// Package netlink answers "is the network up" before a fetch is attempted.
package netlink

import (
	"context"
	"fmt"
	"net"
	"time"
)

const defaultProbeTimeout = 2 * time.Second

// Link reports whether the network is usable. A nil error means connected.
type Link interface {
	Check(ctx context.Context) error
}

// LinkFunc adapts a function to Link.
type LinkFunc func(ctx context.Context) error

// Check calls f.
func (f LinkFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// Always is a Link that is always up. Used when association is managed outside the process.
type Always struct{}

// Check always succeeds.
func (Always) Check(context.Context) error { return nil }

type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Probe checks connectivity by opening (and immediately closing) a TCP connection.
type Probe struct {
	addr    string
	timeout time.Duration
	dial    dialFunc
}

// NewProbe builds a probe for host:port. Non-positive timeouts fall back to a default.
func NewProbe(addr string, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	d := &net.Dialer{}
	return &Probe{addr: addr, timeout: timeout, dial: d.DialContext}
}

// Addr returns the probed address.
func (p *Probe) Addr() string {
	return p.addr
}

// Check dials the probe address within the configured timeout.
func (p *Probe) Check(ctx context.Context) error {
	if p.addr == "" {
		return fmt.Errorf("no probe address configured")
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dial(ctx, "tcp", p.addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", p.addr, err)
	}
	_ = conn.Close()
	return nil
}
