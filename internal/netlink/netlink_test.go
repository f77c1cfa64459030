package netlink

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"
)

func TestAlwaysIsUp(t *testing.T) {
	if err := (Always{}).Check(context.Background()); err != nil {
		t.Fatalf("expected always link to be up, got %v", err)
	}
}

func TestLinkFuncPassesErrorThrough(t *testing.T) {
	down := LinkFunc(func(ctx context.Context) error { return errors.New("no carrier") })
	if err := down.Check(context.Background()); err == nil || err.Error() != "no carrier" {
		t.Fatalf("expected link func error to report down, got %v", err)
	}
}

func TestProbeDialsListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	p := NewProbe(ln.Addr().String(), time.Second)
	if err := p.Check(context.Background()); err != nil {
		t.Fatalf("expected probe to succeed, got %v", err)
	}
	if p.Addr() != ln.Addr().String() {
		t.Fatalf("unexpected addr %s", p.Addr())
	}
}

func TestProbeReportsDialFailure(t *testing.T) {
	p := NewProbe("example.invalid:80", time.Second)
	p.dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		return nil, errors.New("network unreachable")
	}
	err := p.Check(context.Background())
	if err == nil || !strings.Contains(err.Error(), "network unreachable") {
		t.Fatalf("expected dial error, got %v", err)
	}
}

func TestProbeWithoutAddress(t *testing.T) {
	if err := NewProbe("", 0).Check(context.Background()); err == nil {
		t.Fatalf("expected error without address")
	}
}

func TestNewProbeDefaultsTimeout(t *testing.T) {
	if p := NewProbe("x:1", 0); p.timeout != defaultProbeTimeout {
		t.Fatalf("expected default timeout, got %s", p.timeout)
	}
}
