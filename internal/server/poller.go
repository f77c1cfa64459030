package server

import (
	"context"

	"github.com/preston-bernstein/departure-board/internal/domain/departures"
	"github.com/preston-bernstein/departure-board/internal/poller"
)

// Poller defines the poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	Trigger() bool
	RunOnce(ctx context.Context) departures.Outcome
}
