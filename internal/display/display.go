// Package display holds the sinks that consume render commands.
package display

import (
	"context"

	"github.com/preston-bernstein/departure-board/internal/render"
)

// Display is the paged panel the board draws on. Draw stages a full page,
// Commit pushes it to the glass, PowerOff parks the panel until the next cycle.
type Display interface {
	Draw(cmds []render.Command) error
	Commit(ctx context.Context) error
	PowerOff() error
}

// Kinds accepted by configuration.
const (
	KindPNG      = "png"
	KindTerminal = "terminal"
)
