package display

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/preston-bernstein/departure-board/internal/render"
)

// Terminal prints the text content of each committed page to a writer.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	pending []render.Command
	dirty   bool

	frame lipgloss.Style
	black lipgloss.Style
	red   lipgloss.Style
}

// NewTerminal writes pages to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:   out,
		frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		black: lipgloss.NewStyle().Bold(true),
		red:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// Draw stages cmds. A clear starts a new page.
func (t *Terminal) Draw(cmds []render.Command) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range cmds {
		if c.Op == render.OpClear {
			t.pending = t.pending[:0]
		}
		if c.Op == render.OpText {
			t.pending = append(t.pending, c)
		}
	}
	if len(cmds) > 0 {
		t.dirty = true
	}
	return nil
}

// Commit prints the staged page, if any.
func (t *Terminal) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.dirty {
		return nil
	}
	page := t.frame.Render(strings.Join(t.lines(), "\n"))
	if _, err := fmt.Fprintln(t.out, page); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	t.dirty = false
	return nil
}

// PowerOff is a no-op for a terminal.
func (t *Terminal) PowerOff() error { return nil }

// lines groups text by baseline, left-aligned text before right-aligned text.
func (t *Terminal) lines() []string {
	byY := map[int][]render.Command{}
	var ys []int
	for _, c := range t.pending {
		if _, ok := byY[c.Y]; !ok {
			ys = append(ys, c.Y)
		}
		byY[c.Y] = append(byY[c.Y], c)
	}
	sort.Ints(ys)

	out := make([]string, 0, len(ys))
	for _, y := range ys {
		cmds := byY[y]
		sort.SliceStable(cmds, func(i, j int) bool { return cmds[i].Align < cmds[j].Align })
		parts := make([]string, 0, len(cmds))
		for _, c := range cmds {
			parts = append(parts, t.style(c.Color).Render(c.Text))
		}
		out = append(out, strings.Join(parts, "  "))
	}
	return out
}

func (t *Terminal) style(c render.Color) lipgloss.Style {
	if c == render.Red {
		return t.red
	}
	return t.black
}
