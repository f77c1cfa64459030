package display

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/departure-board/internal/domain/departures"
	"github.com/preston-bernstein/departure-board/internal/render"
)

func boardCommands(delay int) []render.Command {
	return render.Render(departures.Success([]departures.Record{
		{ScheduledDeparture: "2026-01-02T20:53:00+0100", DelayMinutes: delay},
		{ScheduledDeparture: "2026-01-02T21:13:00+0100"},
	}), 0)
}

func TestPanelCommitWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "frame.png")
	p := NewPanel(path, nil)

	if err := p.Draw(boardCommands(3)); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if err := p.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected frame on disk: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("frame is not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != render.Width || b.Dy() != render.Height {
		t.Fatalf("unexpected frame size %v", b)
	}
	if !bytes.Equal(data, p.Frame()) {
		t.Fatalf("in-memory frame differs from file")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestPanelRasterizesLayout(t *testing.T) {
	p := NewPanel("", nil)
	if err := p.Draw(boardCommands(0)); err != nil {
		t.Fatalf("draw: %v", err)
	}

	if got := p.ColorAt(render.Width/2, render.HeaderOffset); got != render.Black {
		t.Fatalf("expected rule pixel to be black, got %s", got)
	}
	if got := p.ColorAt(28, 28); got != render.Red {
		t.Fatalf("expected logo pixel to be red, got %s", got)
	}
	if got := p.ColorAt(render.Width-2, render.Height-2); got != render.White {
		t.Fatalf("expected background to be white, got %s", got)
	}
}

func TestPanelDelayIsRed(t *testing.T) {
	p := NewPanel("", nil)
	if err := p.Draw(boardCommands(3)); err != nil {
		t.Fatalf("draw: %v", err)
	}
	y := render.RowY(1, 0)
	found := false
	for x := render.Width / 2; x < render.Width; x++ {
		for dy := -12; dy <= 2; dy++ {
			if p.ColorAt(x, y+dy) == render.Red {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected red delay annotation on row 1")
	}
}

func TestPanelCommitWithoutDrawIsNoop(t *testing.T) {
	p := NewPanel("", nil)
	ctx := context.Background()

	if err := p.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if p.Commits() != 0 || p.Frame() != nil {
		t.Fatalf("expected no frame before first draw")
	}

	_ = p.Draw(boardCommands(0))
	_ = p.Commit(ctx)
	_ = p.PowerOff()

	// Unchanged cycle: empty draw, commit, power off.
	_ = p.Draw(nil)
	_ = p.Commit(ctx)
	_ = p.PowerOff()

	if p.Commits() != 1 {
		t.Fatalf("expected exactly one commit, got %d", p.Commits())
	}
	if p.Powered() {
		t.Fatalf("expected panel to be powered off")
	}
}

func TestPanelFailureScreen(t *testing.T) {
	p := NewPanel("", nil)
	_ = p.Draw(boardCommands(0))
	if err := p.Draw(render.Render(departures.Failed(os.ErrDeadlineExceeded), 0)); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if got := p.ColorAt(render.Width/2, render.HeaderOffset); got != render.White {
		t.Fatalf("expected failure screen to clear the board, got %s", got)
	}
	red := 0
	for y := 35; y <= 52; y++ {
		for x := 10; x < 150; x++ {
			if p.ColorAt(x, y) == render.Red {
				red++
			}
		}
	}
	if red == 0 {
		t.Fatalf("expected red headline pixels")
	}
}

func TestPanelCommitRespectsContext(t *testing.T) {
	p := NewPanel("", nil)
	_ = p.Draw(boardCommands(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Commit(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestPanelRejectsNilBitmap(t *testing.T) {
	p := NewPanel("", nil)
	err := p.Draw([]render.Command{{Op: render.OpBitmap}})
	if err == nil {
		t.Fatalf("expected error for missing bitmap")
	}
}

func TestPanelCommitFailsOnUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	p := NewPanel(filepath.Join(blocker, "frame.png"), nil)
	_ = p.Draw(boardCommands(0))
	if err := p.Commit(context.Background()); err == nil {
		t.Fatalf("expected write error")
	}
}
