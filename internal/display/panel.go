package display

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/preston-bernstein/departure-board/internal/logging"
	"github.com/preston-bernstein/departure-board/internal/render"
)

var palette = color.Palette{
	color.White,
	color.Black,
	color.RGBA{R: 0xd0, A: 0xff},
}

func paletteIndex(c render.Color) uint8 {
	switch c {
	case render.Black:
		return 1
	case render.Red:
		return 2
	default:
		return 0
	}
}

// Panel is a three-colour framebuffer. Each commit encodes the page as PNG and,
// when a path is configured, replaces the file at that path.
type Panel struct {
	mu      sync.Mutex
	logger  *slog.Logger
	path    string
	buf     *image.Paletted
	pending bool
	powered bool
	frame   []byte
	commits int
}

// NewPanel creates a blank panel. An empty path keeps frames in memory only.
func NewPanel(path string, logger *slog.Logger) *Panel {
	return &Panel{
		logger: logger,
		path:   path,
		buf:    image.NewPaletted(image.Rect(0, 0, render.Width, render.Height), palette),
	}
}

// Draw rasterizes cmds into the page buffer.
func (p *Panel) Draw(cmds []render.Command) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.powered = true
	for i, c := range cmds {
		if err := p.apply(c); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, c.Op, err)
		}
	}
	if len(cmds) > 0 {
		p.pending = true
	}
	return nil
}

func (p *Panel) apply(c render.Command) error {
	idx := paletteIndex(c.Color)
	switch c.Op {
	case render.OpClear:
		for i := range p.buf.Pix {
			p.buf.Pix[i] = idx
		}
	case render.OpText:
		p.text(c, idx)
	case render.OpLine:
		p.line(c.X, c.Y, c.X2, c.Y2, idx)
	case render.OpBitmap:
		if c.Bitmap == nil {
			return fmt.Errorf("bitmap missing")
		}
		for y := 0; y < c.Bitmap.Height; y++ {
			for x := 0; x < c.Bitmap.Width; x++ {
				if c.Bitmap.At(x, y) {
					p.buf.SetColorIndex(c.X+x, c.Y+y, idx)
				}
			}
		}
	default:
		return fmt.Errorf("unsupported op")
	}
	return nil
}

func (p *Panel) text(c render.Command, idx uint8) {
	face := faceFor(c.Font)
	d := &font.Drawer{
		Dst:  p.buf,
		Src:  image.NewUniform(palette[idx]),
		Face: face,
		Dot:  fixed.P(c.X, c.Y),
	}
	if c.Align == render.AlignRight {
		d.Dot.X -= d.MeasureString(c.Text)
	}
	d.DrawString(c.Text)
}

func (p *Panel) line(x0, y0, x1, y1 int, idx uint8) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		p.buf.SetColorIndex(x0, y0, idx)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Commit publishes the staged page. Without a pending draw it does nothing,
// so an unchanged board never causes a refresh.
func (p *Panel) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.pending {
		return nil
	}
	var out bytes.Buffer
	if err := png.Encode(&out, p.buf); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if p.path != "" {
		if err := writeFrame(p.path, out.Bytes()); err != nil {
			return err
		}
	}
	p.frame = out.Bytes()
	p.pending = false
	p.commits++
	logging.Info(p.logger, "frame committed", "path", p.path, "bytes", len(p.frame))
	return nil
}

// PowerOff parks the panel; the page buffer is retained.
func (p *Panel) PowerOff() error {
	p.mu.Lock()
	p.powered = false
	p.mu.Unlock()
	return nil
}

// Frame returns the last committed PNG, or nil if nothing was committed yet.
func (p *Panel) Frame() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frame == nil {
		return nil
	}
	return append([]byte(nil), p.frame...)
}

// Commits returns how many frames have been published.
func (p *Panel) Commits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.commits
}

// Powered reports whether the panel was drawn on since the last PowerOff.
func (p *Panel) Powered() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.powered
}

// ColorAt returns the ink at (x, y) in the page buffer.
func (p *Panel) ColorAt(x, y int) render.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.buf.ColorIndexAt(x, y) {
	case 1:
		return render.Black
	case 2:
		return render.Red
	default:
		return render.White
	}
}

func writeFrame(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create frame dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return os.Rename(tmp, path)
}
