package render

// Op selects the primitive a Command performs.
type Op uint8

const (
	OpClear Op = iota
	OpText
	OpLine
	OpBitmap
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpText:
		return "text"
	case OpLine:
		return "line"
	case OpBitmap:
		return "bitmap"
	default:
		return "unknown"
	}
}

// Color is one of the three inks of the panel.
type Color uint8

const (
	White Color = iota
	Black
	Red
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	case Red:
		return "red"
	default:
		return "unknown"
	}
}

// Font names the faces the board uses.
type Font uint8

const (
	FontNone Font = iota
	// FontSans18 is used for the header and messages.
	FontSans18
	// FontMonoBold24 is used for departure rows so the times line up.
	FontMonoBold24
)

// Align is the horizontal anchoring of a text command relative to X.
type Align uint8

const (
	AlignLeft Align = iota
	AlignRight
)

// Bitmap is a 1-bit image, row-major, most significant bit first, each row padded to a whole byte.
type Bitmap struct {
	Width  int
	Height int
	Bits   []byte
}

// Stride is the number of bytes per row.
func (b *Bitmap) Stride() int {
	return (b.Width + 7) / 8
}

// At reports whether the pixel at (x, y) is set.
func (b *Bitmap) At(x, y int) bool {
	if b == nil || x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	idx := y*b.Stride() + x/8
	if idx >= len(b.Bits) {
		return false
	}
	return b.Bits[idx]&(0x80>>uint(x%8)) != 0
}

func (b *Bitmap) set(x, y int) {
	b.Bits[y*b.Stride()+x/8] |= 0x80 >> uint(x%8)
}

// Command is one primitive draw operation. Coordinates are panel pixels;
// text Y is the baseline, as with a cursor-based display library.
type Command struct {
	Op     Op
	X, Y   int
	X2, Y2 int
	Text   string
	Font   Font
	Color  Color
	Align  Align
	Bitmap *Bitmap
}

// Clear fills the whole panel with color.
func Clear(color Color) Command {
	return Command{Op: OpClear, Color: color}
}

// Text places s with its baseline starting at (x, y).
func Text(x, y int, font Font, color Color, s string) Command {
	return Command{Op: OpText, X: x, Y: y, Font: font, Color: color, Text: s}
}

// TextRight places s so that it ends at x.
func TextRight(x, y int, font Font, color Color, s string) Command {
	return Command{Op: OpText, X: x, Y: y, Font: font, Color: color, Text: s, Align: AlignRight}
}

// Line draws a one-pixel line from (x1, y1) to (x2, y2).
func Line(x1, y1, x2, y2 int, color Color) Command {
	return Command{Op: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Color: color}
}

// Blit draws the set pixels of bmp in color with the top-left corner at (x, y).
func Blit(x, y int, bmp *Bitmap, color Color) Command {
	return Command{Op: OpBitmap, X: x, Y: y, Bitmap: bmp, Color: color}
}
