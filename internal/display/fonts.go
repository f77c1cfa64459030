package display

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"

	"github.com/preston-bernstein/departure-board/internal/render"
)

func faceFor(f render.Font) font.Face {
	switch f {
	case render.FontMonoBold24:
		return inconsolata.Bold8x16
	default:
		return basicfont.Face7x13
	}
}
