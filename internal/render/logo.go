package render

// Logo is the 40x40 two-way arrow mark drawn left of the header.
var Logo = buildLogo()

func buildLogo() *Bitmap {
	b := &Bitmap{Width: logoSize, Height: logoSize}
	b.Bits = make([]byte, b.Stride()*b.Height)

	// central square
	for y := 10; y < 30; y++ {
		for x := 12; x < 28; x++ {
			b.set(x, y)
		}
	}
	// shaft
	for y := 17; y < 23; y++ {
		for x := 4; x < 36; x++ {
			b.set(x, y)
		}
	}
	// arrow heads
	for i := 0; i < 8; i++ {
		for y := 20 - i; y < 20+i; y++ {
			b.set(i, y)
			b.set(logoSize-1-i, y)
		}
	}
	return b
}
