package render

// Panel geometry and board layout, in pixels.
const (
	Width  = 400
	Height = 300

	HeaderOffset = 60
	RowHeight    = 44

	// ShiftCycle is the number of distinct vertical offsets used for burn-in mitigation.
	ShiftCycle = 5

	HeaderLabel = "S4 Sihlau -> Zurich"

	margin      = 10
	ruleInset   = 5
	logoX       = 8
	logoY       = 8
	logoSize    = 40
	headerX     = 60
	headerFontH = 18
	delayRightX = Width - margin

	ErrorHeadline = "Connection Failed"
	ErrorHint     = "Check WiFi & API"
	errorLine1Y   = 50
	errorLine2Y   = 80
	errorReasonY  = 120
)

// RowY returns the baseline of the 1-based departure row for the given shift.
func RowY(row, pixelShift int) int {
	return HeaderOffset + row*RowHeight + pixelShift
}

// HeaderY returns the baseline of the header label for the given shift.
func HeaderY(pixelShift int) int {
	return HeaderOffset - (HeaderOffset-headerFontH)/2 + pixelShift
}

// NextShift advances the burn-in offset, wrapping after ShiftCycle values.
func NextShift(pixelShift int) int {
	return normalizeShift(pixelShift + 1)
}

func normalizeShift(pixelShift int) int {
	s := pixelShift % ShiftCycle
	if s < 0 {
		s += ShiftCycle
	}
	return s
}
