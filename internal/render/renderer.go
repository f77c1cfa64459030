// Package render turns a fetch outcome into draw commands for the panel.
// It never touches hardware; a display.Display consumes the commands.
package render

import (
	"log/slog"
	"strconv"

	"github.com/preston-bernstein/departure-board/internal/domain/departures"
	"github.com/preston-bernstein/departure-board/internal/logging"
	"github.com/preston-bernstein/departure-board/internal/timeutil"
)

// Renderer lays out the board.
type Renderer struct {
	logger *slog.Logger
	header string
}

// New constructs a Renderer. A nil logger disables diagnostics.
func New(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger, header: HeaderLabel}
}

// Render is a convenience wrapper around a Renderer without logging.
func Render(outcome departures.Outcome, pixelShift int) []Command {
	return New(nil).Render(outcome, pixelShift)
}

// Render returns the commands for outcome. Unchanged yields no commands at all.
func (r *Renderer) Render(outcome departures.Outcome, pixelShift int) []Command {
	switch outcome.Kind {
	case departures.KindFailed:
		return r.renderFailure(outcome.Reason)
	case departures.KindSuccess:
		return r.renderBoard(outcome.Departures, normalizeShift(pixelShift))
	default:
		return nil
	}
}

func (r *Renderer) renderFailure(reason string) []Command {
	logging.Warn(r.logger, "rendering failure screen", logging.FieldReason, reason)
	return []Command{
		Clear(White),
		Text(margin, errorLine1Y, FontSans18, Red, ErrorHeadline),
		Text(margin, errorLine2Y, FontSans18, Red, ErrorHint),
		Text(margin, errorReasonY, FontSans18, Red, reason),
	}
}

func (r *Renderer) renderBoard(records []departures.Record, shift int) []Command {
	cmds := make([]Command, 0, 4+2*len(records))
	cmds = append(cmds,
		Clear(White),
		Blit(logoX, logoY+shift, Logo, Red),
		Text(headerX, HeaderY(shift), FontSans18, Black, r.header),
		Line(ruleInset, HeaderOffset+shift, Width-ruleInset, HeaderOffset+shift, Black),
	)
	logging.Info(r.logger, "rendering board",
		logging.FieldCount, len(records),
		logging.FieldPixelShift, shift,
	)

	for i, rec := range records {
		row := i + 1
		clock := timeutil.NormalizeDeparture(rec.ScheduledDeparture)
		if clock == timeutil.UnknownClock {
			logging.Warn(r.logger, "failed to parse departure time",
				logging.FieldRow, row,
				"departure", rec.ScheduledDeparture,
			)
		}
		y := RowY(row, shift)
		cmds = append(cmds, Text(margin, y, FontMonoBold24, Black, RowText(clock)))
		if rec.Delayed() {
			cmds = append(cmds, TextRight(delayRightX, y, FontMonoBold24, Red, DelayText(rec.DelayMinutes)))
		}
	}
	return cmds
}

// RowText is the text of one departure row.
func RowText(clock string) string {
	return " - " + clock
}

// DelayText is the delay annotation, e.g. "+3m".
func DelayText(minutes int) string {
	return "+" + strconv.Itoa(minutes) + "m"
}
