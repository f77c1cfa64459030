package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/departure-board/internal/domain/departures"
	"github.com/preston-bernstein/departure-board/internal/timeutil"
)

// Row is one departure as it currently appears on the panel.
type Row struct {
	Time         string `json:"time"`
	Scheduled    string `json:"scheduled"`
	DelayMinutes int    `json:"delayMinutes"`
}

// Board mirrors what the panel is showing.
type Board struct {
	Outcome    departures.Kind `json:"outcome"`
	Reason     string          `json:"reason,omitempty"`
	PixelShift int             `json:"pixelShift"`
	Departures []Row           `json:"departures"`
	DrawnAt    time.Time       `json:"drawnAt"`
	CheckedAt  time.Time       `json:"checkedAt"`
}

// BoardStore keeps a thread-safe copy of the latest board in memory.
type BoardStore struct {
	mu    sync.RWMutex
	board Board
	set   bool
}

// NewBoardStore constructs an empty BoardStore.
func NewBoardStore() *BoardStore {
	return &BoardStore{}
}

// Publish folds a cycle outcome into the board. Unchanged keeps the rows that are
// still on the panel and only bumps CheckedAt.
func (s *BoardStore) Publish(outcome departures.Outcome, pixelShift int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board.CheckedAt = at
	switch outcome.Kind {
	case departures.KindUnchanged:
		if !s.set {
			return
		}
		s.board.Outcome = departures.KindUnchanged
		return
	case departures.KindFailed:
		s.board = Board{
			Outcome:    departures.KindFailed,
			Reason:     outcome.Reason,
			PixelShift: pixelShift,
			Departures: []Row{},
			DrawnAt:    at,
			CheckedAt:  at,
		}
	case departures.KindSuccess:
		rows := make([]Row, 0, len(outcome.Departures))
		for _, rec := range outcome.Departures {
			rows = append(rows, Row{
				Time:         timeutil.NormalizeDeparture(rec.ScheduledDeparture),
				Scheduled:    rec.ScheduledDeparture,
				DelayMinutes: rec.DelayMinutes,
			})
		}
		s.board = Board{
			Outcome:    departures.KindSuccess,
			PixelShift: pixelShift,
			Departures: rows,
			DrawnAt:    at,
			CheckedAt:  at,
		}
	default:
		return
	}
	s.set = true
}

// Board returns a copy of the current board and whether anything was drawn yet.
func (s *BoardStore) Board() (Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.board
	b.Departures = append([]Row(nil), s.board.Departures...)
	if b.Departures == nil {
		b.Departures = []Row{}
	}
	return b, s.set
}
