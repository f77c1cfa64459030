package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strconv"

	"github.com/preston-bernstein/departure-board/internal/logging"
	"github.com/preston-bernstein/departure-board/internal/poller"
	"github.com/preston-bernstein/departure-board/internal/store"
)

// BoardSource exposes the board as last drawn.
type BoardSource interface {
	Board() (store.Board, bool)
}

// FrameSource exposes the last committed PNG frame.
type FrameSource interface {
	Frame() []byte
}

// Handler serves the status endpoints.
type Handler struct {
	board    BoardSource
	frames   FrameSource
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. frames may be nil when the panel does not produce images.
func NewHandler(board BoardSource, frames FrameSource, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		board:    board,
		frames:   frames,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the board is being kept up to date.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Board returns the departures currently on the panel.
func (h *Handler) Board(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.board == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "board not configured", h.logger)
		return
	}
	board, ok := h.board.Board()
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "board not drawn yet", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	if logger != nil {
		logger.Debug("served board", "outcome", board.Outcome, "count", len(board.Departures))
	}
	writeJSON(w, nethttp.StatusOK, board, h.logger)
}

// Frame returns the last committed panel image.
func (h *Handler) Frame(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.frames == nil {
		writeError(w, r, nethttp.StatusNotFound, "frames not available for this display", h.logger)
		return
	}
	frame := h.frames.Frame()
	if len(frame) == 0 {
		writeError(w, r, nethttp.StatusNotFound, "no frame committed yet", h.logger)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(frame)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(nethttp.StatusOK)
	if _, err := w.Write(frame); err != nil {
		logging.WarnErr(loggerFromContext(r, h.logger), "failed to write frame", err)
	}
}
