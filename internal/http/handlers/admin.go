package handlers

import (
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/departure-board/internal/http/middleware"
	"github.com/preston-bernstein/departure-board/internal/logging"
)

// Refresher queues an out-of-band board cycle.
type Refresher interface {
	Trigger() bool
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables the endpoints.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh queues an immediate fetch and redraw. The cycle runs on the poller's
// goroutine, so the response only confirms it was queued.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", middleware.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "poller not running", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	status := "queued"
	if !h.refresher.Trigger() {
		status = "already queued"
	}
	logging.Info(logger, "admin refresh", slog.String("status", status))
	writeJSON(w, http.StatusAccepted, map[string]string{"status": status}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
