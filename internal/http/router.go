package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/departure-board/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. The admin route is only mounted when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/board", handler.Board)
	mux.HandleFunc("/frame.png", handler.Frame)
	if admin != nil {
		mux.HandleFunc("/admin/refresh", admin.Refresh)
	}
	return mux
}
