package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/preston-bernstein/departure-board/internal/config"
	"github.com/preston-bernstein/departure-board/internal/display"
	"github.com/preston-bernstein/departure-board/internal/domain/departures"
	"github.com/preston-bernstein/departure-board/internal/fetch"
	httpserver "github.com/preston-bernstein/departure-board/internal/http"
	"github.com/preston-bernstein/departure-board/internal/http/handlers"
	"github.com/preston-bernstein/departure-board/internal/http/middleware"
	"github.com/preston-bernstein/departure-board/internal/logging"
	"github.com/preston-bernstein/departure-board/internal/metrics"
	"github.com/preston-bernstein/departure-board/internal/poller"
	"github.com/preston-bernstein/departure-board/internal/providers"
	"github.com/preston-bernstein/departure-board/internal/store"
)

var metricsSetup = metrics.Setup

// Server wires the board pipeline to its status endpoints.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	board         *store.BoardStore
	display       display.Display
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured source, link probe and display.
// Terminal output goes to stdout.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return NewWithOutput(cfg, logger, os.Stdout)
}

// NewWithOutput is New with the terminal display writing to out.
func NewWithOutput(cfg config.Config, logger *slog.Logger, out io.Writer) *Server {
	return newServer(cfg, logger, nil, out, nil)
}

// newServer builds the full graph. A nil src selects one from cfg; a nil recorder runs metrics setup.
func newServer(cfg config.Config, logger *slog.Logger, src providers.Source, out io.Writer, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if src == nil {
		src = selectSource(cfg, logger)
	}
	logging.Info(logger, "source selected", slog.String(logging.FieldSource, sourceName(src)))

	client := fetch.New(fetch.Config{
		Link:    selectLink(cfg),
		Source:  src,
		Logger:  logger,
		Metrics: recorder,
	})
	panel, frames := selectDisplay(cfg, out, logger)
	board := store.NewBoardStore()
	plr := poller.New(poller.Config{
		Fetcher:   client,
		Display:   panel,
		Publisher: board,
		Logger:    logger,
		Metrics:   recorder,
		Interval:  cfg.PollInterval,
	})
	httpSrv := buildHTTPServer(cfg, board, frames, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		board:         board,
		display:       panel,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		board:      store.NewBoardStore(),
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, board *store.BoardStore, frames handlers.FrameSource, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	var refresher handlers.Refresher
	if plr != nil {
		statusFn = plr.Status
		refresher = plr
	}

	handler := handlers.NewHandler(board, frames, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(refresher, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// RunOnce performs a single fetch, render and display cycle without serving HTTP.
func (s *Server) RunOnce(ctx context.Context) departures.Outcome {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout+onceSlack)
	defer cancel()

	out := s.poller.RunOnce(ctx)
	s.flushMetrics()
	return out
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.WarnErr(s.logger, "metrics shutdown failed", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.WarnErr(s.logger, "metrics server shutdown failed", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.display != nil {
		if err := s.display.PowerOff(); err != nil {
			logging.WarnErr(s.logger, "display power off failed", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func (s *Server) flushMetrics() {
	if s.metricsStop == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.metricsStop(ctx); err != nil {
		logging.WarnErr(s.logger, "metrics shutdown failed", err)
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.WarnErr(logger, "metrics setup failed, continuing without telemetry", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           mux,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.WarnErr(logger, name+" server failed", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Board exposes the board store.
func (s *Server) Board() *store.BoardStore {
	return s.board
}

// Metrics exposes the recorder.
func (s *Server) Metrics() *metrics.Recorder {
	return s.metrics
}
