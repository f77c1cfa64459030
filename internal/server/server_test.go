package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/departure-board/internal/config"
	"github.com/preston-bernstein/departure-board/internal/domain/departures"
	"github.com/preston-bernstein/departure-board/internal/metrics"
	"github.com/preston-bernstein/departure-board/internal/providers"
	"github.com/preston-bernstein/departure-board/internal/providers/fixture"
	"github.com/preston-bernstein/departure-board/internal/render"
	"github.com/preston-bernstein/departure-board/internal/store"
	"github.com/preston-bernstein/departure-board/internal/testutil"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Source = config.SourceFixture
	cfg.Display = config.DisplayConfig{
		Kind:      config.DisplayPNG,
		FramePath: filepath.Join(t.TempDir(), "frame.png"),
	}
	cfg.FetchTimeout = time.Second
	cfg.PollInterval = time.Minute
	return cfg
}

func TestRunOnceDrawsBoardAndFrame(t *testing.T) {
	cfg := testConfig(t)
	srv := newServer(cfg, nil, fixture.New(), io.Discard, metrics.NewRecorder())

	out := srv.RunOnce(context.Background())
	if !out.IsSuccess() || len(out.Departures) != 5 {
		t.Fatalf("expected five departures, got %+v", out)
	}

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/board", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var board store.Board
	testutil.DecodeJSON(t, rr, &board)
	if board.Outcome != departures.KindSuccess || len(board.Departures) != 5 {
		t.Fatalf("unexpected board %+v", board)
	}
	if board.Departures[0].Time != "20:53" {
		t.Fatalf("expected first departure at 20:53, got %q", board.Departures[0].Time)
	}

	frame := testutil.Serve(srv.Handler(), http.MethodGet, "/frame.png", nil)
	testutil.AssertStatus(t, frame, http.StatusOK)
	if ct := frame.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected png content type, got %q", ct)
	}
	if _, err := os.Stat(cfg.Display.FramePath); err != nil {
		t.Fatalf("expected frame on disk: %v", err)
	}

	snap := srv.Metrics().Snapshot()
	if snap.Fetches != 1 || snap.Successes != 1 || snap.Renders != 1 {
		t.Fatalf("unexpected metrics %+v", snap)
	}
}

func TestRunOnceTwiceReportsUnchanged(t *testing.T) {
	srv := newServer(testConfig(t), nil, fixture.New(), io.Discard, metrics.NewRecorder())

	if out := srv.RunOnce(context.Background()); !out.IsSuccess() {
		t.Fatalf("expected first run to draw, got %+v", out)
	}
	if out := srv.RunOnce(context.Background()); !out.IsUnchanged() {
		t.Fatalf("expected identical body to be unchanged, got %+v", out)
	}
	board, ok := srv.Board().Board()
	if !ok || len(board.Departures) != 5 {
		t.Fatalf("expected rows kept after unchanged cycle, got %+v", board)
	}
}

func TestRunOnceFailureShowsErrorScreen(t *testing.T) {
	cfg := testConfig(t)
	cfg.Display.Kind = config.DisplayTerminal
	var buf bytes.Buffer
	src := providers.SourceFunc(func(context.Context) ([]byte, error) {
		return nil, errors.New("dial tcp: no route to host")
	})
	srv := newServer(cfg, nil, src, &buf, metrics.NewRecorder())

	out := srv.RunOnce(context.Background())
	if !out.IsFailed() || !strings.Contains(out.Reason, "no route to host") {
		t.Fatalf("expected transport failure, got %+v", out)
	}
	if !strings.Contains(buf.String(), render.ErrorHeadline) {
		t.Fatalf("expected error headline on terminal, got %q", buf.String())
	}

	board, ok := srv.Board().Board()
	if !ok || board.Outcome != departures.KindFailed || len(board.Departures) != 0 {
		t.Fatalf("unexpected board after failure %+v", board)
	}

	frame := testutil.Serve(srv.Handler(), http.MethodGet, "/frame.png", nil)
	testutil.AssertStatus(t, frame, http.StatusNotFound)
}

func TestTerminalDisplayPrintsHeader(t *testing.T) {
	cfg := testConfig(t)
	cfg.Display.Kind = config.DisplayTerminal
	var buf bytes.Buffer
	srv := newServer(cfg, nil, fixture.New(), &buf, metrics.NewRecorder())

	if out := srv.RunOnce(context.Background()); !out.IsSuccess() {
		t.Fatalf("expected success, got %+v", out)
	}
	if !strings.Contains(buf.String(), render.HeaderLabel) || !strings.Contains(buf.String(), "21:33") {
		t.Fatalf("expected header and rows on terminal, got %q", buf.String())
	}
}

func TestAdminRouteRequiresToken(t *testing.T) {
	cfg := testConfig(t)
	srv := newServer(cfg, nil, fixture.New(), io.Discard, metrics.NewRecorder())
	rr := testutil.Refresh(srv.Handler(), "secret")
	if rr.Code == http.StatusAccepted {
		t.Fatalf("expected admin route disabled without a token")
	}

	cfg.AdminToken = "secret"
	srv = newServer(cfg, nil, fixture.New(), io.Discard, metrics.NewRecorder())
	testutil.AssertStatus(t, testutil.Refresh(srv.Handler(), "wrong"), http.StatusUnauthorized)
	rr = testutil.Refresh(srv.Handler(), "secret")
	testutil.AssertStatus(t, rr, http.StatusAccepted)

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "queued" {
		t.Fatalf("expected queued, got %v", body)
	}
}

func TestReadyReflectsPollerStatus(t *testing.T) {
	srv := newServer(testConfig(t), nil, fixture.New(), io.Discard, metrics.NewRecorder())

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	srv.RunOnce(context.Background())
	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestRunStartsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	httpSrv := &testutil.StubHTTPServer{AddrVal: ":0", HandlerVal: http.NewServeMux()}
	plr := &testutil.StubPoller{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	srv.Run(ctx, func() {})

	if plr.StartCalls != 1 || plr.StopCalls != 1 {
		t.Fatalf("expected poller start/stop once, got %+v", plr)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected http shutdown once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestListenFailureCallsStop(t *testing.T) {
	stopped := make(chan struct{})
	srv := newServerWithDeps(config.Config{}, nil, &testutil.ErrHTTPServer{}, &testutil.StubPoller{})

	srv.startServer(func() { close(stopped) })

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("expected stop to be called after listen failure")
	}
}

func TestServerClosedDoesNotCallStop(t *testing.T) {
	called := make(chan struct{}, 1)
	launchServer("http", &testutil.CloseableHTTPServer{}, nil, func(error) { called <- struct{}{} })

	select {
	case <-called:
		t.Fatal("expected ErrServerClosed to be ignored")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGracefulShutdownHonorsTimeout(t *testing.T) {
	prev := shutdownTimeout
	shutdownTimeout = 20 * time.Millisecond
	t.Cleanup(func() { shutdownTimeout = prev })

	httpSrv := &testutil.BlockingHTTPServer{Unblock: make(chan struct{})}
	plr := &testutil.StubPoller{Err: errors.New("stop failed")}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.gracefulShutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to give up after the timeout")
	}
	if httpSrv.ShutdownCalls != 1 || plr.StopCalls != 1 {
		t.Fatalf("expected both components asked to stop")
	}
}

func TestBuildMetricsFallsBackOnSetupError(t *testing.T) {
	prev := metricsSetup
	t.Cleanup(func() { metricsSetup = prev })
	metricsSetup = func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("exporter down")
	}

	logger, buf := testutil.NewBufferLogger()
	rec, srv, shutdown := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, logger, nil)
	if rec == nil || srv != nil || shutdown != nil {
		t.Fatalf("expected bare recorder without server, got %v %v", rec, srv)
	}
	if !strings.Contains(buf.String(), "metrics setup failed") {
		t.Fatalf("expected warning, got %q", buf.String())
	}
}

func TestBuildMetricsServesHandlerWhenEnabled(t *testing.T) {
	prev := metricsSetup
	t.Cleanup(func() { metricsSetup = prev })
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("board_fetch_total 1"))
	})
	metricsSetup = func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		rec, shutdown := testutil.NewRecorderWithShutdown()
		return rec, handler, shutdown, nil
	}

	cfg := config.Config{Metrics: config.MetricsConfig{Enabled: true, Port: "9191"}}
	rec, srv, shutdown := buildMetrics(cfg, nil, nil)
	if rec == nil || srv == nil || shutdown == nil {
		t.Fatalf("expected recorder, server and shutdown")
	}
	if srv.Addr() != ":9191" {
		t.Fatalf("expected metrics addr :9191, got %s", srv.Addr())
	}
	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/metrics", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestBuildMetricsKeepsInjectedRecorder(t *testing.T) {
	injected := metrics.NewRecorder()
	rec, srv, shutdown := buildMetrics(config.Config{}, nil, injected)
	if rec != injected || srv != nil || shutdown != nil {
		t.Fatalf("expected injected recorder passthrough")
	}
}
