package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/departure-board/internal/domain/departures"
)

func TestClockHelpersUseUpstreamLayout(t *testing.T) {
	at := MustParseUpstream("2026-01-02T20:53:00+0100")
	if got := NowAt(at)(); !got.Equal(at) {
		t.Fatalf("expected frozen clock, got %v", got)
	}
	if at.Format(UpstreamLayout) != "2026-01-02T20:53:00+0100" || at.UTC().Hour() != 19 {
		t.Fatalf("expected offset preserved, got %v", at)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on RFC3339 colon offset")
		}
	}()
	MustParseUpstream("2026-01-02T20:53:00+01:00")
}

func TestFixturesHelper(t *testing.T) {
	records := SampleRecords()
	if len(records) != 5 {
		t.Fatalf("expected five records, got %d", len(records))
	}
	delayed := 0
	for _, r := range records {
		if r.Delayed() {
			delayed++
		}
	}
	if delayed != 1 || records[2].DelayMinutes != 3 {
		t.Fatalf("expected only the third record delayed, got %+v", records)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"drawn":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/board", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["drawn"] {
		t.Fatalf("expected drawn=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/frame.png", nil)
	AssertStatus(t, ServeRequest(handler, req), http.StatusCreated)
}

func TestRefreshSetsBearerHeader(t *testing.T) {
	var got []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusAccepted)
	})

	Refresh(handler, "secret")
	Refresh(handler, "")
	if len(got) != 2 || got[0] != "POST /admin/refresh Bearer secret" || got[1] != "POST /admin/refresh " {
		t.Fatalf("unexpected requests %q", got)
	}
}

func TestServerStubs(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	if err := b.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error for blocking server")
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	_ = b.Handler()
	if b.Addr() != b.AddrVal {
		t.Fatalf("expected blocking server addr passthrough")
	}
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	if b.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown called once")
	}

	e := &ErrHTTPServer{}
	_ = e.ListenAndServe()
	_ = e.Shutdown(context.Background())
	_ = e.Handler()
	if e.Addr() == "" {
		t.Fatalf("expected addr from ErrHTTPServer")
	}
	if e.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for ErrHTTPServer")
	}

	c := &CloseableHTTPServer{}
	_ = c.ListenAndServe()
	_ = c.Shutdown(context.Background())
	_ = c.Handler()
	if c.Addr() == "" {
		t.Fatalf("expected addr from CloseableHTTPServer")
	}
	if c.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for CloseableHTTPServer")
	}

	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}
	if !p.Trigger() {
		t.Fatalf("expected trigger to queue when not busy")
	}
	p.Busy = true
	if p.Trigger() || p.TriggerCalls != 2 {
		t.Fatalf("expected busy trigger to report false, calls=%d", p.TriggerCalls)
	}
	p.OutcomeVal = departures.Unchanged()
	if out := p.RunOnce(context.Background()); !out.IsUnchanged() || p.RunOnceCalls != 1 {
		t.Fatalf("expected outcome passthrough, got %+v", out)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("rendering row", "row", 1)
	logger.Info("board drawn", "outcome", "success")
	logger.Info("board drawn", "outcome", "unchanged")
	if got := LogLines(buf, "board drawn"); len(got) != 2 {
		t.Fatalf("expected two board lines, got %q", got)
	}
	if got := LogLines(buf, "level=DEBUG", "row=1"); len(got) != 1 {
		t.Fatalf("expected debug line captured, got %q", got)
	}
	if got := LogLines(buf, "outcome=failed"); len(got) != 0 {
		t.Fatalf("expected no failed lines, got %q", got)
	}

	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}
