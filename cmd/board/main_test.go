package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func fixtureEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOARD_CONFIG", "")
	t.Setenv("SOURCE", "fixture")
	t.Setenv("BOARD_DISPLAY", "terminal")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("FRAME_PATH", filepath.Join(t.TempDir(), "frame.png"))
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != appVersion {
		t.Fatalf("expected %q, got %q", appVersion, out)
	}
}

func TestOnceDrawsFixtureBoardOnTerminal(t *testing.T) {
	fixtureEnv(t)

	out, logs, err := execute(t, "once")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, ":") {
		t.Fatalf("expected rendered rows on stdout, got %q", out)
	}
	if !strings.Contains(logs, "cycle finished") || !strings.Contains(logs, "outcome=success") {
		t.Fatalf("expected success log, got %q", logs)
	}
}

func TestOnceReadsConfigFlag(t *testing.T) {
	fixtureEnv(t)
	t.Setenv("SOURCE", "")
	t.Setenv("BOARD_DISPLAY", "")
	t.Setenv("FRAME_PATH", "")
	path := filepath.Join(t.TempDir(), "board.yaml")
	frame := filepath.Join(t.TempDir(), "frame.png")
	body := "source: fixture\ndisplay:\n  kind: png\n  framePath: " + frame + "\nmetrics:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := execute(t, "once", "--config", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(frame); err != nil {
		t.Fatalf("expected frame written to configured path: %v", err)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	fixtureEnv(t)
	t.Setenv("PORT", "not-a-port")

	if _, _, err := execute(t, "once"); err == nil || !strings.Contains(err.Error(), "port") {
		t.Fatalf("expected port validation error, got %v", err)
	}
}
