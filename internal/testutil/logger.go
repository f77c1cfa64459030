package testutil

import (
	"bytes"
	"log/slog"
	"strings"
)

// NewBufferLogger returns a debug-level text logger writing into the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// LogLines splits buffered text-handler output into lines containing every fragment.
func LogLines(buf *bytes.Buffer, fragments ...string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		match := line != ""
		for _, f := range fragments {
			if !strings.Contains(line, f) {
				match = false
				break
			}
		}
		if match {
			out = append(out, line)
		}
	}
	return out
}
