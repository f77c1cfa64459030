package providers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// LinkDownError reports that no network link was available for a fetch.
type LinkDownError struct {
	Detail string
}

func (e *LinkDownError) Error() string {
	if e.Detail == "" {
		return "link-down"
	}
	return "link-down: " + e.Detail
}

// TransportError captures a failed request: either a network-level error or a non-2xx status.
// Body holds the start of a non-2xx response for logs; it is kept out of Error so the
// message stays short enough to draw on the panel.
type TransportError struct {
	Source     string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(": ")
	}
	switch {
	case e.StatusCode > 0:
		fmt.Fprintf(&b, "unexpected status %d", e.StatusCode)
		if text := http.StatusText(e.StatusCode); text != "" {
			b.WriteString(" ")
			b.WriteString(text)
		}
	case e.Err != nil:
		fmt.Fprintf(&b, "request failed: %v", e.Err)
	default:
		b.WriteString("request failed")
	}
	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsLinkDownError attempts to unwrap an error into a LinkDownError.
func AsLinkDownError(err error) (*LinkDownError, bool) {
	var ldErr *LinkDownError
	if errors.As(err, &ldErr) {
		return ldErr, true
	}
	return nil, false
}

// AsTransportError attempts to unwrap an error into a TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}
