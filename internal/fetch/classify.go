package fetch

import (
	"strings"

	"github.com/preston-bernstein/departure-board/internal/providers"
	"github.com/preston-bernstein/departure-board/internal/providers/opendata"
)

// Failure reasons used as metric labels.
const (
	ReasonLinkDown  = "link_down"
	ReasonTransport = "transport"
	ReasonUnknown   = "unknown"
)

// Classify maps a fetch error to a stable, low-cardinality label.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if _, ok := providers.AsLinkDownError(err); ok {
		return ReasonLinkDown
	}
	if _, ok := providers.AsTransportError(err); ok {
		return ReasonTransport
	}
	if pErr, ok := opendata.AsParseError(err); ok {
		return strings.ReplaceAll(string(pErr.Kind), "-", "_")
	}
	return ReasonUnknown
}
