package server

import (
	"io"
	"log/slog"

	"github.com/preston-bernstein/departure-board/internal/config"
	"github.com/preston-bernstein/departure-board/internal/display"
	"github.com/preston-bernstein/departure-board/internal/http/handlers"
	"github.com/preston-bernstein/departure-board/internal/logging"
	"github.com/preston-bernstein/departure-board/internal/netlink"
	"github.com/preston-bernstein/departure-board/internal/providers"
	"github.com/preston-bernstein/departure-board/internal/providers/fixture"
	"github.com/preston-bernstein/departure-board/internal/providers/opendata"
)

func selectSource(cfg config.Config, logger *slog.Logger) providers.Source {
	switch cfg.Source {
	case config.SourceFixture:
		return fixture.NewRolling()
	case config.SourceOpenData, "":
		return opendata.NewClient(opendata.Config{
			Timeout: cfg.FetchTimeout,
			Logger:  logger,
		})
	default:
		logging.Warn(logger, "unknown source, falling back to fixture", slog.String(logging.FieldSource, cfg.Source))
		return fixture.NewRolling()
	}
}

// selectLink probes the API host unless the data is local or probing is disabled.
func selectLink(cfg config.Config) netlink.Link {
	if cfg.Source == config.SourceFixture || cfg.Link.ProbeAddr == "" {
		return netlink.Always{}
	}
	return netlink.NewProbe(cfg.Link.ProbeAddr, cfg.Link.Timeout)
}

// selectDisplay returns the panel and, for the png panel, the source of /frame.png.
func selectDisplay(cfg config.Config, out io.Writer, logger *slog.Logger) (display.Display, handlers.FrameSource) {
	switch cfg.Display.Kind {
	case config.DisplayTerminal:
		return display.NewTerminal(out), nil
	default:
		panel := display.NewPanel(cfg.Display.FramePath, logger)
		return panel, panel
	}
}

func sourceName(src providers.Source) string {
	if named, ok := src.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "source"
}
