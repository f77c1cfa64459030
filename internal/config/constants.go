package config

import "time"

const (
	envConfigFile    = "BOARD_CONFIG"
	envPort          = "PORT"
	envPollInterval  = "POLL_INTERVAL"
	envFetchTimeout  = "FETCH_TIMEOUT"
	envSource        = "SOURCE"
	envDisplay       = "BOARD_DISPLAY"
	envFramePath     = "FRAME_PATH"
	envLinkProbeAddr = "LINK_PROBE_ADDR"
	envLinkTimeout   = "LINK_PROBE_TIMEOUT"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken    = "ADMIN_TOKEN"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"

	// Source names.
	SourceOpenData = "opendata"
	SourceFixture  = "fixture"

	// Display names.
	DisplayPNG      = "png"
	DisplayTerminal = "terminal"

	defaultPort          = "4000"
	defaultPollInterval  = 120 * Duration(time.Second)
	defaultFetchTimeout  = 5 * Duration(time.Second)
	defaultSource        = SourceOpenData
	defaultDisplay       = DisplayPNG
	defaultFramePath     = "data/frame.png"
	defaultLinkProbeAddr = "transport.opendata.ch:80"
	defaultLinkTimeout   = 2 * Duration(time.Second)
	defaultMetricsPort   = "9090"
	defaultServiceName   = "departure-board"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
)
