package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Config holds runtime configuration for the board.
type Config struct {
	Port         string
	PollInterval Duration
	FetchTimeout Duration
	Source       string
	Display      DisplayConfig
	Link         LinkConfig
	AdminToken   string
	Metrics      MetricsConfig
	Log          LogConfig
}

// DisplayConfig selects the panel implementation.
type DisplayConfig struct {
	Kind      string
	FramePath string // png only; empty keeps frames in memory
}

// LinkConfig controls the connectivity probe run before every fetch.
// An empty ProbeAddr disables probing.
type LinkConfig struct {
	ProbeAddr string
	Timeout   Duration
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string
	Format string
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Port:         defaultPort,
		PollInterval: defaultPollInterval,
		FetchTimeout: defaultFetchTimeout,
		Source:       defaultSource,
		Display: DisplayConfig{
			Kind:      defaultDisplay,
			FramePath: defaultFramePath,
		},
		Link: LinkConfig{
			ProbeAddr: defaultLinkProbeAddr,
			Timeout:   defaultLinkTimeout,
		},
		Metrics: defaultMetrics(),
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return applyEnv(Defaults())
}

// LoadFile layers defaults, then the YAML file at path (if any), then the environment,
// and validates the result.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve is LoadFile using the path in BOARD_CONFIG.
func Resolve() (Config, error) {
	return LoadFile(os.Getenv(envConfigFile))
}

func applyEnv(cfg Config) Config {
	cfg.Port = envOrDefault(envPort, cfg.Port)
	cfg.PollInterval = durationEnvOrDefault(envPollInterval, cfg.PollInterval)
	cfg.FetchTimeout = durationEnvOrDefault(envFetchTimeout, cfg.FetchTimeout)
	cfg.Source = envOrDefault(envSource, cfg.Source)
	cfg.Display.Kind = envOrDefault(envDisplay, cfg.Display.Kind)
	cfg.Display.FramePath = envOrDefault(envFramePath, cfg.Display.FramePath)
	cfg.Link.ProbeAddr = envOrDefault(envLinkProbeAddr, cfg.Link.ProbeAddr)
	cfg.Link.Timeout = durationEnvOrDefault(envLinkTimeout, cfg.Link.Timeout)
	cfg.AdminToken = envOrDefault(envAdminToken, cfg.AdminToken)
	cfg.Metrics = applyMetricsEnv(cfg.Metrics)
	cfg.Log.Level = envOrDefault(envLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOrDefault(envLogFormat, cfg.Log.Format)
	return cfg
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("port %q is not a valid TCP port", c.Port))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll interval must be positive"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch timeout must be positive"))
	}
	if c.PollInterval > 0 && c.FetchTimeout >= c.PollInterval {
		errs = append(errs, fmt.Errorf("fetch timeout %s must be shorter than poll interval %s", c.FetchTimeout, c.PollInterval))
	}
	switch c.Source {
	case SourceOpenData, SourceFixture:
	default:
		errs = append(errs, fmt.Errorf("unknown source %q", c.Source))
	}
	switch c.Display.Kind {
	case DisplayPNG, DisplayTerminal:
	default:
		errs = append(errs, fmt.Errorf("unknown display %q", c.Display.Kind))
	}
	if c.Metrics.Enabled {
		if p, err := strconv.Atoi(c.Metrics.Port); err != nil || p <= 0 || p > 65535 {
			errs = append(errs, fmt.Errorf("metrics port %q is not a valid TCP port", c.Metrics.Port))
		}
	}
	return errors.Join(errs...)
}
