package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for YAML overlays. Unset keys leave the current value alone.
type fileConfig struct {
	Port         *string   `yaml:"port"`
	PollInterval *Duration `yaml:"pollInterval"`
	FetchTimeout *Duration `yaml:"fetchTimeout"`
	Source       *string   `yaml:"source"`
	Display      struct {
		Kind      *string `yaml:"kind"`
		FramePath *string `yaml:"framePath"`
	} `yaml:"display"`
	Link struct {
		ProbeAddr *string   `yaml:"probeAddr"`
		Timeout   *Duration `yaml:"timeout"`
	} `yaml:"link"`
	AdminToken *string `yaml:"adminToken"`
	Metrics    struct {
		Enabled      *bool   `yaml:"enabled"`
		Port         *string `yaml:"port"`
		OtlpEndpoint *string `yaml:"otlpEndpoint"`
		ServiceName  *string `yaml:"serviceName"`
		OtlpInsecure *bool   `yaml:"otlpInsecure"`
	} `yaml:"metrics"`
	Log struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	set(&cfg.Port, fc.Port)
	set(&cfg.PollInterval, fc.PollInterval)
	set(&cfg.FetchTimeout, fc.FetchTimeout)
	set(&cfg.Source, fc.Source)
	set(&cfg.Display.Kind, fc.Display.Kind)
	set(&cfg.Display.FramePath, fc.Display.FramePath)
	set(&cfg.Link.ProbeAddr, fc.Link.ProbeAddr)
	set(&cfg.Link.Timeout, fc.Link.Timeout)
	set(&cfg.AdminToken, fc.AdminToken)
	set(&cfg.Metrics.Enabled, fc.Metrics.Enabled)
	set(&cfg.Metrics.Port, fc.Metrics.Port)
	set(&cfg.Metrics.OtlpEndpoint, fc.Metrics.OtlpEndpoint)
	set(&cfg.Metrics.ServiceName, fc.Metrics.ServiceName)
	set(&cfg.Metrics.OtlpInsecure, fc.Metrics.OtlpInsecure)
	set(&cfg.Log.Level, fc.Log.Level)
	set(&cfg.Log.Format, fc.Log.Format)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
