// Package config loads the client's replication settings from JSON or YAML.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes how the client connects and how often dirty properties
// are flushed.
type Config struct {
	Transport TransportConfig   `json:"transport" yaml:"transport"`
	Flush     FlushConfig       `json:"flush" yaml:"flush"`
	LogLevel  string            `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Options   map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

type TransportConfig struct {
	// Kind selects the transport: "websocket" or "quic".
	Kind     string `json:"kind" yaml:"kind"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	Insecure bool   `json:"insecure,omitempty" yaml:"insecure,omitempty"`
}

type FlushConfig struct {
	Interval Duration `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Transport: TransportConfig{Kind: "websocket"},
		Flush:     FlushConfig{Interval: Duration(100 * time.Millisecond)},
		LogLevel:  "info",
	}
}

// LoadYAML loads config from a YAML reader, filling unset fields with
// defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("decode yaml config: %w", err)
	}
	return c, c.Validate()
}

// LoadJSON loads config from a JSON reader, filling unset fields with
// defaults.
func LoadJSON(r io.Reader) (*Config, error) {
	c := Default()
	dec := json.NewDecoder(r)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("decode json config: %w", err)
	}
	return c, c.Validate()
}

// LoadFile loads from path, picking the format from the extension.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if len(path) > 5 && path[len(path)-5:] == ".json" {
		return LoadJSON(f)
	}
	return LoadYAML(f)
}

// Validate checks the effective configuration, whether loaded or defaulted.
// An unset flush interval falls back to the default instead of failing.
func (c *Config) Validate() error {
	switch c.Transport.Kind {
	case "websocket", "quic":
	default:
		return fmt.Errorf("unknown transport kind %q", c.Transport.Kind)
	}
	if c.Transport.Endpoint == "" {
		return fmt.Errorf("transport endpoint is required")
	}
	if c.Flush.Interval <= 0 {
		c.Flush.Interval = Default().Flush.Interval
	}
	return nil
}
