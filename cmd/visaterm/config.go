package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the visaterm configuration.
type Config struct {
	// Resource is the instrument resource string to open.
	Resource string `yaml:"resource"`

	// Identity configures the simulated instrument's identification.
	Identity IdentityConfig `yaml:"identity"`

	// Responses maps commands to scripted responses.
	Responses map[string]string `yaml:"responses"`

	// Timeout is the initial I/O timeout.
	Timeout Duration `yaml:"timeout"`

	// TracePath is the file trace events are captured to. Empty
	// disables file capture.
	TracePath string `yaml:"trace"`

	// LogLevel controls console logging: debug, info, warn, error.
	LogLevel string `yaml:"log-level"`
}

// IdentityConfig describes the simulated instrument identity.
type IdentityConfig struct {
	Manufacturer string `yaml:"manufacturer"`
	Model        string `yaml:"model"`
	Serial       string `yaml:"serial"`
}

// Duration wraps time.Duration so YAML configs can use strings like
// "500ms" or "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DefaultConfig returns the configuration used when no config file is
// given.
func DefaultConfig() Config {
	return Config{
		Resource: "USB0::0x1234::0x5678::SIM0001::INSTR",
		Identity: IdentityConfig{
			Manufacturer: "govisa",
			Model:        "SIM-1000",
			Serial:       "SIM0001",
		},
		Timeout:  Duration(2 * time.Second),
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML configuration file, applying defaults for
// fields the file leaves unset.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Resource == "" {
		return fmt.Errorf("resource must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
