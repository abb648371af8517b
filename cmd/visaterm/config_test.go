package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visaterm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
resource: "USB0::0x0699::0x0401::C000001::INSTR"
identity:
  manufacturer: "Acme Instruments"
  model: "WG-25"
  serial: "C000001"
responses:
  "MEAS:VOLT?": "+1.042E+00\n"
  "SYST:ERR?": "+0,\"No error\"\n"
timeout: 500ms
trace: session.cbor
log-level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "USB0::0x0699::0x0401::C000001::INSTR", cfg.Resource)
	assert.Equal(t, "Acme Instruments", cfg.Identity.Manufacturer)
	assert.Equal(t, "WG-25", cfg.Identity.Model)
	assert.Equal(t, "C000001", cfg.Identity.Serial)
	assert.Equal(t, "+1.042E+00\n", cfg.Responses["MEAS:VOLT?"])
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout.Std())
	assert.Equal(t, "session.cbor", cfg.TracePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigDefaults(t *testing.T) {
	// A minimal file keeps the defaults for everything it omits.
	path := writeConfig(t, `resource: "GPIB0::9::INSTR"`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, "GPIB0::9::INSTR", cfg.Resource)
	assert.Equal(t, def.Identity, cfg.Identity)
	assert.Equal(t, def.Timeout, cfg.Timeout)
	assert.Equal(t, def.LogLevel, cfg.LogLevel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "resource: [broken")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"empty resource", func(c *Config) { c.Resource = "" }, true},
		{"negative timeout", func(c *Config) { c.Timeout = Duration(-time.Second) }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty log level", func(c *Config) { c.LogLevel = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
