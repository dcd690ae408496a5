// Package config holds the tool configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the SDK version, set at build time.
var Version string

// Defaults applied when a field is absent from the configuration file.
const (
	DefaultRelay    = "https://httprelay.pubky.app/link"
	DefaultTXTTTL   = 30
	DefaultHTTPSTTL = 3600
)

// Config is the top-level tool configuration.
type Config struct {
	// Relay is the rendezvous endpoint offered when composing
	// authorization URLs.
	Relay string `yaml:"Relay"`
	// TXTTTL and HTTPSTTL are the default TTLs for built records.
	TXTTTL   uint32 `yaml:"TXTTTL"`
	HTTPSTTL uint32 `yaml:"HTTPSTTL"`
	// LogLevel is a zap level name, "info" when empty.
	LogLevel string `yaml:"LogLevel"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Relay:    DefaultRelay,
		TXTTTL:   DefaultTXTTTL,
		HTTPSTTL: DefaultHTTPSTTL,
	}
}

// Load reads the configuration from path, filling absent fields with
// defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return cfg, nil
}
