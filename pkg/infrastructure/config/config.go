package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/vsinha/ejector/pkg/domain/entities"
)

// Config is the optional TOML configuration shared by the CLI and the API server
type Config struct {
	Assumptions entities.Assumptions `toml:"assumptions"`
	Server      ServerConfig         `toml:"server"`
	Log         LogConfig            `toml:"log"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	ListenAddr        string  `toml:"listen_addr"`
	DischargePressure float64 `toml:"default_discharge_pressure"` // psi, used when a request omits it
	MetricsEnabled    bool    `toml:"metrics_enabled"`
}

// LogConfig configures zap
type LogConfig struct {
	Debug bool `toml:"debug"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Assumptions: entities.DefaultAssumptions(),
		Server: ServerConfig{
			ListenAddr:        ":8080",
			DischargePressure: entities.DefaultDischargePressure,
			MetricsEnabled:    true,
		},
	}
}

// Load reads a TOML file. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDefault writes the default configuration to path, refusing to overwrite
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(Default()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
}

func (c *Config) validate() error {
	if err := c.Assumptions.Validate(); err != nil {
		return err
	}
	if c.Server.DischargePressure < 0 {
		return fmt.Errorf("default discharge pressure cannot be negative, got %g", c.Server.DischargePressure)
	}
	return nil
}
