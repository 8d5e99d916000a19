// Package config loads the SaturationApp configuration from a YAML file
// with environment-variable overrides. Flags set on the CLI win over
// everything here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "saturation.yaml"

// Config holds all SaturationApp configuration.
type Config struct {
	// UnitLabel names what the interviews collect: "concepts", "themes",
	// or any free text. It parameterizes the one shared pipeline.
	UnitLabel string `yaml:"unit_label"`

	// Server settings for the upload-and-chart shell.
	Server ServerConfig `yaml:"server"`

	// PreviewRows caps the terminal preview table. 0 shows all rows.
	PreviewRows int `yaml:"preview_rows"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP shell.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`

	// MaxUploadBytes bounds a single CSV upload.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UnitLabel: "concepts",
		Server: ServerConfig{
			ListenAddr:     ":8470",
			MaxUploadBytes: 8 << 20,
		},
		PreviewRows: 0,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Defaults plus env when no config file exists.
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides lets the environment override file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SATURATION_UNIT_LABEL"); v != "" {
		c.UnitLabel = v
	}
	if v := os.Getenv("SATURATION_LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv("SATURATION_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate rejects configurations the commands cannot run with.
func (c *Config) Validate() error {
	if c.UnitLabel == "" {
		return fmt.Errorf("unit_label must not be empty")
	}
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr must not be empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	return nil
}
