package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output formats
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)

// Outputs lists every supported output format
var Outputs = []string{OutputJSON, OutputYAML, OutputText}

// Config represents the cwput configuration file
type Config struct {
	Profile         string `yaml:"profile,omitempty"`
	Region          string `yaml:"region,omitempty"`
	Output          string `yaml:"output,omitempty"`    // json, yaml, text
	LogLevel        string `yaml:"log_level,omitempty"` // error, warn, info, debug, trace
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	ConfigFile      string `yaml:"config_file,omitempty"`
	Endpoint        string `yaml:"endpoint,omitempty"` // custom CloudWatch Logs / STS base URL
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Profile:  "default",
		Output:   OutputJSON,
		LogLevel: "warn",
	}
}

// GetConfigDir returns the config directory path ($XDG_CONFIG_HOME/cwput)
func GetConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cwput")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cwput"
	}
	return filepath.Join(home, ".config", "cwput")
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// LoadConfig loads the configuration at path, layered over Default. A
// missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	return ValidateOutput(c.Output)
}

// ValidateOutput reports an unknown output format
func ValidateOutput(output string) error {
	for _, o := range Outputs {
		if output == o {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (expected one of %v)", output, Outputs)
}
