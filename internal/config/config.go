// Package config loads drover's YAML configuration. Environment variables
// in the file are expanded before parsing, so paths and URLs can come from
// the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/droverhq/drover/internal/driver"
)

// Config is the file-level configuration.
type Config struct {
	Driver DriverConfig `yaml:"driver" json:"driver"`
	Log    LogConfig    `yaml:"log" json:"log"`
}

// DriverConfig mirrors driver.Config with string durations, the form a
// config file naturally carries.
type DriverConfig struct {
	ExecutablePath  string   `yaml:"executablePath" json:"executablePath"`
	ExecutableName  string   `yaml:"executableName,omitempty" json:"executableName,omitempty"`
	Port            int      `yaml:"port,omitempty" json:"port,omitempty"`
	CommPort        int      `yaml:"commPort,omitempty" json:"commPort,omitempty"`
	BinaryPath      string   `yaml:"binaryPath,omitempty" json:"binaryPath,omitempty"`
	ExtraArgs       []string `yaml:"extraArgs,omitempty" json:"extraArgs,omitempty"`
	DownloadURL     string   `yaml:"downloadUrl,omitempty" json:"downloadUrl,omitempty"`
	StartupTimeout  string   `yaml:"startupTimeout,omitempty" json:"startupTimeout,omitempty"`
	ShutdownTimeout string   `yaml:"shutdownTimeout,omitempty" json:"shutdownTimeout,omitempty"`
}

// LogConfig configures the logging package.
type LogConfig struct {
	Level string `yaml:"level,omitempty" json:"level,omitempty"`
}

// LoadFromBytes parses YAML with environment variable expansion.
func LoadFromBytes(data []byte) (Config, error) {
	var c Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return c, fmt.Errorf("parsing config: %w", err)
	}
	return c, nil
}

// LoadFile reads and parses a config file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return LoadFromBytes(data)
}

// ServiceConfig converts the file form into a driver.Config.
func (c Config) ServiceConfig() (driver.Config, error) {
	cfg := driver.Config{
		ExecutablePath: c.Driver.ExecutablePath,
		ExecutableName: c.Driver.ExecutableName,
		Port:           c.Driver.Port,
		CommPort:       c.Driver.CommPort,
		BinaryPath:     c.Driver.BinaryPath,
		ExtraArgs:      c.Driver.ExtraArgs,
		DownloadURL:    c.Driver.DownloadURL,
	}

	var err error
	if cfg.StartupTimeout, err = parseDuration("startupTimeout", c.Driver.StartupTimeout); err != nil {
		return cfg, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("shutdownTimeout", c.Driver.ShutdownTimeout); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("config field %s: %w", field, err)
	}
	return d, nil
}
