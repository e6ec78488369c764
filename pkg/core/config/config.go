// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     config
// Description: TOML application configuration with defaults
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "TAXWISE_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Tax     TaxConfig     `toml:"tax"`
	Server  ServerConfig  `toml:"server"`
	Export  ExportConfig  `toml:"export"`

	// Source is the file the configuration was read from, empty for defaults
	Source string `toml:"-"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name"`
	Environment string `toml:"environment"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
}

// TaxConfig selects the bracket table and calculation period
type TaxConfig struct {
	TableFile      string `toml:"table_file"`
	PeriodsPerYear int    `toml:"periods_per_year"`
	Currency       string `toml:"currency"`
}

// ServerConfig holds HTTP and gRPC listener settings
type ServerConfig struct {
	Host            string   `toml:"host"`
	HTTPPort        int      `toml:"http_port"`
	GRPCPort        int      `toml:"grpc_port"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// ExportConfig holds PDF export settings
type ExportConfig struct {
	OutputDir string `toml:"output_dir"`

	// Recent reports kept by the HTTP API for GET /reports/{id}
	CacheSize int      `toml:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	cfg.resolveRelative(filepath.Dir(path))
	cfg.Source = path

	return &cfg, nil
}

// LoadFromEnv loads configuration from TAXWISE_CONFIG or the default
// locations, falling back to Default when no file exists
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// DefaultPaths lists the locations searched by LoadFromEnv, in order
func DefaultPaths() []string {
	paths := []string{
		"./configs/config.toml",
		"./config.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "taxwise", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "TaxWise NG"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Tax
	if c.Tax.PeriodsPerYear <= 0 {
		c.Tax.PeriodsPerYear = 12
	}
	if c.Tax.Currency == "" {
		c.Tax.Currency = "NGN"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9090
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 15 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}

	// Export
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = "./exports"
	}
	if c.Export.CacheSize <= 0 {
		c.Export.CacheSize = 1000
	}
	if c.Export.CacheTTL.Duration == 0 {
		c.Export.CacheTTL.Duration = 30 * time.Minute
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Tax.TableFile = os.ExpandEnv(c.Tax.TableFile)
	c.Export.OutputDir = os.ExpandEnv(c.Export.OutputDir)
}

// resolveRelative makes the table file path relative to the config file
func (c *Config) resolveRelative(dir string) {
	if c.Tax.TableFile != "" && !filepath.IsAbs(c.Tax.TableFile) {
		c.Tax.TableFile = filepath.Join(dir, c.Tax.TableFile)
	}
}

// Address returns the listen address for "http" or "grpc"
func (c *Config) Address(listener string) string {
	switch listener {
	case "http":
		return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
	case "grpc":
		return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
	default:
		return ""
	}
}
