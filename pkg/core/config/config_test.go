package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"hours", "2h", 2 * time.Hour, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds", 30 * time.Second, "30s"},
		{"minutes", 5 * time.Minute, "5m0s"},
		{"hours", 2 * time.Hour, "2h0m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Duration{tt.duration}
			result, err := d.MarshalText()

			if err != nil {
				t.Errorf("MarshalText() error = %v", err)
				return
			}

			if string(result) != tt.expected {
				t.Errorf("MarshalText() = %v, want %v", string(result), tt.expected)
			}
		})
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	// General defaults
	if cfg.General.Name != "TaxWise NG" {
		t.Errorf("General.Name = %v, want TaxWise NG", cfg.General.Name)
	}
	if cfg.General.Environment != "development" {
		t.Errorf("General.Environment = %v, want development", cfg.General.Environment)
	}
	if cfg.General.LogLevel != "info" {
		t.Errorf("General.LogLevel = %v, want info", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "console" {
		t.Errorf("General.LogFormat = %v, want console", cfg.General.LogFormat)
	}

	// Tax defaults
	if cfg.Tax.PeriodsPerYear != 12 {
		t.Errorf("Tax.PeriodsPerYear = %v, want 12", cfg.Tax.PeriodsPerYear)
	}
	if cfg.Tax.Currency != "NGN" {
		t.Errorf("Tax.Currency = %v, want NGN", cfg.Tax.Currency)
	}

	// Server defaults
	if cfg.Server.HTTPPort != 8080 {
		t.Errorf("Server.HTTPPort = %v, want 8080", cfg.Server.HTTPPort)
	}
	if cfg.Server.GRPCPort != 9090 {
		t.Errorf("Server.GRPCPort = %v, want 9090", cfg.Server.GRPCPort)
	}
	if cfg.Server.ReadTimeout.Duration != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout.Duration)
	}
	if cfg.Server.ShutdownTimeout.Duration != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout.Duration)
	}

	// Export defaults
	if cfg.Export.OutputDir != "./exports" {
		t.Errorf("Export.OutputDir = %v, want ./exports", cfg.Export.OutputDir)
	}
	if cfg.Export.CacheSize != 1000 {
		t.Errorf("Export.CacheSize = %v, want 1000", cfg.Export.CacheSize)
	}
	if cfg.Export.CacheTTL.Duration != 30*time.Minute {
		t.Errorf("Export.CacheTTL = %v, want 30m", cfg.Export.CacheTTL.Duration)
	}
}

func TestConfig_Address(t *testing.T) {
	cfg := Default()

	tests := []struct {
		listener string
		expected string
	}{
		{"http", "0.0.0.0:8080"},
		{"grpc", "0.0.0.0:9090"},
		{"unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.listener, func(t *testing.T) {
			result := cfg.Address(tt.listener)
			if result != tt.expected {
				t.Errorf("Address(%q) = %v, want %v", tt.listener, result, tt.expected)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("Load() expected error for non-existent file")
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[general]
name = "TaxWise Test"
environment = "test"

[tax]
table_file = "tables/ng.yaml"
periods_per_year = 1

[server]
http_port = 9999
host = "127.0.0.1"
read_timeout = "5s"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "TaxWise Test" {
		t.Errorf("General.Name = %v, want TaxWise Test", cfg.General.Name)
	}
	if cfg.Server.HTTPPort != 9999 {
		t.Errorf("Server.HTTPPort = %v, want 9999", cfg.Server.HTTPPort)
	}
	if cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout.Duration)
	}
	if cfg.Tax.PeriodsPerYear != 1 {
		t.Errorf("Tax.PeriodsPerYear = %v, want 1", cfg.Tax.PeriodsPerYear)
	}
	if want := filepath.Join(tmpDir, "tables", "ng.yaml"); cfg.Tax.TableFile != want {
		t.Errorf("Tax.TableFile = %v, want %v", cfg.Tax.TableFile, want)
	}
	if cfg.Source != configPath {
		t.Errorf("Source = %v, want %v", cfg.Source, configPath)
	}

	// Check defaults were applied for missing values
	if cfg.Server.GRPCPort != 9090 {
		t.Errorf("Server.GRPCPort = %v, want 9090 (default)", cfg.Server.GRPCPort)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\nname ="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() expected parse error")
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("TAXWISE_TEST_DIR", "/tmp/taxwise")

	cfg := &Config{
		Tax:    TaxConfig{TableFile: "$TAXWISE_TEST_DIR/table.toml"},
		Export: ExportConfig{OutputDir: "${TAXWISE_TEST_DIR}/out"},
	}

	cfg.expandEnvVars()

	if cfg.Tax.TableFile != "/tmp/taxwise/table.toml" {
		t.Errorf("TableFile = %v", cfg.Tax.TableFile)
	}
	if cfg.Export.OutputDir != "/tmp/taxwise/out" {
		t.Errorf("OutputDir = %v", cfg.Export.OutputDir)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())

	originalWd, _ := os.Getwd()
	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(originalWd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want defaults", cfg.Source)
	}
	if cfg.Server.HTTPPort != 8080 {
		t.Errorf("Server.HTTPPort = %v, want 8080", cfg.Server.HTTPPort)
	}
}

func TestLoadFromEnv_UsesVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[server]\ngrpc_port = 7000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Server.GRPCPort != 7000 {
		t.Errorf("Server.GRPCPort = %v, want 7000", cfg.Server.GRPCPort)
	}
}
