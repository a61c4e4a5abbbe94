package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that DefaultConfig returns valid defaults.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Search.RadiusDegrees != 0.1 {
		t.Errorf("Expected default radius 0.1, got %g", cfg.Search.RadiusDegrees)
	}
	if cfg.Search.Latitude != "" || cfg.Search.Longitude != "" {
		t.Error("Expected no manual coordinates by default")
	}
	if cfg.OpenSky.BaseURL != "https://opensky-network.org/api" {
		t.Errorf("Expected OpenSky base URL, got %s", cfg.OpenSky.BaseURL)
	}
	if cfg.OpenSky.TimeoutSeconds != 30 {
		t.Errorf("Expected 30s timeout, got %d", cfg.OpenSky.TimeoutSeconds)
	}
	if cfg.Cache.TTLMinutes != 2 {
		t.Errorf("Expected 2 minute cache TTL, got %d", cfg.Cache.TTLMinutes)
	}
	if cfg.Cache.Disabled {
		t.Error("Expected cache enabled by default")
	}
	if cfg.Output.HTML || cfg.Output.TUI {
		t.Error("Expected console output by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got: %v", err)
	}
}

// TestLoadNonExistentFile tests that Load returns default config when the
// file doesn't exist.
func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("Expected no error for non-existent file, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected default config, got nil")
	}
	if cfg.Search.RadiusDegrees != DefaultRadiusDegrees {
		t.Error("Did not get default config for non-existent file")
	}
}

// TestLoadEmptyPath tests that an empty path means defaults.
func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error for empty path, got: %v", err)
	}
	if cfg.Cache.TTLMinutes != DefaultCacheMinutes {
		t.Error("Did not get default config for empty path")
	}
}

// TestLoadValidConfig tests loading a configuration file over the defaults.
func TestLoadValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.json")

	fileCfg := map[string]interface{}{
		"search": map[string]interface{}{
			"radius_degrees": 0.5,
			"latitude":       "48.8566",
			"longitude":      "2.3522",
		},
		"cache": map[string]interface{}{
			"ttl_minutes": 10,
		},
	}

	data, err := json.MarshalIndent(fileCfg, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Search.RadiusDegrees != 0.5 {
		t.Errorf("Expected radius 0.5, got %g", cfg.Search.RadiusDegrees)
	}
	if cfg.Search.Latitude != "48.8566" {
		t.Errorf("Expected latitude 48.8566, got %s", cfg.Search.Latitude)
	}
	if cfg.Cache.TTLMinutes != 10 {
		t.Errorf("Expected TTL 10 minutes, got %d", cfg.Cache.TTLMinutes)
	}

	// Sections absent from the file keep their defaults.
	if cfg.OpenSky.BaseURL != "https://opensky-network.org/api" {
		t.Errorf("Expected default OpenSky URL to survive partial config, got %s", cfg.OpenSky.BaseURL)
	}
	if cfg.OpenSky.TimeoutSeconds != 30 {
		t.Errorf("Expected default timeout to survive partial config, got %d", cfg.OpenSky.TimeoutSeconds)
	}
}

// TestLoadInvalidJSON tests error handling for malformed JSON.
func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.json")

	if err := os.WriteFile(configPath, []byte("{ invalid json }"), 0644); err != nil {
		t.Fatalf("Failed to write invalid config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Expected error for invalid JSON, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("Expected parse error, got: %v", err)
	}
}

// TestEnvironmentOverrides tests environment variable overrides.
func TestEnvironmentOverrides(t *testing.T) {
	os.Setenv("FLYBY_OPENSKY_URL", "http://localhost:9876/api")
	os.Setenv("FLYBY_CACHE_FILE", "/tmp/elsewhere.json")
	defer func() {
		os.Unsetenv("FLYBY_OPENSKY_URL")
		os.Unsetenv("FLYBY_CACHE_FILE")
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.OpenSky.BaseURL != "http://localhost:9876/api" {
		t.Errorf("Expected OpenSky URL from env, got %s", cfg.OpenSky.BaseURL)
	}
	if cfg.Cache.FilePath != "/tmp/elsewhere.json" {
		t.Errorf("Expected cache path from env, got %s", cfg.Cache.FilePath)
	}
}

// TestValidate tests the flag value ranges.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(c *Config) {}, false},
		{"Radius at minimum", func(c *Config) { c.Search.RadiusDegrees = 0.01 }, false},
		{"Radius at maximum", func(c *Config) { c.Search.RadiusDegrees = 5.0 }, false},
		{"Radius below minimum", func(c *Config) { c.Search.RadiusDegrees = 0.009 }, true},
		{"Radius above maximum", func(c *Config) { c.Search.RadiusDegrees = 5.1 }, true},
		{"Radius zero", func(c *Config) { c.Search.RadiusDegrees = 0 }, true},
		{"Radius negative", func(c *Config) { c.Search.RadiusDegrees = -1 }, true},
		{"Cache TTL at minimum", func(c *Config) { c.Cache.TTLMinutes = 1 }, false},
		{"Cache TTL at maximum", func(c *Config) { c.Cache.TTLMinutes = 60 }, false},
		{"Cache TTL too small", func(c *Config) { c.Cache.TTLMinutes = 0 }, true},
		{"Cache TTL too large", func(c *Config) { c.Cache.TTLMinutes = 61 }, true},
		{"Coordinate pair", func(c *Config) {
			c.Search.Latitude = "48.8566"
			c.Search.Longitude = "2.3522"
		}, false},
		{"Latitude without longitude", func(c *Config) { c.Search.Latitude = "48.8566" }, true},
		{"Longitude without latitude", func(c *Config) { c.Search.Longitude = "2.3522" }, true},
		{"HTML and TUI together", func(c *Config) {
			c.Output.HTML = true
			c.Output.TUI = true
		}, true},
		{"Zero timeout", func(c *Config) { c.OpenSky.TimeoutSeconds = 0 }, true},
		{"Zero request rate", func(c *Config) { c.OpenSky.RequestsPerMinute = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

// TestManualCoordinates tests manual coordinate detection.
func TestManualCoordinates(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ManualCoordinates() {
		t.Error("Expected no manual coordinates on defaults")
	}

	cfg.Search.Latitude = "48.8566"
	cfg.Search.Longitude = "2.3522"
	if !cfg.ManualCoordinates() {
		t.Error("Expected manual coordinates when both are set")
	}
}

// TestDurationHelpers tests the duration conversions.
func TestDurationHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CacheTTL() != 2*time.Minute {
		t.Errorf("Expected 2m cache TTL, got %v", cfg.CacheTTL())
	}
	if cfg.OpenSkyTimeout() != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.OpenSkyTimeout())
	}
}
