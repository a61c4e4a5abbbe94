package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Flag value limits and defaults shared between validation and the CLI.
const (
	// DefaultRadiusDegrees is the search radius when none is given
	DefaultRadiusDegrees = 0.1

	// MinRadiusDegrees / MaxRadiusDegrees bound the -radius flag
	MinRadiusDegrees = 0.01
	MaxRadiusDegrees = 5.0

	// DefaultCacheMinutes is the snapshot cache TTL when none is given
	DefaultCacheMinutes = 2

	// MinCacheMinutes / MaxCacheMinutes bound the -cache-minutes flag
	MinCacheMinutes = 1
	MaxCacheMinutes = 60
)

// Config represents the complete application configuration.
// Values come from defaults, then an optional JSON file, then environment
// variables, then command-line flags.
type Config struct {
	Search  SearchConfig  `json:"search"`
	OpenSky OpenSkyConfig `json:"opensky"`
	Cache   CacheConfig   `json:"cache"`
	Output  OutputConfig  `json:"output"`
}

// SearchConfig controls where and how far to look for aircraft.
type SearchConfig struct {
	// RadiusDegrees is the search radius in decimal degrees (0.01 to 5)
	RadiusDegrees float64 `json:"radius_degrees"`

	// Latitude and Longitude are optional manual coordinates in decimal
	// degrees. They must be given together; when set, IP geolocation is
	// skipped entirely.
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// OpenSkyConfig contains flight data API settings.
type OpenSkyConfig struct {
	// BaseURL is the OpenSky REST API base URL
	BaseURL string `json:"base_url"`

	// TimeoutSeconds bounds a single state-vector request
	TimeoutSeconds int `json:"timeout_seconds"`

	// RequestsPerMinute caps the client-side request rate
	RequestsPerMinute int `json:"requests_per_minute"`
}

// CacheConfig contains snapshot cache settings.
type CacheConfig struct {
	// FilePath is the cache slot; empty selects the platform temp directory
	FilePath string `json:"file_path"`

	// TTLMinutes is how long a cached snapshot stays fresh (1 to 60)
	TTLMinutes int `json:"ttl_minutes"`

	// Disabled turns the cache off entirely
	Disabled bool `json:"disabled"`
}

// OutputConfig selects how the snapshot is rendered.
type OutputConfig struct {
	// HTML renders an HTML document instead of the console report
	HTML bool `json:"html"`

	// TUI opens the interactive snapshot browser instead of the console
	// report; mutually exclusive with HTML
	TUI bool `json:"tui"`

	// NoOpen suppresses launching the default viewer for HTML reports
	NoOpen bool `json:"no_open"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			RadiusDegrees: DefaultRadiusDegrees,
		},
		OpenSky: OpenSkyConfig{
			BaseURL:           "https://opensky-network.org/api",
			TimeoutSeconds:    30,
			RequestsPerMinute: 10,
		},
		Cache: CacheConfig{
			TTLMinutes: DefaultCacheMinutes,
		},
	}
}

// Load reads configuration from a JSON file on top of the defaults.
// A missing file (or an empty path) is not an error: the defaults are used.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	cfg.applyEnvironmentOverrides()

	return cfg, nil
}

// Validate checks the flag/file value ranges.
func (c *Config) Validate() error {
	if c.Search.RadiusDegrees < MinRadiusDegrees || c.Search.RadiusDegrees > MaxRadiusDegrees {
		return fmt.Errorf("radius must be between %g and %g degrees, got %g",
			MinRadiusDegrees, MaxRadiusDegrees, c.Search.RadiusDegrees)
	}
	if c.Cache.TTLMinutes < MinCacheMinutes || c.Cache.TTLMinutes > MaxCacheMinutes {
		return fmt.Errorf("cache TTL must be between %d and %d minutes, got %d",
			MinCacheMinutes, MaxCacheMinutes, c.Cache.TTLMinutes)
	}
	if (c.Search.Latitude == "") != (c.Search.Longitude == "") {
		return fmt.Errorf("latitude and longitude must be provided together")
	}
	if c.Output.HTML && c.Output.TUI {
		return fmt.Errorf("html and tui output are mutually exclusive")
	}
	if c.OpenSky.TimeoutSeconds <= 0 {
		return fmt.Errorf("opensky timeout must be positive, got %d", c.OpenSky.TimeoutSeconds)
	}
	if c.OpenSky.RequestsPerMinute <= 0 {
		return fmt.Errorf("opensky request rate must be positive, got %d", c.OpenSky.RequestsPerMinute)
	}
	return nil
}

// ManualCoordinates reports whether the user pinned the location by hand.
func (c *Config) ManualCoordinates() bool {
	return c.Search.Latitude != "" && c.Search.Longitude != ""
}

// CacheTTL returns the cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// OpenSkyTimeout returns the request timeout as a duration.
func (c *Config) OpenSkyTimeout() time.Duration {
	return time.Duration(c.OpenSky.TimeoutSeconds) * time.Second
}

// applyEnvironmentOverrides applies environment variable overrides.
// FLYBY_OPENSKY_URL points the client at a different API endpoint and
// FLYBY_CACHE_FILE relocates the cache slot.
func (c *Config) applyEnvironmentOverrides() {
	if url := os.Getenv("FLYBY_OPENSKY_URL"); url != "" {
		c.OpenSky.BaseURL = url
	}
	if path := os.Getenv("FLYBY_CACHE_FILE"); path != "" {
		c.Cache.FilePath = path
	}
}
