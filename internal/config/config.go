package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig         `toml:"server"`
	Cache    CacheConfig          `toml:"cache"`
	Throttle ThrottleConfig       `toml:"throttle"`
	Upstream UpstreamConfig       `toml:"upstream"`
	Metrics  MetricsConfig        `toml:"metrics"`
	Logging  common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name      string `toml:"name"`
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Transport string `toml:"transport"` // "stdio" or "http"
}

// CacheConfig contains response cache settings.
type CacheConfig struct {
	Backend    string `toml:"backend"` // "file", "memory", "badger", "sqlite"
	Dir        string `toml:"dir"`
	MaxEntries int    `toml:"max_entries"` // memory backend only
	PruneAfter string `toml:"prune_after"` // "" disables pruning
	Coalesce   bool   `toml:"coalesce"`    // share one upstream call between identical in-flight requests
}

// GetPruneAfter parses PruneAfter. Zero means pruning is disabled.
func (c *CacheConfig) GetPruneAfter() time.Duration {
	if c.PruneAfter == "" {
		return 0
	}
	d, err := time.ParseDuration(c.PruneAfter)
	if err != nil {
		return 0
	}
	return d
}

// ThrottleConfig contains outbound request pacing.
type ThrottleConfig struct {
	Rate float64 `toml:"rate"` // calls per second, <= 0 disables
}

// UpstreamConfig contains the public API endpoints.
type UpstreamConfig struct {
	HolidaysURL string `toml:"holidays_url"`
	PoliceURL   string `toml:"police_url"`
	Timeout     string `toml:"timeout"`
	UserAgent   string `toml:"user_agent"`
}

// GetTimeout parses and returns the timeout duration
func (c *UpstreamConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// MetricsConfig contains prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies UKDATA_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("UKDATA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("UKDATA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if transport := os.Getenv("UKDATA_SERVER_TRANSPORT"); transport != "" {
		config.Server.Transport = transport
	}
	if dir := os.Getenv("UKDATA_CACHE_DIR"); dir != "" {
		config.Cache.Dir = dir
	}
	if backend := os.Getenv("UKDATA_CACHE_BACKEND"); backend != "" {
		config.Cache.Backend = backend
	}
	if rate := os.Getenv("UKDATA_THROTTLE_RATE"); rate != "" {
		if r, err := strconv.ParseFloat(rate, 64); err == nil {
			config.Throttle.Rate = r
		}
	}
	if u := os.Getenv("UKDATA_HOLIDAYS_URL"); u != "" {
		config.Upstream.HolidaysURL = u
	}
	if u := os.Getenv("UKDATA_POLICE_URL"); u != "" {
		config.Upstream.PoliceURL = u
	}
	if level := os.Getenv("UKDATA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host, transport string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
	if transport != "" {
		config.Server.Transport = transport
	}
}

// Validate returns a list of problems that prevent startup. Empty means valid.
func (c *Config) Validate() []string {
	var issues []string

	switch strings.ToLower(c.Server.Transport) {
	case "stdio", "http":
	default:
		issues = append(issues, fmt.Sprintf("server.transport must be \"stdio\" or \"http\", got %q", c.Server.Transport))
	}
	if strings.EqualFold(c.Server.Transport, "http") && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Cache.Backend {
	case "file", "badger", "sqlite":
		if c.Cache.Dir == "" {
			issues = append(issues, fmt.Sprintf("cache.dir is required for the %s backend", c.Cache.Backend))
		}
	case "memory":
	default:
		issues = append(issues, fmt.Sprintf("cache.backend must be one of file, memory, badger, sqlite; got %q", c.Cache.Backend))
	}
	if c.Cache.PruneAfter != "" {
		if _, err := time.ParseDuration(c.Cache.PruneAfter); err != nil {
			issues = append(issues, fmt.Sprintf("cache.prune_after is not a duration: %q", c.Cache.PruneAfter))
		}
	}

	if c.Upstream.HolidaysURL == "" {
		issues = append(issues, "upstream.holidays_url is required")
	}
	if c.Upstream.PoliceURL == "" {
		issues = append(issues, "upstream.police_url is required")
	}

	return issues
}
