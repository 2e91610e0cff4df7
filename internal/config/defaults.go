package config

import "github.com/bobmcallan/ukdata-mcp/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      "ukdata-mcp",
			Host:      "localhost",
			Port:      4250,
			Transport: "stdio",
		},
		Cache: CacheConfig{
			Backend:    "file",
			Dir:        "./cache",
			MaxEntries: 1000,
			PruneAfter: "168h",
		},
		Throttle: ThrottleConfig{
			Rate: 0.5,
		},
		Upstream: UpstreamConfig{
			HolidaysURL: "https://www.gov.uk/bank-holidays.json",
			PoliceURL:   "https://data.police.uk/api",
			Timeout:     "30s",
			UserAgent:   "ukdata-mcp/1.0",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Format:     "text",
			Outputs:    []string{"console"},
			FilePath:   "logs/ukdata-mcp.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
