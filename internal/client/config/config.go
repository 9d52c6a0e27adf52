package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the SysPark admin CLI.
//
// Fields:
//   - APIBaseURL: scheme://host:port of the SysPark REST backend (no /api suffix).
//   - PageSize: number of users per list page.
//   - RequestTimeout: per-call HTTP timeout.
//   - SessionDBPath: SQLite file holding the persisted login session.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	PageSize       int
	RequestTimeout time.Duration
	SessionDBPath  string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.PageSize = 5
	c.RequestTimeout = 15 * time.Second
	c.SessionDBPath = "syspark.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config from the process command line: defaults,
// then the JSON file (if any), then flags. Later sources take precedence.
func LoadConfig() *Config {
	return loadFrom(os.Args[1:])
}

func loadFrom(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
