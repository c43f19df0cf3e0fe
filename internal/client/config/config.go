package config

import "time"

// Config holds runtime settings for the CopyIt CLI.
//
// An empty ServerEndpointAddr selects demo mode: nothing is sent to a
// server and entries live in memory only.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabasePath        string
	// ExportDir receives downloaded exports.
	ExportDir           string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = ""
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "copyit.db"
	c.ExportDir = "exports"
}

// MockMode reports whether no server is configured.
func (c *Config) MockMode() bool {
	return c.ServerEndpointAddr == ""
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
