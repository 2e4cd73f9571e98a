package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the fmcli client.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	SessionFile    string
}

// LoadDefaults populates c with sensible defaults. The session file lives in
// the user's home directory, or the working directory when there is none.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
	c.SessionFile = defaultSessionFile()
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fmcli_session"
	}
	return filepath.Join(home, ".fmcli_session")
}

// LoadConfig applies defaults, then JSON, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
