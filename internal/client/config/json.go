package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
	"github.com/dmitrijs2005/filesmanager/internal/timex"
)

type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SessionFile    string         `json:"session_file"`
}

// parseJson overlays cfg with the fields present in the file named by -c or
// -config. Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SessionFile != "" {
		cfg.SessionFile = jc.SessionFile
	}
}
