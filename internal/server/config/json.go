package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
	"github.com/dmitrijs2005/filesmanager/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file. Duration
// fields accept "24h"-style strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	DatabaseDSN             string         `json:"database_dsn"`
	RedisAddr               string         `json:"redis_addr"`
	RedisPassword           string         `json:"redis_password"`
	RedisDB                 *int           `json:"redis_db"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	SessionCacheSize        int            `json:"session_cache_size"`
	SessionCacheTTL         timex.Duration `json:"session_cache_ttl"`
	StorageRoot             string         `json:"storage_root"`
	QueueName               string         `json:"queue_name"`
	WorkerConcurrency       int            `json:"worker_concurrency"`
	WorkerHealthAddr        string         `json:"worker_health_addr"`
	WorkerMetricsAddr       string         `json:"worker_metrics_addr"`
	LogLevel                string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// field present in it onto config. Absent fields keep their current values.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.RedisAddr, c.RedisAddr)
	overlay(&config.RedisPassword, c.RedisPassword)
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.SessionValidityDuration, c.SessionValidityDuration.Duration)
	overlay(&config.SessionCacheSize, c.SessionCacheSize)
	overlay(&config.SessionCacheTTL, c.SessionCacheTTL.Duration)
	overlay(&config.StorageRoot, c.StorageRoot)
	overlay(&config.QueueName, c.QueueName)
	overlay(&config.WorkerConcurrency, c.WorkerConcurrency)
	overlay(&config.WorkerHealthAddr, c.WorkerHealthAddr)
	overlay(&config.WorkerMetricsAddr, c.WorkerMetricsAddr)
	overlay(&config.LogLevel, c.LogLevel)
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
