package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv is a seam so tests do not pick up a stray .env file.
var loadDotEnv = func() { _ = godotenv.Load() }

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win over the file.
//
// Recognised variables:
//
//	PORT                       HTTP port (binds ":<PORT>")
//	DATABASE_DSN               full PostgreSQL DSN
//	DB_HOST, DB_PORT,          used to assemble a DSN when DATABASE_DSN
//	DB_DATABASE, DB_USER,      is not set
//	DB_PASSWORD
//	REDIS_HOST, REDIS_PORT     Redis address
//	REDIS_PASSWORD, REDIS_DB
//	SECRET_KEY
//	SESSION_TTL                Go duration, e.g. "24h"
//	FOLDER_PATH                blob storage root
//	QUEUE_NAME
//	WORKER_CONCURRENCY
//	WORKER_HEALTH_ADDR
//	WORKER_METRICS_ADDR
//	LOG_LEVEL
//
// Malformed numeric or duration values panic, like malformed flags do.
func parseEnv(config *Config) {
	loadDotEnv()

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}

	if v, ok := os.LookupEnv("DATABASE_DSN"); ok && v != "" {
		config.DatabaseDSN = v
	} else if dsn, ok := dsnFromParts(); ok {
		config.DatabaseDSN = dsn
	}

	host, hostSet := os.LookupEnv("REDIS_HOST")
	port, portSet := os.LookupEnv("REDIS_PORT")
	if hostSet || portSet {
		if host == "" {
			host = "localhost"
		}
		if port == "" {
			port = "6379"
		}
		config.RedisAddr = host + ":" + port
	}

	setString(&config.RedisPassword, "REDIS_PASSWORD")
	setInt(&config.RedisDB, "REDIS_DB")
	setString(&config.SecretKey, "SECRET_KEY")
	setDuration(&config.SessionValidityDuration, "SESSION_TTL")
	setString(&config.StorageRoot, "FOLDER_PATH")
	setString(&config.QueueName, "QUEUE_NAME")
	setInt(&config.WorkerConcurrency, "WORKER_CONCURRENCY")
	setString(&config.WorkerHealthAddr, "WORKER_HEALTH_ADDR")
	setString(&config.WorkerMetricsAddr, "WORKER_METRICS_ADDR")
	setString(&config.LogLevel, "LOG_LEVEL")
}

func dsnFromParts() (string, bool) {
	_, h := os.LookupEnv("DB_HOST")
	_, p := os.LookupEnv("DB_PORT")
	_, d := os.LookupEnv("DB_DATABASE")
	if !h && !p && !d {
		return "", false
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_DATABASE", "files_manager"),
	), true
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("env %s: %w", key, err))
	}
	*dst = n
}

func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("env %s: %w", key, err))
	}
	*dst = d
}
