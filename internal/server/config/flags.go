package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
)

// parseFlags overrides config from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":5000")
//	-d string   PostgreSQL DSN
//	-r string   Redis address
//	-s string   session token secret
//	-t int      session validity, minutes
//	-f string   storage root (FOLDER_PATH)
//	-q string   thumbnail queue name
//	-w int      worker concurrency
//	-g string   worker gRPC health address
//	-m string   worker metrics address
//	-l string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-s", "-t", "-f", "-q", "-w", "-g", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	fs.StringVar(&config.StorageRoot, "f", config.StorageRoot, "storage root folder")
	fs.StringVar(&config.QueueName, "q", config.QueueName, "thumbnail queue name")
	fs.IntVar(&config.WorkerConcurrency, "w", config.WorkerConcurrency, "thumbnail worker concurrency")
	fs.StringVar(&config.WorkerHealthAddr, "g", config.WorkerHealthAddr, "worker gRPC health address")
	fs.StringVar(&config.WorkerMetricsAddr, "m", config.WorkerMetricsAddr, "worker metrics address")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
}
