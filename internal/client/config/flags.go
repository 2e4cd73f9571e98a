package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
)

// parseFlags populates cfg from -a, -t and -s. Other arguments are filtered
// out with flagx.FilterArgs so they do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the files manager API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionFile, "s", cfg.SessionFile, "session token file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
