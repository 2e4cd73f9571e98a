package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/filesmanager/internal/buildinfo"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/dmitrijs2005/filesmanager/internal/worker"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	if err := worker.NewApp(cfg, logger).Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
