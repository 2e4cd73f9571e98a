package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/filesmanager/internal/buildinfo"
	"github.com/dmitrijs2005/filesmanager/internal/client/cli"
	"github.com/dmitrijs2005/filesmanager/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	cli.NewApp(cfg).Run(context.Background())
}
