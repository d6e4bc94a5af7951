package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophdir/internal/buildinfo"
	"github.com/dmitrijs2005/gophdir/internal/client/cli"
	"github.com/dmitrijs2005/gophdir/internal/client/config"
	"github.com/dmitrijs2005/gophdir/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "console stopped", "error", err)
	}
}
