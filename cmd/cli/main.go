package main

import (
	"context"
	"log"
	"os"

	"github.com/rafiqdev/fieldforce/internal/buildinfo"
	"github.com/rafiqdev/fieldforce/internal/client/cli"
	"github.com/rafiqdev/fieldforce/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
