package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/boxsync/internal/platform/cmd"
	"github.com/louisbranch/boxsync/internal/platform/config"
	"github.com/louisbranch/boxsync/internal/platform/logger"
	boximporter "github.com/louisbranch/boxsync/internal/tools/importer/box"
)

func main() {
	cfg, err := boximporter.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = cmd.RunWithTelemetry(ctx, cmd.ServiceBoxImporter, cmd.RunOptions{
		Telemetry: cfg.Telemetry,
		Logger:    log,
	}, func(ctx context.Context) error {
		return boximporter.Run(ctx, cfg, os.Stdout, log)
	})
	if err != nil {
		log.Sync()
		config.Exitf("Error: %v", err)
	}
}
