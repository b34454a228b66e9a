package main

import (
	"context"
	"log/slog"
	"os"

	"outgo/internal/backend"
	"outgo/internal/cli"
	"outgo/internal/log"
	"outgo/internal/tracker"
	"outgo/internal/users"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(slog.LevelInfo)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.SlogLevel())

	ctx := context.Background()

	factory := backend.NewFactory(logger)
	result, err := factory.CreateStore(ctx, backend.Config{
		Type:         backend.BackendType(cfg.DataBackend),
		DataRoot:     cfg.DataRoot,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize record store", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	directory := users.NewDirectory(cfg.UsersFile, result.Store)
	if err := directory.Bootstrap(); err != nil {
		logger.Error("Failed to bootstrap user directory", log.FieldError, err, log.FieldPath, cfg.UsersFile)
		os.Exit(1)
	}

	tr := tracker.NewTracker(result.Store, logger, nil)

	menu := cli.NewMenu(tr, directory, os.Stdin, os.Stdout)
	if err := menu.Run(ctx); err != nil {
		logger.Error("Menu terminated with error", log.FieldError, err)
		os.Exit(1)
	}
}
