// Command outgo-export writes a JSON snapshot of every registered user's
// expense collection into an output directory, one document per user. Users
// are exported concurrently with a bounded worker count.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"outgo/internal/backend"
	"outgo/internal/cli"
	"outgo/internal/core"
	"outgo/internal/log"
	"outgo/internal/store"
	"outgo/internal/users"
)

const exportWorkers = 4

type exportDoc struct {
	User     string         `json:"user"`
	Expenses []core.Expense `json:"expenses"`
}

func main() {
	outDir := flag.String("out", "export", "directory to write per-user snapshots into")
	flag.Parse()

	cli.LoadEnvFile()

	logger := cli.SetupLogger(slog.LevelInfo)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.SlogLevel()).WithComponent(log.ComponentExport)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	names, err := directory.Usernames()
	if err != nil {
		logger.Error("Failed to list users", log.FieldError, err)
		os.Exit(1)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportWorkers)
	for _, name := range names {
		name := name
		g.Go(func() error {
			return exportUser(ctx, result.Store, *outDir, name, logger)
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Export failed", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Export complete", log.FieldCount, len(names), log.FieldPath, *outDir)
}

func exportUser(ctx context.Context, records backend.RecordStore, outDir, name string, logger *log.Logger) error {
	entries, err := records.LoadExpenses(ctx, name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(exportDoc{User: name, Expenses: entries}, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, name+".json")
	if err := store.WriteFileAtomic(path, data); err != nil {
		return err
	}

	logger.Info("Exported user", log.FieldUser, name, log.FieldCount, len(entries), log.FieldPath, path)
	return nil
}
