package main

import (
	"context"
	"os"

	"ledger/internal/cli"
	"ledger/internal/log"
	"ledger/internal/services"
	"ledger/internal/shell"
	"ledger/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file for local development
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.SetupLogger(nil).Error("Configuration validation failed", log.FieldError, err)
		return 1
	}

	logger := cli.SetupLogger(cfg)
	ctx := context.Background()

	be, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, cfg.Backend)
		return 1
	}
	defer func() {
		if err := be.Close(); err != nil {
			logger.Warn("Backend cleanup failed", log.FieldError, err)
		}
	}()

	svc := services.NewExpenseService(store.New(be.Repository, logger), logger)
	sh := shell.New(svc, os.Stdin, os.Stdout, logger)

	logger.Info("Starting session", log.FieldOperation, log.OpStartup, log.FieldLocation, be.Repository.Location())
	if err := sh.Run(ctx); err != nil {
		// Already reported to the user; the session still ends normally.
		logger.Error("Ledger not saved", log.FieldOperation, log.OpShutdown, log.FieldError, err)
	}
	return 0
}
