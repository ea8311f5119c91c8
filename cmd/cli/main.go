package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/awnumar/memguard"

	"github.com/dmitrijs2005/passlock/internal/cli"
	"github.com/dmitrijs2005/passlock/internal/config"
	"github.com/dmitrijs2005/passlock/internal/logging"
)

func main() {
	// Guarded buffers are purged even when the process is interrupted, so
	// key material never outlives the session on a signal-driven exit.
	memguard.CatchInterrupt()
	defer memguard.Purge()

	cfg := config.LoadConfig()

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cfg.VaultPath == "" {
		log.Error(context.Background(), "could not resolve a vault location; pass one with -f")
		memguard.SafeExit(1)
	}

	app := cli.NewApp(cfg, log)
	app.Run()
}
