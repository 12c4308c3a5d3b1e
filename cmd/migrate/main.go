package main

import (
	"context"
	"log"

	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/config"
	"github.com/waxads/easy-grown/internal/storage"
)

// migrate applies the schema to the configured backend and exits. Opening a
// store runs its migrations, so this is all it takes.
func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	store, err := storage.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatalf("migration failed: %v", err)
	}
	if err := store.Close(); err != nil {
		logger.Errorf("close store: %v", err)
	}
	logger.Infof("Schema at version %d (%s)", storage.SchemaVersion, cfg.DBType)
}
