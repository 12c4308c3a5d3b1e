package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/config"
	"github.com/waxads/easy-grown/internal/importer"
	"github.com/waxads/easy-grown/internal/storage"
)

func main() {
	file := flag.String("file", "", "Path to the .xlsx workbook")
	sheet := flag.String("sheet", "", "Sheet to read (default: first sheet)")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Load()
	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	vegs, err := importer.ReadVegetables(f, *sheet)
	if err != nil {
		logger.Fatalf("read workbook: %v", err)
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer store.Close()

	n, err := importer.Import(ctx, store, vegs)
	if err != nil {
		logger.Errorf("imported %d of %d vegetables: %v", n, len(vegs), err)
		return
	}
	logger.Infof("Imported %d vegetables from %s", n, *file)
}
