// Package main provides a CLI for seeding the local development database
// with demo data.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/talentbridge/internhub/internal/platform/config"
	"github.com/talentbridge/internhub/internal/seed"
	"github.com/talentbridge/internhub/internal/storage/sqlite"
)

func main() {
	cfg := seed.DefaultConfig()
	dbPath := "data/internhub.db"
	flag.StringVar(&dbPath, "db", dbPath, "path to the sqlite database")
	flag.StringVar(&cfg.Password, "password", cfg.Password, "password for demo accounts")
	flag.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(dbPath)
	if err != nil {
		config.Exitf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := seed.Run(ctx, store, cfg, os.Stderr); err != nil {
		config.Exitf("seed: %v", err)
	}
}
