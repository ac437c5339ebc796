package main

import (
	"context"
	"os"

	"github.com/Skotchmaster/bookstore/internal/config"
	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/internal/seed"
	"github.com/Skotchmaster/bookstore/pkg/db"
	"github.com/Skotchmaster/bookstore/pkg/logging"
)

func main() {
	cfg := config.Load()
	l := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "cmd", "seed")

	ctx := context.Background()
	gdb, err := config.InitDB(ctx, cfg)
	if err != nil {
		l.Error("db_init_failed", "error", err)
		os.Exit(1)
	}
	defer db.Close(gdb)

	if err := seed.Run(ctx, repo.New(gdb), l); err != nil {
		l.Error("seed_failed", "error", err)
		db.Close(gdb)
		os.Exit(1)
	}
}
