package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/battleship-cpu/api"
	"github.com/saeidalz13/battleship-cpu/db"
	"github.com/saeidalz13/battleship-cpu/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if cfg.Stage == config.StageDev {
		log.SetLevel(log.DebugLevel)
	}

	opts := []api.Option{api.WithConfig(cfg)}

	// game history is optional; without a database the game still runs
	if cfg.DatabaseURL != "" {
		psqlDb := db.MustConnectToDb(cfg.DatabaseURL, cfg.MigrationDir)
		defer psqlDb.Close()
		opts = append(opts, api.WithDb(psqlDb))
	} else {
		log.Warn("DATABASE_URL is empty; game history is disabled")
	}

	server := api.NewServer(opts...)
	log.Info("starting battleship server", "addr", cfg.Addr(), "stage", cfg.Stage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
