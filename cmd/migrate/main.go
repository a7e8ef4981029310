package main

import (
	"flag"
	"log/slog"
	"os"

	"resione-server/internal/infra/db"
	"resione-server/internal/pkg/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var (
		path = flag.String("path", "file://migrations", "migrations source URL")
		down = flag.Bool("down", false, "roll back the most recent migration")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *down {
		err = db.MigrateDown(*path, cfg.DB)
	} else {
		err = db.Migrate(*path, cfg.DB)
	}
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied")
}
