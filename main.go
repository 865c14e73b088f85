package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/elizabethangel02241/finance-tracker/internal/config"
	"github.com/elizabethangel02241/finance-tracker/internal/database"
	"github.com/elizabethangel02241/finance-tracker/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// optional .env for local development; real deployments use PFT_ env vars
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(cfg.Upload.Dir); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	if err := database.SeedCategories(db); err != nil {
		log.Fatalf("seed categories: %v", err)
	}

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
