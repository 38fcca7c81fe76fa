package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"taskboard-api/api"
	"taskboard-api/backup"
	"taskboard-api/config"
	"taskboard-api/repository"
	"taskboard-api/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	logger := log.New()
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	store, err := storage.Open(cfg.Store.Path, logger)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	repo := repository.New(store)

	backups, err := backup.NewManager(store, cfg.Backup.Dir, cfg.Backup.Retention, logger)
	if err != nil {
		log.Fatalf("backup: %v", err)
	}
	backups.Schedule(context.Background())

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	api.Register(e, repo, backups, logger)

	if cfg.Server.PublicDir != "" {
		e.Static("/", cfg.Server.PublicDir)
	}

	e.Logger.Fatal(e.Start(cfg.Server.Addr))
}
