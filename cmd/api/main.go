package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/migrations"
	"go-inventory-ledger/internal/router"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/database"
	"go-inventory-ledger/pkg/logger"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	// 2. Setup Database
	db, err := database.Connect(database.Options{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		LogLevel: database.LogLevel(cfg.LogLevel),
	})
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	err = migrations.Run(ctx, db, cfg.Database.Migrate)
	cancel()
	if err != nil {
		log.Error("migration failed", "mode", cfg.Database.Migrate, "error", err)
		os.Exit(1)
	}

	// 3. Setup WebSocket Hub
	hub := ws.NewHub(log)
	go hub.Run()
	defer hub.Stop()

	// 4. Routes
	app := router.New(router.Options{
		Config:    cfg,
		DB:        db,
		Hub:       hub,
		AccessLog: true,
	})

	// 5. Graceful Shutdown
	go func() {
		log.Info("server starting", "app", cfg.AppName, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("server exited")
}
