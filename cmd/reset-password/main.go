// Command reset-password sets a user's password, and optionally their
// permission level, directly in the database. Existing sessions are ended.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/pkg/database"
	"go-inventory-ledger/pkg/jwt"
	"go-inventory-ledger/pkg/logger"
)

func main() {
	username := flag.String("username", "", "username of the account to update")
	password := flag.String("password", "", "new password")
	level := flag.Int("level", 0, "new permission level (1 staff, 2 manager, 3 admin); 0 keeps the current one")
	flag.Parse()

	if *username == "" || (*password == "" && *level == 0) {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

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

	ctx := context.Background()
	auth := service.NewAuthService(db, repository.NewUserRepo(db), jwt.NewManager(cfg.JWTSecret, cfg.SessionTTL))

	if *password != "" {
		if err := auth.ResetPassword(ctx, *username, *password); err != nil {
			log.Error("password reset failed", "username", *username, "error", err)
			os.Exit(1)
		}
		log.Info("password reset", "username", *username)
	}
	if *level != 0 {
		if err := auth.SetPermissionLevel(ctx, *username, *level); err != nil {
			log.Error("permission update failed", "username", *username, "error", err)
			os.Exit(1)
		}
		log.Info("permission level updated", "username", *username, "level", *level)
	}
}
