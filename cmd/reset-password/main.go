package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"smart-inventory/internal/config"
	"smart-inventory/internal/repository"
	"smart-inventory/internal/service"
	"smart-inventory/pkg/database"
	"smart-inventory/pkg/logger"
	"smart-inventory/pkg/password"
)

// reset-password sets a new password for an administrator or staff member
// directly in the database, for when nobody can log in any more.
func main() {
	envFile := flag.String("env", "", "path to an env file (defaults to .env)")
	username := flag.String("username", "", "account to reset")
	newPassword := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	if *username == "" || *newPassword == "" {
		fmt.Fprintln(os.Stderr, "usage: reset-password -username <name> -password <new password>")
		os.Exit(2)
	}

	// 1. Load Env
	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = log.Sync() }()

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, log.Named("gorm"))
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	// 3. Update
	identity := service.NewIdentityService(
		repository.NewUserRepo(db),
		repository.NewRoleRepo(db),
		repository.NewPermissionRepo(db),
		nil,
		password.NewBcrypt(cfg.Security.BcryptCost),
		log.Named("svc.identity"),
	)
	if err := identity.SetPassword(context.Background(), *username, *newPassword); err != nil {
		log.Fatal("failed to reset password", zap.String("username", *username), zap.Error(err))
	}

	log.Info("password reset", zap.String("username", *username))
}
