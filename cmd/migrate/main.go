// Command migrate applies the embedded schema migrations and optionally
// seeds the first admin account from SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/config"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/user"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/database"
	"github.com/pupr-presensi/presensi-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	applied, err := db.Migrate(ctx)
	if err != nil {
		return err
	}
	slog.Info("migrations done", "applied", len(applied))

	if !cfg.Seed.Enabled() {
		return nil
	}

	userRepo := postgresql.NewUserRepository(db)
	if _, err := userRepo.GetByEmail(ctx, cfg.Seed.AdminEmail); err == nil {
		slog.Info("seed admin already exists", "email", cfg.Seed.AdminEmail)
		return nil
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("look up seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed admin password: %w", err)
	}

	created, err := userRepo.Create(ctx, user.User{
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: string(hash),
		FullName:     cfg.Seed.AdminName,
		IsAdmin:      true,
	})
	if err != nil {
		return fmt.Errorf("create seed admin: %w", err)
	}

	slog.Info("seed admin created", "email", created.Email, "id", created.ID)
	return nil
}
