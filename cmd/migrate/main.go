// Command migrate applies the embedded goose migrations to PostgreSQL.
// It also bootstraps the first administrator account, since registration
// only ever grants the regular user role.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"inkwell/config"
	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/lifecycle"
	"inkwell/internal/infra/auth"
	"inkwell/internal/infra/persistence/model"
	"inkwell/migrations"

	"github.com/pressly/goose/v3"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := run(); err != nil {
		slog.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, sqlDB, ".")
	case "down":
		return goose.DownContext(ctx, sqlDB, ".")
	case "status":
		return goose.StatusContext(ctx, sqlDB, ".")
	case "seed-admin":
		return seedAdmin(ctx, db, cfg)
	default:
		return fmt.Errorf("unknown command %q (want up, down, status or seed-admin)", command)
	}
}

// adminSeed holds the bootstrap account read from the environment.
type adminSeed struct {
	Username string
	Email    string
	Password string
}

// adminSeedFromEnv reads ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD.
// The username is normalized the same way registration normalizes it.
func adminSeedFromEnv() (adminSeed, error) {
	seed := adminSeed{
		Username: strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))),
		Email:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	if seed.Username == "" || seed.Email == "" || seed.Password == "" {
		return adminSeed{}, fmt.Errorf("ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD must all be set")
	}

	return seed, nil
}

// seedAdmin creates the administrator account, or promotes it when an
// identity with that username already exists. Re-running is harmless.
func seedAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	seed, err := adminSeedFromEnv()
	if err != nil {
		return err
	}

	hasher := auth.NewBcryptHasher(cfg)
	if err := hasher.ValidatePasswordStrength(seed.Password); err != nil {
		return fmt.Errorf("admin password: %w", err)
	}
	passwordHash, err := hasher.Hash(seed.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		identity := model.IdentityModel{}
		err := tx.Where("username = ?", seed.Username).First(&identity).Error
		switch {
		case err == nil:
			// Existing account: only the role grant is applied.
			slog.Info("identity already exists, granting admin role", slog.String("username", seed.Username))
		case errors.Is(err, gorm.ErrRecordNotFound):
			identity = model.IdentityModel{
				Username:    seed.Username,
				Email:       seed.Email,
				DisplayName: seed.Username,
			}
			if err := tx.Create(&identity).Error; err != nil {
				return fmt.Errorf("create admin identity: %w", err)
			}
			credential := model.CredentialModel{
				IdentityID:   identity.ID,
				PasswordHash: passwordHash,
			}
			if err := tx.Create(&credential).Error; err != nil {
				return fmt.Errorf("create admin credential: %w", err)
			}
		default:
			return fmt.Errorf("look up admin identity: %w", err)
		}

		roles := []model.RoleModel{
			{IdentityID: identity.ID, Role: entity.RoleUser.String()},
			{IdentityID: identity.ID, Role: entity.RoleAdmin.String()},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
			return fmt.Errorf("grant admin role: %w", err)
		}

		slog.Info("admin account ready", slog.String("username", seed.Username))

		return nil
	})
}
