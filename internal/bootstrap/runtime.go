// Package bootstrap wires process-level dependencies before the server starts.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"vitrine/internal/cache"
	"vitrine/internal/config"
	"vitrine/internal/database"
	"vitrine/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// EnsureSettings creates the profile settings row when it is missing so
	// the public settings endpoint never 404s on a fresh database.
	EnsureSettings bool
}

// InitRuntime connects to the database and Redis and applies startup fixups.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()
	if r == nil {
		return nil, nil, errors.New("redis connection failed")
	}

	if err := ensureDevRootAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development root admin: %w", err)
	}

	if opts.EnsureSettings {
		if err := ensureSettingsRow(db); err != nil {
			return nil, nil, fmt.Errorf("failed to ensure settings row: %w", err)
		}
	}

	return db, r, nil
}

func ensureSettingsRow(db *gorm.DB) error {
	settings := models.Settings{ID: models.SettingsID}
	return db.FirstOrCreate(&settings, models.Settings{ID: models.SettingsID}).Error
}

// ensureDevRootAdmin seeds an admin account with ID 1 in development so the
// support chat and settings endpoints are usable without manual setup. It is
// a no-op outside development or when DEV_BOOTSTRAP_ROOT is off.
func ensureDevRootAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return nil
	}

	login := strings.TrimSpace(cfg.DevRootLogin)
	if login == "" {
		login = "vitrine_root"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevRootEmail))
	if email == "" {
		email = "root@vitrine.local"
	}
	password := cfg.DevRootPassword
	if password == "" {
		return fmt.Errorf("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var root models.User
		findErr := tx.First(&root, 1).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				ID:      1,
				Email:   email,
				Login:   login,
				Senha:   string(hashed),
				Plano:   models.PlanMensal,
				Status:  models.UserStatusAtivo,
				IsAdmin: true,
			}
			if err := tx.Create(&root).Error; err != nil {
				return err
			}
		case findErr != nil:
			return findErr
		default:
			if err := tx.Model(&models.User{}).Where("id = ?", 1).
				Update("is_admin", true).Error; err != nil {
				return err
			}
		}

		// Keep the users ID sequence ahead of the explicit ID insertion.
		// PostgreSQL-specific; SQLite handles this on its own.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(`
				SELECT setval(
					pg_get_serial_sequence('users', 'id'),
					GREATEST((SELECT COALESCE(MAX(id), 1) FROM users), 1),
					true
				)
			`).Error; err != nil {
				return fmt.Errorf("failed to reset users sequence: %w", err)
			}
		}

		return nil
	}); err != nil {
		return err
	}

	slog.Info("development root admin ensured", "email", email, "login", login)
	return nil
}
