// Package bootstrap wires the shared runtime dependencies used by the server
// and the CLI tools.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"clipmark/internal/cache"
	"clipmark/internal/config"
	"clipmark/internal/database"
	"clipmark/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to DB and Redis and optionally bootstraps the
// development demo account.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	// Connect DB
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevDemoCreator(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development demo account: %w", err)
	}

	return db, r, nil
}

// ensureDevDemoCreator creates a known creator login in development so the
// frontend has an account to work with after a fresh database reset.
func ensureDevDemoCreator(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapDemo {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevDemoEmail))
	if email == "" {
		email = "demo@clipmark.local"
	}
	password := cfg.DevDemoPassword
	if password == "" {
		return fmt.Errorf("DEV_DEMO_PASSWORD must be set when DEV_BOOTSTRAP_DEMO is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var identity models.Identity
		findErr := tx.Where("email = ?", email).First(&identity).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			identity = models.Identity{
				ID:           uuid.NewString(),
				Email:        email,
				PasswordHash: string(hashedPassword),
			}
			if err := tx.Create(&identity).Error; err != nil {
				return err
			}
		case findErr != nil:
			return findErr
		default:
			if err := tx.Model(&models.Identity{}).
				Where("id = ?", identity.ID).
				Update("password_hash", string(hashedPassword)).Error; err != nil {
				return err
			}
		}

		var profile models.CreatorProfile
		profileErr := tx.First(&profile, "id = ?", identity.ID).Error
		switch {
		case errors.Is(profileErr, gorm.ErrRecordNotFound):
			profile = models.CreatorProfile{
				ID:        identity.ID,
				FullName:  "Demo Creator",
				BrandName: "Demo Studio",
				Email:     email,
				Platform:  models.PlatformYoutube,
				Niche:     models.NicheEntertainment,
				Country:   "US",
			}
			return tx.Create(&profile).Error
		case profileErr != nil:
			return profileErr
		}
		return nil
	}); err != nil {
		return err
	}

	log.Printf("development demo creator bootstrap ensured (%s)", email)
	return nil
}
