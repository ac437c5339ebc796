package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/pkg/config"
	"github.com/Skotchmaster/bookstore/pkg/db"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type ServiceConfig struct {
	config.Config
}

// LoadEnv reads a .env file into the process environment when one exists.
func LoadEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("Notice: %s file not found: %v. Using system environment variables", path, err)
	}
}

func Load() ServiceConfig {
	LoadEnv(".env")
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustOneOf(cfg.DatabaseDriver, "DB_DRIVER", db.DriverPostgres, db.DriverPQ, db.DriverSQLite)

	return ServiceConfig{Config: cfg}
}

func (c ServiceConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// InitDB opens the configured database and brings the schema up to date.
func InitDB(ctx context.Context, cfg ServiceConfig) (*gorm.DB, error) {
	gdb, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(ctx, gdb); err != nil {
		_ = db.Close(gdb)
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return gdb, nil
}
