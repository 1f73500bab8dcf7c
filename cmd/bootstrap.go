package cmd

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"study-planner.com/study-planner/internal/auth"
	config "study-planner.com/study-planner/internal/configs"
)

func loadConfig() config.Config {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("%s not found, using environment variables", envFile)
	}
	return config.Load()
}

func openDatabase(cfg config.Config) (*gorm.DB, error) {
	db, err := config.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newJWTManager(cfg config.Config) *auth.JWTManager {
	return auth.NewJWTManager(auth.JWTConfig{
		SecretKey:      cfg.JWTSecret,
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	})
}
