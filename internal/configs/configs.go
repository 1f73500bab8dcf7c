package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	RateLimit              int
	RedisAddr              string
	CacheEnabled           bool
	CacheTTLSeconds        int
	CacheKeyPrefix         string
	RefreshWorkers         int
	RefreshQueueSize       int
	JWTSecret              string
	JWTIssuer              string
	TokenTTLMinutes        int
	LogLevel               string
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:         getEnv("DATABASE_DRIVER", DriverSQLite),
		DatabaseDSN:            getEnv("DATABASE_DSN", "study-planner.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		CacheEnabled:           getEnvAsBool("CACHE_ENABLED", true),
		CacheTTLSeconds:        getEnvAsInt("CACHE_TTL_SECONDS", 300),
		CacheKeyPrefix:         getEnv("CACHE_KEY_PREFIX", "study-planner:"),
		RefreshWorkers:         getEnvAsInt("REFRESH_WORKERS", 2),
		RefreshQueueSize:       getEnvAsInt("REFRESH_QUEUE_SIZE", 64),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTIssuer:              getEnv("JWT_ISSUER", "study-planner"),
		TokenTTLMinutes:        getEnvAsInt("TOKEN_TTL_MINUTES", 60),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	if err := validate(cfg); err != nil {
		log.Fatal(err)
	}
	return cfg
}

func validate(cfg Config) error {
	if cfg.AppURL == "" {
		return fmt.Errorf("APP_HOST/APP_PORT must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q", DriverSQLite, DriverPostgres)
	}
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.CacheEnabled && cfg.CacheTTLSeconds <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be greater than 0")
	}
	if cfg.RefreshWorkers <= 0 {
		return fmt.Errorf("REFRESH_WORKERS must be greater than 0")
	}
	if cfg.RefreshQueueSize <= 0 {
		return fmt.Errorf("REFRESH_QUEUE_SIZE must be greater than 0")
	}
	if len(cfg.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if cfg.TokenTTLMinutes <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("invalid boolean value for %s", key)
		}
		return b
	}
	return defaultVal
}
