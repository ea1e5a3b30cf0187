package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	HTTPAddr       string
	DatabaseDSN    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CacheTTL       time.Duration
	CORSOrigins    []string
	WriteKeyHash   string
	AtmSource      string
	AtmSourceField string
}

// Load reads .env (if present) and the environment. DATABASE_DSN is only
// checked by RequireDatabase since the view command never touches MySQL.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("CACHE_TTL: %w", err)
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":3000"),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        redisDB,
		CacheTTL:       cacheTTL,
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200")),
		WriteKeyHash:   getEnv("WRITE_KEY_HASH", ""),
		AtmSource:      getEnv("ATM_SOURCE", "http://localhost:3000/atms"),
		AtmSourceField: getEnv("ATM_SOURCE_FIELD", "atms"),
	}

	return cfg, nil
}

func (c *Config) RequireDatabase() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
