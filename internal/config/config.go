package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. It is shared by both server binaries; each binary validates
// the sections it actually needs.
type Config struct {
	Port        string
	Env         string
	CORSOrigins []string

	DB     DatabaseConfig
	Redis  RedisConfig
	Upload UploadConfig
	Ninjas NinjasConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters. Redis is optional and
// only used by the dashboard as a short-TTL upstream response cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// UploadConfig contains the managed upload directory for product images.
type UploadConfig struct {
	Dir string
}

// NinjasConfig contains credentials for the api-ninjas bitcoin endpoint.
type NinjasConfig struct {
	APIKey   string
	BaseURL  string
	CacheTTL time.Duration
}

// Load reads configuration from environment variables. If a .env file
// exists in the working directory, it is loaded first.
func Load() (*Config, error) {
	// Ignore a missing .env so that environments relying solely on real
	// environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Port = getEnv("PORT", "3005")
	cfg.Env = getEnv("ENV", "development")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"))

	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	cfg.Upload = UploadConfig{
		Dir: getEnv("UPLOAD_DIR", "uploads"),
	}

	cfg.Ninjas = NinjasConfig{
		APIKey:  getEnv("NINJAS_API_KEY", ""),
		BaseURL: getEnv("NINJAS_BASE_URL", ""),
	}
	var err error
	if cfg.Ninjas.CacheTTL, err = parseDurationEnv("NINJAS_CACHE_TTL", "10s"); err != nil {
		return nil, fmt.Errorf("invalid NINJAS_CACHE_TTL: %w", err)
	}

	return cfg, nil
}

// ValidateCatalog checks the settings the catalog server depends on.
func (c *Config) ValidateCatalog() error {
	if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
		return errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}
	return nil
}

// ValidateDashboard checks the settings the dashboard server depends on.
func (c *Config) ValidateDashboard() error {
	if c.Ninjas.APIKey == "" {
		return errors.New("NINJAS_API_KEY must be set for the bitcoin dashboard")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a
// default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as a
// time.Duration, falling back to the provided default when unset.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

// splitList splits a comma-separated env value into trimmed entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
