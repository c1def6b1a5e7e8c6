package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort     = "8080"
	defaultTimezone = "UTC"
	minSecretLength = 32
)

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses an insecure placeholder")
	ErrSecretKeyTooShort    = errors.New("SECRET_KEY must be at least 32 characters")
	ErrPortInvalid          = errors.New("PORT must be a number between 1 and 65535")
)

var insecureSecretPlaceholders = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

// Config is the runtime configuration. File values are overridden by
// environment variables.
type Config struct {
	Timezone     string `yaml:"timezone"`
	DBPath       string `yaml:"db_path"`
	Port         string `yaml:"port"`
	SecretKey    string `yaml:"secret_key"`
	CookieSecure bool   `yaml:"cookie_secure"`
	// DatabaseURL selects the PostgreSQL store instead of SQLite when set.
	DatabaseURL string `yaml:"database_url"`
}

func Default() Config {
	return Config{
		Timezone: defaultTimezone,
		DBPath:   filepath.Join("data", "luna.db"),
		Port:     defaultPort,
	}
}

// Load reads the optional YAML file at path and applies env overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Timezone = getEnv("TZ", cfg.Timezone)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.SecretKey = getEnv("SECRET_KEY", cfg.SecretKey)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)

	if raw := getEnv("COOKIE_SECURE", ""); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = secure
	}

	return cfg, nil
}

// Location resolves the configured timezone, falling back to UTC.
func (cfg Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", cfg.Timezone)
		return time.UTC
	}
	return location
}

func ResolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretPlaceholders[strings.ToLower(secret)]; insecure {
		return "", ErrSecretKeyPlaceholder
	}
	if len(secret) < minSecretLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

func ResolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return defaultPort, nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", ErrPortInvalid
	}
	return port, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
