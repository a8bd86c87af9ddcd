// Package config reads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port          string
	SessionSecret string
	SessionName   string
	CookieSecure  bool
	LogLevel      string
	Storage       string
}

// LoadDotenv loads the first .env found next to the binary or up to two
// directories above it. Existing variables are not overridden.
func LoadDotenv() (string, bool) {
	for _, p := range []string{".env", filepath.Join("..", ".env"), filepath.Join("..", "..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				return p, true
			}
		}
	}
	return "", false
}

func Load() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret-change-me"),
		SessionName:   getEnv("SESSION_NAME", "blog-session"),
		CookieSecure:  getBool("COOKIE_SECURE", false),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Storage:       strings.ToLower(getEnv("STORAGE", StoragePostgres)),
	}
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}
