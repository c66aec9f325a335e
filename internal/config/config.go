// Package config reads service settings from the environment. A local
// .env file is honored when present so development does not need exported
// variables; production injects real ones.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv pulls in a .env file when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
}

// GetEnv returns the named variable, or fallback when unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetIntEnv returns the named variable parsed as an int, or fallback when
// unset or unparsable. A malformed value is logged, not fatal.
func GetIntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}

// IsProduction reports whether ENV is set to production. It gates the
// database log verbosity.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
