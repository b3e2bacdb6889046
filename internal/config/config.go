// Package config loads the breakdown tool configuration from environment
// variables and .env files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"booking-breakdown/internal/domain"
)

// Config represents the application configuration.
type Config struct {
	DefaultRole domain.Role
	UnitType    domain.UnitType
	FixtureDir  string
	Debug       bool
}

// Load loads configuration from environment variables. A .env file in the
// current directory is loaded when present; pass a path to load a specific
// file instead, in which case it must exist.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	role, err := domain.ParseRole(getEnvOrDefault("BREAKDOWN_DEFAULT_ROLE", "provider"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKDOWN_DEFAULT_ROLE: %w", err)
	}
	unitType, err := domain.ParseUnitType(getEnvOrDefault("BREAKDOWN_UNIT_TYPE", string(domain.UnitNight)))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKDOWN_UNIT_TYPE: %w", err)
	}

	return &Config{
		DefaultRole: role,
		UnitType:    unitType,
		FixtureDir:  getEnvOrDefault("BREAKDOWN_FIXTURE_DIR", "examples/bookings"),
		Debug:       os.Getenv("DEBUG") == "true",
	}, nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
