package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration for the booking service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	AdminPassword string
	SessionTTL    time.Duration
	SeedRooms     bool
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults; an empty ROOMBOOK_SQLITE_DSN selects
// the in-memory store. ROOMBOOK_ADMIN_PASSWORD is required because the room
// management surface is unusable without it.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:   8080,
		SessionTTL: 24 * time.Hour,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("ROOMBOOK_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "ROOMBOOK_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	cfg.SQLiteDSN = strings.TrimSpace(os.Getenv("ROOMBOOK_SQLITE_DSN"))

	if password := os.Getenv("ROOMBOOK_ADMIN_PASSWORD"); strings.TrimSpace(password) == "" {
		missing = append(missing, "ROOMBOOK_ADMIN_PASSWORD")
	} else {
		cfg.AdminPassword = password
	}

	if ttlValue := strings.TrimSpace(os.Getenv("ROOMBOOK_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "ROOMBOOK_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if seedValue := strings.TrimSpace(os.Getenv("ROOMBOOK_SEED_ROOMS")); seedValue != "" {
		seed, err := strconv.ParseBool(seedValue)
		if err != nil {
			invalid = append(invalid, "ROOMBOOK_SEED_ROOMS")
		} else {
			cfg.SeedRooms = seed
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
