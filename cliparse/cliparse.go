// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	SessionSecret string
	SessionHours  int
	AdminUsername string
	AdminPassword string
	Iterations    int
	BlockDays     int
}

// ParseFlags validates flags and applies environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("itanket", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session cookie signing secret (prefer env)")
	fs.StringVar(&cfg.AdminPassword, "admin-pass", "", "Admin seed password (prefer env)")

	fs.IntVar(&cfg.SessionHours, "session-hours", 0, "Admin session lifetime in hours")
	fs.StringVar(&cfg.AdminUsername, "admin-user", "", "Admin seed username")
	fs.IntVar(&cfg.Iterations, "iterations", 0, "PBKDF2 iteration count for seeded admin")
	fs.IntVar(&cfg.BlockDays, "block-days", 0, "Days to block repeat submissions from the same email")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - session secret MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.SessionHours == 0 {
		cfg.SessionHours = envInt("SESSION_HOURS", 8)
		if cfg.SessionHours <= 0 {
			return Config{}, errors.New("invalid SESSION_HOURS env variable")
		}
	}

	// Admin seed values are only consumed when no admin row exists yet;
	// the password may stay empty on an already-seeded database.
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
		if cfg.AdminUsername == "" {
			cfg.AdminUsername = "admin"
		}
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}

	if cfg.Iterations == 0 {
		cfg.Iterations = envInt("PBKDF2_ITERATIONS", 100000)
		if cfg.Iterations <= 0 {
			return Config{}, errors.New("invalid PBKDF2_ITERATIONS env variable")
		}
	}

	if cfg.BlockDays == 0 {
		cfg.BlockDays = envInt("BLOCK_DAYS", 30)
		if cfg.BlockDays <= 0 {
			return Config{}, errors.New("invalid BLOCK_DAYS env variable")
		}
	}

	return cfg, nil
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
