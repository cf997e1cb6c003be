// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseURL: PostgreSQL connection string (required)
  - SessionSecret: Secret for signing the admin session cookie (required)
  - SessionHours: Admin session lifetime (default: 8)
  - AdminUsername / AdminPassword: seed credentials, consumed only when
    no admin user exists yet (default username: admin)
  - Iterations: PBKDF2 iteration count for the seeded admin (default: 100000)
  - BlockDays: duplicate-submission window in days (default: 30)

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	SESSION_SECRET    → --session-secret
	SESSION_HOURS     → --session-hours
	ADMIN_USERNAME    → --admin-user
	ADMIN_PASSWORD    → --admin-pass
	PBKDF2_ITERATIONS → --iterations
	BLOCK_DAYS        → --block-days

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - SESSION_SECRET must be provided

ADMIN_PASSWORD is deliberately not required here: it is only needed the
first time the server runs against an empty database, and the seeding step
reports a clear error in that case.
*/
package cliparse
