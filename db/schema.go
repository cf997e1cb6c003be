// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Admin users
CREATE TABLE IF NOT EXISTS admin_user (
    id SERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash BYTEA NOT NULL,
    password_salt BYTEA NOT NULL,
    iteration_count INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Survey access links. No single-active constraint: selection always takes
-- the newest active row.
CREATE TABLE IF NOT EXISTS survey_link (
    id SERIAL PRIMARY KEY,
    code TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_survey_link_active ON survey_link(active, created_at);

-- Fixed question set, seeded once
CREATE TABLE IF NOT EXISTS question (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    text TEXT NOT NULL
);

-- Five options per question, deterministic IDs (question_id*10 + position)
CREATE TABLE IF NOT EXISTS answer_option (
    id INTEGER PRIMARY KEY,
    question_id INTEGER NOT NULL REFERENCES question(id),
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    UNIQUE (question_id, position)
);

CREATE INDEX IF NOT EXISTS idx_answer_option_question ON answer_option(question_id);

-- Respondents (one row per completed submission)
CREATE TABLE IF NOT EXISTS respondent (
    id BIGSERIAL PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_respondent_email ON respondent(email, created_at);
CREATE INDEX IF NOT EXISTS idx_respondent_created ON respondent(created_at);

-- Responses (exactly one per question per respondent)
CREATE TABLE IF NOT EXISTS response (
    id BIGSERIAL PRIMARY KEY,
    respondent_id BIGINT NOT NULL REFERENCES respondent(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL REFERENCES question(id),
    answer_option_id INTEGER NOT NULL REFERENCES answer_option(id),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_response_respondent ON response(respondent_id);
CREATE INDEX IF NOT EXISTS idx_response_question_option ON response(question_id, answer_option_id);
CREATE INDEX IF NOT EXISTS idx_response_created ON response(created_at);

-- Cached per-(question, option) counters and percentages
CREATE TABLE IF NOT EXISTS stat (
    id SERIAL PRIMARY KEY,
    question_id INTEGER NOT NULL REFERENCES question(id),
    answer_option_id INTEGER NOT NULL REFERENCES answer_option(id),
    counter BIGINT NOT NULL DEFAULT 0,
    percent NUMERIC(5,2) NOT NULL DEFAULT 0,
    UNIQUE (question_id, answer_option_id)
);
`
