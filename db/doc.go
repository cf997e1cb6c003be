// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation, seed data and transaction execution.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - admin_user: admin credentials (PBKDF2 hash, salt, iterations)
  - survey_link: shared access codes with an active flag
  - question: the fixed 10-question set
  - answer_option: 5 options per question, deterministic IDs
  - respondent: one row per completed submission
  - response: one answer per question per respondent
  - stat: cached per-(question, option) counter and percentage

# Relationships

	question 1──* answer_option
	question 1──* response
	respondent 1──* response
	(question, answer_option) 1──1 stat

response rows cascade on respondent deletion; stat has a unique index on
(question_id, answer_option_id) backing the submission-time upsert.

# Seed Data

Seed populates everything idempotently:

	if err := db.Seed(conn, cfg.AdminUsername, cfg.AdminPassword, cfg.Iterations); err != nil {
		log.Fatal(err)
	}

The 10 questions and their 5 options each are inserted only when the
question table is empty; an admin user only when none exists (requiring a
configured password, else ErrAdminPasswordRequired); an active survey link
only when none is active.

# Transactions

WithTx runs a function inside a transaction and retries the whole body on
transient failures:

	err := db.WithTx(conn, func(tx *sql.Tx) error {
		// multi-statement write
		return nil
	})

Retried errors are bad connections, Postgres class-08 connection
exceptions, serialization failures and deadlocks. The body is re-run from
the top, so no partial writes are ever visible.
*/
package db
