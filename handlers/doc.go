// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP endpoints.

# Structure

Three handler groups, each holding the shared *sql.DB, the parsed config
and the template set:

  - SurveyHandler: the public pages - link entry, the survey form with its
    validation and transactional submission, and the thank-you page
  - AdminHandler: login/logout, the reporting dashboard and the purge action
  - ExportHandler: the two-sheet Excel report

# Reporting

stats.go holds the pure aggregation logic: mapping option texts onto a
canonical five-point satisfaction scale, per-question breakdowns, the
pooled distribution and weighted averages. It touches no I/O so the
arithmetic is testable without a database.

# Submission

A submission is atomic: the respondent row, one response row per question
and the stat counter bumps all commit together or not at all. The stat
table's percentages are refreshed in the same transaction.
*/
package handlers
