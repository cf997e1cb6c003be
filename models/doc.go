// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and view-model types for the survey server.

# Domain Types

Rows of the relational schema:

  - AdminUser: admin credentials (PBKDF2 hash, salt, iteration count)
  - SurveyLink: shared survey access code with active flag
  - Question: fixed seed question (position, text)
  - AnswerOption: one of five options per question
  - Respondent: one completed submission (name, surname, normalized email)
  - Response: one answer, linking respondent, question and option
  - Stat: cached per-(question, option) counter and percentage

Respondent and Response rows are append-only; Stat rows are mutated by every
submission and reset by the purge action.

# Dashboard Types

View models produced by the reporting workflow:

  - QuestionStat / OptionStat: per-question counts and percentages
  - LabelCount: pooled satisfaction distribution entry
  - QuestionAverage: per-question 1..5 mean score
  - DetailRow: one row of the filterable answer listing
  - Filter: optional dashboard/export query filters
  - Dashboard: the combined admin index view model

# Constants

The survey shape is fixed at seed time:

	QuestionCount      = 10
	OptionsPerQuestion = 5
*/
package models
