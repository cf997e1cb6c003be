// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fixed survey shape. The question and option sets are seed data and never
// change after seeding.
const (
	QuestionCount      = 10
	OptionsPerQuestion = 5
)

// Domain types

type AdminUser struct {
	ID             int
	Username       string
	PasswordHash   []byte
	PasswordSalt   []byte
	IterationCount int
	CreatedAt      time.Time
}

// SurveyLink is the shared access code. Multiple rows may be active; new
// visitors are always routed to the most recently created active one.
type SurveyLink struct {
	ID        int
	Code      string
	Active    bool
	CreatedAt time.Time
}

type Question struct {
	ID       int
	Position int
	Text     string
}

// AnswerOption IDs are deterministic: questionID*10 + position.
type AnswerOption struct {
	ID         int
	QuestionID int
	Position   int
	Text       string
}

type Respondent struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string // stored lowercased and trimmed
	CreatedAt time.Time
}

type Response struct {
	ID             int64
	RespondentID   int64
	QuestionID     int
	AnswerOptionID int
	CreatedAt      time.Time
}

// Stat is the denormalized per-(question, option) counter kept in sync with
// response rows by the submission workflow. Recomputable from responses.
type Stat struct {
	ID             int
	QuestionID     int
	AnswerOptionID int
	Counter        int64
	Percent        decimal.Decimal
}

// Dashboard types

type OptionStat struct {
	OptionID int
	Text     string
	Count    int64
	Percent  decimal.Decimal
}

type QuestionStat struct {
	QuestionID int
	Text       string
	Options    []OptionStat
}

// LabelCount is one slice of the pooled satisfaction distribution.
type LabelCount struct {
	Label   string
	Count   int64
	Percent decimal.Decimal
}

type QuestionAverage struct {
	QuestionID int
	Text       string
	Average    decimal.Decimal
}

// DetailRow is one line of the filterable answer listing
// (response joined to respondent, question and option).
type DetailRow struct {
	Date       time.Time
	FirstName  string
	LastName   string
	Email      string
	QuestionID int
	Question   string
	Option     string
}

// Filter carries the optional dashboard/export query filters.
// Zero values mean "not set".
type Filter struct {
	Start      *time.Time // inclusive
	End        *time.Time // matched as created_at < End+1 day
	FirstName  string     // substring, case-sensitive
	LastName   string     // substring, case-sensitive
	Email      string     // substring, case-insensitive
	QuestionID int
	OptionID   int // resolved to option text, matched by text
}

// Dashboard is the admin index view model.
type Dashboard struct {
	TotalRespondents int64
	Last7Days        int64
	QuestionStats    []QuestionStat
	Overall          []LabelCount
	Averages         []QuestionAverage
	Details          []DetailRow
	Filter           Filter
	Questions        []Question
	Options          []AnswerOption
	Notice           string
	CSRF             string
	ExcelQuery       string // current filter query string, reused by the export link
}
