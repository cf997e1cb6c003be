// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aspilic/itanket/models"
)

// The dashboard pools every answer into a single five-point satisfaction
// scale so that questions with different wording ("memnun musunuz" vs
// "katılıyor musunuz") can be compared and averaged together.

// canonicalLabels is the pooled distribution in display order, best to worst.
var canonicalLabels = [...]string{
	"Çok memnunum",
	"Memnunum",
	"Kararsızım",
	"Memnun değilim",
	"Hiç memnun değilim",
}

// canonicalByText maps lowercased option text to its canonical label.
// Agreement-scale texts fold into the satisfaction scale; anything not
// listed here is treated as neutral.
var canonicalByText = map[string]string{
	"çok memnunum":            "Çok memnunum",
	"memnunum":                "Memnunum",
	"kararsızım":              "Kararsızım",
	"memnun değilim":          "Memnun değilim",
	"hiç memnun değilim":      "Hiç memnun değilim",
	"kesinlikle katılıyorum":  "Çok memnunum",
	"katılıyorum":             "Memnunum",
	"katılmıyorum":            "Memnun değilim",
	"kesinlikle katılmıyorum": "Hiç memnun değilim",
}

// scoreByText maps lowercased option text to its 1-5 score. Unlisted texts
// score 3 (neutral), matching the canonical mapping above.
var scoreByText = map[string]int64{
	"çok memnunum":            5,
	"memnunum":                4,
	"kararsızım":              3,
	"memnun değilim":          2,
	"hiç memnun değilim":      1,
	"kesinlikle katılıyorum":  5,
	"katılıyorum":             4,
	"katılmıyorum":            2,
	"kesinlikle katılmıyorum": 1,
}

// CanonicalLabel maps an answer option's text onto the pooled five-point
// satisfaction scale. Unknown texts are neutral.
func CanonicalLabel(text string) string {
	if label, ok := canonicalByText[strings.ToLower(strings.TrimSpace(text))]; ok {
		return label
	}
	return "Kararsızım"
}

// ScoreOf maps an answer option's text to its 1-5 score. Unknown texts
// score 3.
func ScoreOf(text string) int64 {
	if score, ok := scoreByText[strings.ToLower(strings.TrimSpace(text))]; ok {
		return score
	}
	return 3
}

// Percent returns count/total as a percentage rounded to two decimal
// places. A zero total yields zero, not an error.
func Percent(count, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(count).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(total), 2)
}

// BuildQuestionStats assembles the per-question option breakdown from raw
// answer counts keyed by option ID. Every seeded option appears in the
// result, zero-count ones included, so tables keep a stable shape.
// Percentages are relative to the question's own total.
func BuildQuestionStats(questions []models.Question, options []models.AnswerOption, counts map[int]int64) []models.QuestionStat {
	byQuestion := make(map[int][]models.AnswerOption, len(questions))
	for _, opt := range options {
		byQuestion[opt.QuestionID] = append(byQuestion[opt.QuestionID], opt)
	}

	stats := make([]models.QuestionStat, 0, len(questions))
	for _, q := range questions {
		opts := byQuestion[q.ID]
		var total int64
		for _, opt := range opts {
			total += counts[opt.ID]
		}

		qs := models.QuestionStat{
			QuestionID: q.ID,
			Text:       q.Text,
			Options:    make([]models.OptionStat, 0, len(opts)),
		}
		for _, opt := range opts {
			n := counts[opt.ID]
			qs.Options = append(qs.Options, models.OptionStat{
				OptionID: opt.ID,
				Text:     opt.Text,
				Count:    n,
				Percent:  Percent(n, total),
			})
		}
		stats = append(stats, qs)
	}
	return stats
}

// OverallDistribution pools all answers across every question onto the
// canonical five-point scale. All five labels are always present, in
// display order, so the distribution table never changes shape.
func OverallDistribution(options []models.AnswerOption, counts map[int]int64) []models.LabelCount {
	pooled := make(map[string]int64, len(canonicalLabels))
	var total int64
	for _, opt := range options {
		n := counts[opt.ID]
		pooled[CanonicalLabel(opt.Text)] += n
		total += n
	}

	dist := make([]models.LabelCount, 0, len(canonicalLabels))
	for _, label := range canonicalLabels {
		dist = append(dist, models.LabelCount{
			Label:   label,
			Count:   pooled[label],
			Percent: Percent(pooled[label], total),
		})
	}
	return dist
}

// QuestionAverages computes each question's mean score on the 1-5 scale,
// weighted by answer counts. Questions with no answers are omitted rather
// than reported as zero.
func QuestionAverages(questions []models.Question, options []models.AnswerOption, counts map[int]int64) []models.QuestionAverage {
	byQuestion := make(map[int][]models.AnswerOption, len(questions))
	for _, opt := range options {
		byQuestion[opt.QuestionID] = append(byQuestion[opt.QuestionID], opt)
	}

	averages := make([]models.QuestionAverage, 0, len(questions))
	for _, q := range questions {
		var total, weighted int64
		for _, opt := range byQuestion[q.ID] {
			n := counts[opt.ID]
			total += n
			weighted += n * ScoreOf(opt.Text)
		}
		if total == 0 {
			continue
		}
		averages = append(averages, models.QuestionAverage{
			QuestionID: q.ID,
			Text:       q.Text,
			Average:    decimal.NewFromInt(weighted).DivRound(decimal.NewFromInt(total), 2),
		})
	}
	return averages
}
