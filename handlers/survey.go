// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/aspilic/itanket/cliparse"
	"github.com/aspilic/itanket/db"
	"github.com/aspilic/itanket/middleware"
	"github.com/aspilic/itanket/models"
	"github.com/aspilic/itanket/views"
)

// SurveyHandler serves the public survey pages: link entry, the form
// itself and the thank-you page.
type SurveyHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	views *views.Views
}

func NewSurveyHandler(database *sql.DB, cfg cliparse.Config, v *views.Views) *SurveyHandler {
	return &SurveyHandler{db: database, cfg: cfg, views: v}
}

// surveyPage is the anket template's view model. Field values round-trip
// on validation failure so the visitor never retypes anything.
type surveyPage struct {
	Code      string
	CSRF      string
	FirstName string
	LastName  string
	Email     string
	Errors    map[string]string
	Questions []surveyQuestion
}

type surveyQuestion struct {
	ID       int
	Text     string
	Options  []models.AnswerOption
	Selected int
	Error    string
}

// Entry redirects the visitor to the newest active survey link, creating
// one first if the table holds none.
func (h *SurveyHandler) Entry(w http.ResponseWriter, r *http.Request) {
	var code string
	err := h.db.QueryRow(`
		SELECT code FROM survey_link
		WHERE active
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`).Scan(&code)
	if err == sql.ErrNoRows {
		if err := db.SeedLink(h.db); err != nil {
			slog.Error("failed to create survey link", "error", err)
			h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
			return
		}
		err = h.db.QueryRow(`
			SELECT code FROM survey_link
			WHERE active
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		`).Scan(&code)
	}
	if err != nil {
		slog.Error("failed to load survey link", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}
	http.Redirect(w, r, "/Anket/"+code, http.StatusFound)
}

// ShowForm renders the survey form for a valid, active link code.
func (h *SurveyHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("kod")
	ok, err := h.linkActive(code)
	if err != nil {
		slog.Error("failed to check survey link", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}
	if !ok {
		h.views.RenderError(w, http.StatusNotFound, "Geçersiz anket linki.")
		return
	}

	questions, options, err := loadSurvey(h.db)
	if err != nil {
		slog.Error("failed to load survey", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}

	page := newSurveyPage(code, questions, options)
	page.CSRF = middleware.EnsureCSRFCookie(w, r)
	h.views.Render(w, http.StatusOK, "anket", page)
}

// Submit validates and stores one survey submission. All writes - the
// respondent, the ten answers and the stat counters - land in a single
// transaction, so a failure anywhere leaves no partial submission behind.
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("kod")
	ok, err := h.linkActive(code)
	if err != nil {
		slog.Error("failed to check survey link", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}
	if !ok {
		h.views.RenderError(w, http.StatusNotFound, "Geçersiz anket linki.")
		return
	}

	if err := r.ParseForm(); err != nil || !middleware.ValidCSRF(r) {
		h.views.RenderError(w, http.StatusForbidden, "Geçersiz istek. Lütfen sayfayı yenileyip tekrar deneyin.")
		return
	}

	questions, options, err := loadSurvey(h.db)
	if err != nil {
		slog.Error("failed to load survey", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}

	page := newSurveyPage(code, questions, options)
	page.CSRF = middleware.EnsureCSRFCookie(w, r)
	page.FirstName = strings.TrimSpace(r.FormValue("isim"))
	page.LastName = strings.TrimSpace(r.FormValue("soyisim"))
	page.Email = strings.TrimSpace(r.FormValue("mail"))

	if page.FirstName == "" {
		page.Errors["isim"] = "İsim alanı zorunludur."
	}
	if page.LastName == "" {
		page.Errors["soyisim"] = "Soyisim alanı zorunludur."
	}
	emailOK := false
	if page.Email == "" {
		page.Errors["mail"] = "E-posta alanı zorunludur."
	} else if _, err := mail.ParseAddress(page.Email); err != nil {
		page.Errors["mail"] = "Geçerli bir e-posta adresi giriniz."
	} else {
		emailOK = true
	}

	optionOwner := make(map[int]int, len(options))
	for _, opt := range options {
		optionOwner[opt.ID] = opt.QuestionID
	}
	answers := make(map[int]int, len(page.Questions)) // question ID -> option ID
	for i := range page.Questions {
		q := &page.Questions[i]
		optID, err := strconv.Atoi(r.FormValue(fmt.Sprintf("secim_%d", q.ID)))
		if err != nil || optionOwner[optID] != q.ID {
			q.Error = "Lütfen bir seçenek seçiniz."
			continue
		}
		q.Selected = optID
		answers[q.ID] = optID
	}

	// The repeat-submission check runs alongside field validation, not
	// after it, so the visitor sees every problem in one round trip.
	email := strings.ToLower(page.Email)
	if emailOK {
		cutoff := time.Now().UTC().AddDate(0, 0, -h.cfg.BlockDays)
		var exists bool
		err := h.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM respondent WHERE email = $1 AND created_at >= $2)
		`, email, cutoff).Scan(&exists)
		if err != nil {
			slog.Error("failed to check repeat submission", "error", err)
			h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
			return
		}
		if exists {
			page.Errors["mail"] = fmt.Sprintf("Bu e-posta ile son %d gün içinde anket doldurulmuş görünüyor.", h.cfg.BlockDays)
		}
	}

	if len(page.Errors) > 0 || len(answers) < len(page.Questions) {
		h.views.Render(w, http.StatusOK, "anket", page)
		return
	}

	now := time.Now().UTC()
	err = db.WithTx(h.db, func(tx *sql.Tx) error {
		var respondentID int64
		if err := tx.QueryRow(`
			INSERT INTO respondent (first_name, last_name, email, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, page.FirstName, page.LastName, email, now).Scan(&respondentID); err != nil {
			return fmt.Errorf("failed to insert respondent: %w", err)
		}

		for _, q := range questions {
			optID := answers[q.ID]
			if _, err := tx.Exec(`
				INSERT INTO response (respondent_id, question_id, answer_option_id, created_at)
				VALUES ($1, $2, $3, $4)
			`, respondentID, q.ID, optID, now); err != nil {
				return fmt.Errorf("failed to insert response for question %d: %w", q.ID, err)
			}
			if _, err := tx.Exec(`
				INSERT INTO stat (question_id, answer_option_id, counter, percent)
				VALUES ($1, $2, 1, 0)
				ON CONFLICT (question_id, answer_option_id)
				DO UPDATE SET counter = stat.counter + 1
			`, q.ID, optID); err != nil {
				return fmt.Errorf("failed to bump stat for question %d: %w", q.ID, err)
			}
		}

		// One pass refreshes every percentage in the touched table.
		if _, err := tx.Exec(`
			UPDATE stat SET percent = COALESCE(
				ROUND(stat.counter::numeric * 100.0 / NULLIF(t.total, 0), 2), 0)
			FROM (
				SELECT question_id, SUM(counter) AS total
				FROM stat GROUP BY question_id
			) t
			WHERE t.question_id = stat.question_id
		`); err != nil {
			return fmt.Errorf("failed to recompute stat percentages: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to store submission", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}

	slog.Info("survey submitted", "email", email)
	http.Redirect(w, r, "/Anket/Tesekkur", http.StatusSeeOther)
}

// Thanks renders the post-submission page.
func (h *SurveyHandler) Thanks(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "tesekkur", nil)
}

func (h *SurveyHandler) linkActive(code string) (bool, error) {
	var ok bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM survey_link WHERE code = $1 AND active)
	`, code).Scan(&ok)
	return ok, err
}

func newSurveyPage(code string, questions []models.Question, options []models.AnswerOption) surveyPage {
	byQuestion := make(map[int][]models.AnswerOption, len(questions))
	for _, opt := range options {
		byQuestion[opt.QuestionID] = append(byQuestion[opt.QuestionID], opt)
	}
	page := surveyPage{
		Code:      code,
		Errors:    make(map[string]string),
		Questions: make([]surveyQuestion, 0, len(questions)),
	}
	for _, q := range questions {
		page.Questions = append(page.Questions, surveyQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: byQuestion[q.ID],
		})
	}
	return page
}

// loadSurvey returns the seeded questions and options in display order.
func loadSurvey(database *sql.DB) ([]models.Question, []models.AnswerOption, error) {
	rows, err := database.Query(`SELECT id, position, text FROM question ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Position, &q.Text); err != nil {
			return nil, nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read questions: %w", err)
	}

	optRows, err := database.Query(`
		SELECT id, question_id, position, text
		FROM answer_option ORDER BY question_id, position
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load answer options: %w", err)
	}
	defer optRows.Close()

	var options []models.AnswerOption
	for optRows.Next() {
		var opt models.AnswerOption
		if err := optRows.Scan(&opt.ID, &opt.QuestionID, &opt.Position, &opt.Text); err != nil {
			return nil, nil, fmt.Errorf("failed to scan answer option: %w", err)
		}
		options = append(options, opt)
	}
	if err := optRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read answer options: %w", err)
	}

	return questions, options, nil
}
