// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aspilic/itanket/auth"
	"github.com/aspilic/itanket/cliparse"
	"github.com/aspilic/itanket/db"
	"github.com/aspilic/itanket/middleware"
	"github.com/aspilic/itanket/models"
	"github.com/aspilic/itanket/views"
)

// detailLimit caps the dashboard's answer listing. The Excel export has no
// cap; anything beyond this belongs in the spreadsheet, not the browser.
const detailLimit = 1000

// AdminHandler serves the /Yonetim routes: login, the dashboard and the
// purge action.
type AdminHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	views *views.Views
}

func NewAdminHandler(database *sql.DB, cfg cliparse.Config, v *views.Views) *AdminHandler {
	return &AdminHandler{db: database, cfg: cfg, views: v}
}

type loginPage struct {
	CSRF     string
	Username string
	Error    string
}

// LoginForm renders the login page, skipping straight to the dashboard for
// an already-authenticated admin.
func (h *AdminHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(auth.SessionCookie); err == nil {
		if claims, err := auth.ParseSession([]byte(h.cfg.SessionSecret), c.Value); err == nil && claims.Role == auth.RoleAdmin {
			http.Redirect(w, r, "/Yonetim", http.StatusFound)
			return
		}
	}
	h.views.Render(w, http.StatusOK, "giris", loginPage{
		CSRF: middleware.EnsureCSRFCookie(w, r),
	})
}

// Login verifies the credentials and issues the session cookie. Wrong
// username and wrong password produce the same message.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || !middleware.ValidCSRF(r) {
		h.views.RenderError(w, http.StatusForbidden, "Geçersiz istek. Lütfen sayfayı yenileyip tekrar deneyin.")
		return
	}

	username := strings.TrimSpace(r.FormValue("kullanici"))
	password := r.FormValue("parola")

	page := loginPage{
		CSRF:     middleware.EnsureCSRFCookie(w, r),
		Username: username,
	}

	var u models.AdminUser
	err := h.db.QueryRow(`
		SELECT id, username, password_hash, password_salt, iteration_count
		FROM admin_user WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.PasswordSalt, &u.IterationCount)
	if err == sql.ErrNoRows {
		page.Error = "Kullanıcı adı veya parola hatalı."
		h.views.Render(w, http.StatusUnauthorized, "giris", page)
		return
	}
	if err != nil {
		slog.Error("failed to load admin user", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}

	if !auth.VerifyPassword(password, u.PasswordHash, u.PasswordSalt, u.IterationCount) {
		slog.Warn("failed login attempt", "username", username, "remote", middleware.GetClientIP(r))
		page.Error = "Kullanıcı adı veya parola hatalı."
		h.views.Render(w, http.StatusUnauthorized, "giris", page)
		return
	}

	ttl := time.Duration(h.cfg.SessionHours) * time.Hour
	token, err := auth.SignSession([]byte(h.cfg.SessionSecret), u.Username, ttl)
	if err != nil {
		slog.Error("failed to sign session", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}
	http.SetCookie(w, auth.SessionCookieFor(token, ttl))
	slog.Info("admin logged in", "username", u.Username)
	http.Redirect(w, r, "/Yonetim", http.StatusSeeOther)
}

// Logout clears the session cookie.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredSessionCookie())
	http.Redirect(w, r, "/Yonetim/Giris", http.StatusFound)
}

// Dashboard renders the reporting page: headline counts, per-question
// breakdowns, the pooled distribution, averages and the filtered answer
// listing. Aggregates are computed fresh from response rows; the stat
// table only backs the Excel export's summary sheet.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	questions, options, err := loadSurvey(h.db)
	if err != nil {
		slog.Error("failed to load survey", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}

	dash := models.Dashboard{
		Filter:     filter,
		Questions:  questions,
		Options:    options,
		Notice:     r.URL.Query().Get("mesaj"),
		CSRF:       middleware.EnsureCSRFCookie(w, r),
		ExcelQuery: r.URL.RawQuery,
	}

	if err := h.db.QueryRow(`SELECT COUNT(*) FROM respondent`).Scan(&dash.TotalRespondents); err != nil {
		slog.Error("failed to count respondents", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	if err := h.db.QueryRow(`
		SELECT COUNT(*) FROM respondent WHERE created_at >= $1
	`, weekAgo).Scan(&dash.Last7Days); err != nil {
		slog.Error("failed to count recent respondents", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}

	counts, err := answerCounts(h.db)
	if err != nil {
		slog.Error("failed to count answers", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}
	dash.QuestionStats = BuildQuestionStats(questions, options, counts)
	dash.Overall = OverallDistribution(options, counts)
	dash.Averages = QuestionAverages(questions, options, counts)

	dash.Details, err = queryDetails(h.db, filter, true, detailLimit)
	if err != nil {
		slog.Error("failed to load answer details", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}

	h.views.Render(w, http.StatusOK, "yonetim", dash)
}

// Purge deletes all submissions and zeroes the stat counters. Seed data
// (questions, options, links, admin users) survives.
func (h *AdminHandler) Purge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || !middleware.ValidCSRF(r) {
		h.views.RenderError(w, http.StatusForbidden, "Geçersiz istek. Lütfen sayfayı yenileyip tekrar deneyin.")
		return
	}

	err := db.WithTx(h.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM response`); err != nil {
			return fmt.Errorf("failed to delete responses: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM respondent`); err != nil {
			return fmt.Errorf("failed to delete respondents: %w", err)
		}
		if _, err := tx.Exec(`UPDATE stat SET counter = 0, percent = 0`); err != nil {
			return fmt.Errorf("failed to reset stats: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to purge survey data", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}

	slog.Info("survey data purged")
	notice := url.QueryEscape("Tüm anket verileri silindi ve istatistikler sıfırlandı.")
	http.Redirect(w, r, "/Yonetim?mesaj="+notice, http.StatusSeeOther)
}

// parseFilter reads the optional dashboard filters from the query string.
// Unparseable values are treated as unset.
func parseFilter(r *http.Request) models.Filter {
	q := r.URL.Query()
	var f models.Filter

	if t, err := time.Parse("2006-01-02", q.Get("baslangic")); err == nil {
		f.Start = &t
	}
	if t, err := time.Parse("2006-01-02", q.Get("bitis")); err == nil {
		f.End = &t
	}
	f.FirstName = strings.TrimSpace(q.Get("isim"))
	f.LastName = strings.TrimSpace(q.Get("soyisim"))
	f.Email = strings.TrimSpace(q.Get("mail"))
	if id, err := strconv.Atoi(q.Get("soruId")); err == nil && id > 0 {
		f.QuestionID = id
	}
	if id, err := strconv.Atoi(q.Get("secenekId")); err == nil && id > 0 {
		f.OptionID = id
	}
	return f
}

// answerCounts returns the number of responses per option, computed fresh
// from response rows.
func answerCounts(database *sql.DB) (map[int]int64, error) {
	rows, err := database.Query(`
		SELECT answer_option_id, COUNT(*) FROM response GROUP BY answer_option_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count answers: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var optID int
		var n int64
		if err := rows.Scan(&optID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan answer count: %w", err)
		}
		counts[optID] = n
	}
	return counts, rows.Err()
}

// queryDetails runs the filtered answer listing. The dashboard wants the
// newest rows capped at a limit; the export wants everything oldest-first.
// The option filter matches by the option's text, not its ID, so picking
// "Memnunum" finds that answer under every question that offers it.
func queryDetails(database *sql.DB, f models.Filter, newestFirst bool, limit int) ([]models.DetailRow, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT r.created_at, p.first_name, p.last_name, p.email, q.id, q.text, o.text
		FROM response r
		JOIN respondent p ON p.id = r.respondent_id
		JOIN question q ON q.id = r.question_id
		JOIN answer_option o ON o.id = r.answer_option_id
	`)

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Start != nil {
		conds = append(conds, "r.created_at >= "+arg(*f.Start))
	}
	if f.End != nil {
		// inclusive end date: anything before the next midnight
		conds = append(conds, "r.created_at < "+arg(f.End.AddDate(0, 0, 1)))
	}
	if f.FirstName != "" {
		conds = append(conds, "p.first_name LIKE "+arg("%"+f.FirstName+"%"))
	}
	if f.LastName != "" {
		conds = append(conds, "p.last_name LIKE "+arg("%"+f.LastName+"%"))
	}
	if f.Email != "" {
		conds = append(conds, "p.email ILIKE "+arg("%"+f.Email+"%"))
	}
	if f.QuestionID != 0 {
		conds = append(conds, "q.id = "+arg(f.QuestionID))
	}
	if f.OptionID != 0 {
		conds = append(conds, "o.text = (SELECT text FROM answer_option WHERE id = "+arg(f.OptionID)+")")
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	if newestFirst {
		sb.WriteString(" ORDER BY r.created_at DESC, r.id DESC")
	} else {
		sb.WriteString(" ORDER BY r.created_at ASC, r.id ASC")
	}
	if limit > 0 {
		sb.WriteString(" LIMIT " + arg(limit))
	}

	rows, err := database.Query(sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query answer details: %w", err)
	}
	defer rows.Close()

	var details []models.DetailRow
	for rows.Next() {
		var d models.DetailRow
		if err := rows.Scan(&d.Date, &d.FirstName, &d.LastName, &d.Email, &d.QuestionID, &d.Question, &d.Option); err != nil {
			return nil, fmt.Errorf("failed to scan answer detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
