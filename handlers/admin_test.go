// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aspilic/itanket/auth"
	"github.com/aspilic/itanket/models"
	"github.com/aspilic/itanket/testutil"
)

func TestLoginForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(db, cfg, testViews(t))

	t.Run("anonymous visitor sees the form", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/Yonetim/Giris", nil)
		w := httptest.NewRecorder()

		handler.LoginForm(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if !strings.Contains(w.Body.String(), "Yönetim Girişi") {
			t.Error("Expected the login form")
		}
	})

	t.Run("signed-in admin skips to the dashboard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/Yonetim/Giris", nil)
		req.AddCookie(testutil.LoginCookie(t, cfg))
		w := httptest.NewRecorder()

		handler.LoginForm(w, req)

		testutil.AssertRedirect(t, w, http.StatusFound, "/Yonetim")
	})
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(db, cfg, testViews(t))
	testutil.CreateTestAdmin(t, db, cfg, "admin", "correct-password")

	login := func(username, password string) *httptest.ResponseRecorder {
		form := url.Values{}
		form.Set("kullanici", username)
		form.Set("parola", password)
		req := testutil.FormRequest(t, "/Yonetim/Giris", form)
		w := httptest.NewRecorder()
		handler.Login(w, req)
		return w
	}

	t.Run("valid credentials issue a session", func(t *testing.T) {
		w := login("admin", "correct-password")

		testutil.AssertRedirect(t, w, http.StatusSeeOther, "/Yonetim")

		var sessionValue string
		for _, c := range w.Result().Cookies() {
			if c.Name == auth.SessionCookie {
				sessionValue = c.Value
			}
		}
		if sessionValue == "" {
			t.Fatal("Expected a session cookie")
		}
		claims, err := auth.ParseSession([]byte(cfg.SessionSecret), sessionValue)
		if err != nil {
			t.Fatalf("Expected a valid session token: %v", err)
		}
		if claims.Username != "admin" || claims.Role != auth.RoleAdmin {
			t.Errorf("Unexpected claims: %+v", claims)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := login("admin", "wrong-password")

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
		if !strings.Contains(w.Body.String(), "Kullanıcı adı veya parola hatalı.") {
			t.Error("Expected the generic login error")
		}
	})

	t.Run("unknown username gets the same message", func(t *testing.T) {
		w := login("nobody", "correct-password")

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
		if !strings.Contains(w.Body.String(), "Kullanıcı adı veya parola hatalı.") {
			t.Error("Expected the generic login error")
		}
	})

	t.Run("missing csrf token is forbidden", func(t *testing.T) {
		form := url.Values{}
		form.Set("kullanici", "admin")
		form.Set("parola", "correct-password")
		req := httptest.NewRequest(http.MethodPost, "/Yonetim/Giris", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()

		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}

func TestLogout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(db, cfg, testViews(t))

	req := httptest.NewRequest("GET", "/Yonetim/Cikis", nil)
	req.AddCookie(testutil.LoginCookie(t, cfg))
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	testutil.AssertRedirect(t, w, http.StatusFound, "/Yonetim/Giris")

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Expected the session cookie to be cleared")
	}
}

func TestDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(db, cfg, testViews(t))

	now := time.Now().UTC()
	testutil.InsertTestSubmission(t, db, "Ayşe", "Yılmaz", "ayse@example.com", now.AddDate(0, 0, -1), testutil.FullAnswers(1))
	testutil.InsertTestSubmission(t, db, "Ali", "Kaya", "ali@example.com", now.AddDate(0, 0, -2), testutil.FullAnswers(2))
	testutil.InsertTestSubmission(t, db, "Ece", "Demir", "ece@example.com", now.AddDate(0, 0, -10), testutil.FullAnswers(5))

	req := httptest.NewRequest("GET", "/Yonetim", nil)
	w := httptest.NewRecorder()

	handler.Dashboard(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()

	// headline counts: 3 total, 2 inside the last week
	if !strings.Contains(body, `<div class="num">3</div>`) {
		t.Error("Expected total respondent count of 3")
	}
	if !strings.Contains(body, `<div class="num">2</div>`) {
		t.Error("Expected last-7-days count of 2")
	}

	// answer listing shows the respondents
	if !strings.Contains(body, "ayse@example.com") || !strings.Contains(body, "ece@example.com") {
		t.Error("Expected respondent emails in the detail listing")
	}

	// the pooled distribution carries all five labels
	for _, label := range []string{"Çok memnunum", "Memnunum", "Kararsızım", "Memnun değilim", "Hiç memnun değilim"} {
		if !strings.Contains(body, label) {
			t.Errorf("Expected label %q in the distribution", label)
		}
	}
}

func TestDashboard_Notice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(db, cfg, testViews(t))

	req := httptest.NewRequest("GET", "/Yonetim?mesaj="+url.QueryEscape("Test mesajı"), nil)
	w := httptest.NewRecorder()

	handler.Dashboard(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "Test mesajı") {
		t.Error("Expected the notice banner")
	}
}

func TestQueryDetails_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	testutil.InsertTestSubmission(t, db, "Ayşe", "Yılmaz", "ayse@example.com", now.AddDate(0, 0, -1), testutil.FullAnswers(3))
	testutil.InsertTestSubmission(t, db, "Ali", "Kaya", "ali@firma.com", now.AddDate(0, 0, -20), testutil.FullAnswers(1))

	t.Run("no filter returns everything", func(t *testing.T) {
		rows, err := queryDetails(db, models.Filter{}, true, 0)
		if err != nil {
			t.Fatalf("queryDetails failed: %v", err)
		}
		if len(rows) != 20 {
			t.Errorf("Expected 20 rows, got %d", len(rows))
		}
	})

	t.Run("email filter is a case-insensitive substring", func(t *testing.T) {
		rows, err := queryDetails(db, models.Filter{Email: "AYSE"}, true, 0)
		if err != nil {
			t.Fatalf("queryDetails failed: %v", err)
		}
		if len(rows) != 10 {
			t.Errorf("Expected 10 rows, got %d", len(rows))
		}
		for _, r := range rows {
			if r.Email != "ayse@example.com" {
				t.Errorf("Unexpected row for %s", r.Email)
			}
		}
	})

	t.Run("first name filter is case-sensitive", func(t *testing.T) {
		rows, err := queryDetails(db, models.Filter{FirstName: "Ali"}, true, 0)
		if err != nil {
			t.Fatalf("queryDetails failed: %v", err)
		}
		if len(rows) != 10 {
			t.Errorf("Expected 10 rows for 'Ali', got %d", len(rows))
		}

		rows, err = queryDetails(db, models.Filter{FirstName: "ali"}, true, 0)
		if err != nil {
			t.Fatalf("queryDetails failed: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("Expected 0 rows for lowercase 'ali', got %d", len(rows))
		}
	})

	t.Run("date range brackets inclusively", func(t *testing.T) {
		start := now.AddDate(0, 0, -2)
		end := now
		rows, err := queryDetails(db, models.Filter{Start: &start, End: &end}, true, 0)
		if err != nil {
			t.Fatalf("queryDetails failed: %v", err)
		}
		if len(rows) != 10 {
			t.Errorf("Expected only the recent submission, got %d rows", len(rows))
		}
	})

	t.Run("question filter", func(t *testing.T) {
		rows, err := queryDetails(db, models.Filter{QuestionID: 4}, true, 0)
		if err != nil {
			t.Fatalf("queryDetails failed: %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("Expected one row per respondent for question 4, got %d", len(rows))
		}
		for _, r := range rows {
			if r.QuestionID != 4 {
				t.Errorf("Unexpected question %d", r.QuestionID)
			}
		}
	})

	t.Run("option filter matches by text across questions", func(t *testing.T) {
		// option 13 is "Kararsızım"; the same text appears at position 3
		// of questions 1, 2, 3, 6, 9 and 10. Ayşe answered position 3
		// everywhere, so she matches on exactly those six questions.
		rows, err := queryDetails(db, models.Filter{OptionID: 13}, true, 0)
		if err != nil {
			t.Fatalf("queryDetails failed: %v", err)
		}
		if len(rows) != 6 {
			t.Errorf("Expected 6 rows, got %d", len(rows))
		}
		for _, r := range rows {
			if r.Option != "Kararsızım" {
				t.Errorf("Unexpected option %q", r.Option)
			}
		}
	})

	t.Run("limit keeps the newest rows", func(t *testing.T) {
		rows, err := queryDetails(db, models.Filter{}, true, 5)
		if err != nil {
			t.Fatalf("queryDetails failed: %v", err)
		}
		if len(rows) != 5 {
			t.Fatalf("Expected 5 rows, got %d", len(rows))
		}
		for _, r := range rows {
			if r.Email != "ayse@example.com" {
				t.Errorf("Expected only the newest submission's rows, got %s", r.Email)
			}
		}
	})

	t.Run("oldest-first ordering for the export", func(t *testing.T) {
		rows, err := queryDetails(db, models.Filter{}, false, 0)
		if err != nil {
			t.Fatalf("queryDetails failed: %v", err)
		}
		if len(rows) != 20 {
			t.Fatalf("Expected 20 rows, got %d", len(rows))
		}
		if rows[0].Email != "ali@firma.com" {
			t.Errorf("Expected the oldest submission first, got %s", rows[0].Email)
		}
		if rows[19].Email != "ayse@example.com" {
			t.Errorf("Expected the newest submission last, got %s", rows[19].Email)
		}
	})
}

func TestParseFilter(t *testing.T) {
	req := httptest.NewRequest("GET",
		"/Yonetim?baslangic=2026-01-01&bitis=2026-01-31&isim=Ay&soyisim=Y%C4%B1l&mail=example&soruId=4&secenekId=42", nil)

	f := parseFilter(req)

	if f.Start == nil || f.Start.Format("2006-01-02") != "2026-01-01" {
		t.Errorf("Unexpected start: %v", f.Start)
	}
	if f.End == nil || f.End.Format("2006-01-02") != "2026-01-31" {
		t.Errorf("Unexpected end: %v", f.End)
	}
	if f.FirstName != "Ay" || f.LastName != "Yıl" || f.Email != "example" {
		t.Errorf("Unexpected name/email filters: %+v", f)
	}
	if f.QuestionID != 4 || f.OptionID != 42 {
		t.Errorf("Unexpected ID filters: %+v", f)
	}

	empty := parseFilter(httptest.NewRequest("GET", "/Yonetim?baslangic=garbage&soruId=abc", nil))
	if empty.Start != nil || empty.QuestionID != 0 {
		t.Errorf("Expected unparseable filters to stay unset: %+v", empty)
	}
}

func TestPurge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(db, cfg, testViews(t))

	testutil.InsertTestSubmission(t, db, "Ayşe", "Yılmaz", "ayse@example.com", time.Now().UTC(), testutil.FullAnswers(1))
	if _, err := db.Exec(`UPDATE stat SET counter = 5, percent = 50 WHERE question_id = 1`); err != nil {
		t.Fatalf("Failed to prime stats: %v", err)
	}

	req := testutil.FormRequest(t, "/Yonetim/Temizle", url.Values{})
	w := httptest.NewRecorder()

	handler.Purge(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/Yonetim?mesaj=") {
		t.Errorf("Expected redirect with a notice, got '%s'", loc)
	}

	var respondents, responses int
	if err := db.QueryRow(`SELECT COUNT(*) FROM respondent`).Scan(&respondents); err != nil {
		t.Fatalf("Failed to count respondents: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM response`).Scan(&responses); err != nil {
		t.Fatalf("Failed to count responses: %v", err)
	}
	if respondents != 0 || responses != 0 {
		t.Errorf("Expected all submissions gone, got %d respondents / %d responses", respondents, responses)
	}

	var dirty int
	if err := db.QueryRow(`SELECT COUNT(*) FROM stat WHERE counter <> 0 OR percent <> 0`).Scan(&dirty); err != nil {
		t.Fatalf("Failed to check stats: %v", err)
	}
	if dirty != 0 {
		t.Errorf("Expected all stats zeroed, %d rows still dirty", dirty)
	}

	// seed data survives
	var questions int
	if err := db.QueryRow(`SELECT COUNT(*) FROM question`).Scan(&questions); err != nil {
		t.Fatalf("Failed to count questions: %v", err)
	}
	if questions != 10 {
		t.Errorf("Expected the 10 seeded questions to survive, got %d", questions)
	}
}

func TestPurge_CSRFRequired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(db, cfg, testViews(t))

	testutil.InsertTestSubmission(t, db, "Ayşe", "Yılmaz", "ayse@example.com", time.Now().UTC(), testutil.FullAnswers(1))

	req := httptest.NewRequest(http.MethodPost, "/Yonetim/Temizle", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	handler.Purge(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM respondent`).Scan(&count); err != nil {
		t.Fatalf("Failed to count respondents: %v", err)
	}
	if count != 1 {
		t.Error("Expected data to survive a csrf-less purge attempt")
	}
}
