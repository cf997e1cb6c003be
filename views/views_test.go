// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aspilic/itanket/models"
)

func newViews(t *testing.T) *Views {
	t.Helper()
	v, err := New()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	return v
}

func TestRender_Tesekkur(t *testing.T) {
	v := newViews(t)
	w := httptest.NewRecorder()

	v.Render(w, http.StatusOK, "tesekkur", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Unexpected content type '%s'", ct)
	}
	if !strings.Contains(w.Body.String(), "Teşekkürler") {
		t.Error("Expected the thank-you page content")
	}
}

func TestRender_Giris(t *testing.T) {
	v := newViews(t)
	w := httptest.NewRecorder()

	data := struct {
		CSRF     string
		Username string
		Error    string
	}{CSRF: "tok", Username: "admin", Error: "Kullanıcı adı veya parola hatalı."}

	v.Render(w, http.StatusUnauthorized, "giris", data)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `value="admin"`) {
		t.Error("Expected the username to round-trip")
	}
	if !strings.Contains(body, "Kullanıcı adı veya parola hatalı.") {
		t.Error("Expected the error message")
	}
	if !strings.Contains(body, `value="tok"`) {
		t.Error("Expected the csrf token in the hidden field")
	}
}

func TestRender_Anket(t *testing.T) {
	v := newViews(t)
	w := httptest.NewRecorder()

	type question struct {
		ID       int
		Text     string
		Options  []models.AnswerOption
		Selected int
		Error    string
	}
	data := struct {
		Code      string
		CSRF      string
		FirstName string
		LastName  string
		Email     string
		Errors    map[string]string
		Questions []question
	}{
		Code:      "ABCD1234",
		CSRF:      "tok",
		FirstName: "Ayşe",
		Errors:    map[string]string{"mail": "E-posta alanı zorunludur."},
		Questions: []question{
			{
				ID:   1,
				Text: "1- Örnek soru",
				Options: []models.AnswerOption{
					{ID: 11, QuestionID: 1, Position: 1, Text: "Çok memnunum"},
					{ID: 12, QuestionID: 1, Position: 2, Text: "Memnunum"},
				},
				Selected: 12,
				Error:    "Lütfen bir seçenek seçiniz.",
			},
		},
	}

	v.Render(w, http.StatusOK, "anket", data)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `action="/Anket/ABCD1234"`) {
		t.Error("Expected the form to post back to the link")
	}
	if !strings.Contains(body, "E-posta alanı zorunludur.") {
		t.Error("Expected the field error")
	}
	if !strings.Contains(body, `value="12" checked`) {
		t.Error("Expected the selected option to be checked")
	}
	if !strings.Contains(body, "Lütfen bir seçenek seçiniz.") {
		t.Error("Expected the per-question error")
	}
}

func TestRender_Yonetim(t *testing.T) {
	v := newViews(t)
	w := httptest.NewRecorder()

	dash := models.Dashboard{
		TotalRespondents: 1234567,
		Last7Days:        42,
		Overall: []models.LabelCount{
			{Label: "Çok memnunum", Count: 10, Percent: decimal.RequireFromString("62.50")},
		},
		Averages: []models.QuestionAverage{
			{QuestionID: 1, Text: "1- Örnek soru", Average: decimal.RequireFromString("4.25")},
		},
		Notice: "Tüm anket verileri silindi ve istatistikler sıfırlandı.",
		CSRF:   "tok",
	}

	v.Render(w, http.StatusOK, "yonetim", dash)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "1,234,567") {
		t.Error("Expected the headline count to be comma-formatted")
	}
	if !strings.Contains(body, "62.50") {
		t.Error("Expected the distribution percentage")
	}
	if !strings.Contains(body, "4.25") {
		t.Error("Expected the question average")
	}
	if !strings.Contains(body, "Tüm anket verileri silindi") {
		t.Error("Expected the notice banner")
	}
	if !strings.Contains(body, "Kayıt bulunamadı.") {
		t.Error("Expected the empty-listing placeholder")
	}
}

func TestRenderError(t *testing.T) {
	v := newViews(t)
	w := httptest.NewRecorder()

	v.RenderError(w, http.StatusNotFound, "Geçersiz anket linki.")

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Geçersiz anket linki.") {
		t.Error("Expected the error message")
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	v := newViews(t)
	w := httptest.NewRecorder()

	v.Render(w, http.StatusOK, "yok-boyle-bir-sayfa", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500 for an unknown template, got %d", w.Code)
	}
}
