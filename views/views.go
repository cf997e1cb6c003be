// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.tmpl
var files embed.FS

// Views renders the embedded server-side pages.
type Views struct {
	t *template.Template
}

// New parses all embedded templates.
func New() (*Views, error) {
	funcs := template.FuncMap{
		"comma": func(n int64) string { return humanize.Comma(n) },
		"pct":   func(d decimal.Decimal) string { return d.StringFixed(2) },
	}
	t, err := template.New("views").Funcs(funcs).ParseFS(files, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Views{t: t}, nil
}

// Render executes the named template. The page is buffered so a template
// error can never leave a half-written body with a success status.
func (v *Views) Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := v.t.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Beklenmeyen bir hata oluştu.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "template", name, "error", err)
	}
}

// RenderError shows the standalone error page with a message.
func (v *Views) RenderError(w http.ResponseWriter, status int, message string) {
	v.Render(w, status, "hata", struct{ Message string }{Message: message})
}
