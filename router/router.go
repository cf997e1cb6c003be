// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/aspilic/itanket/cliparse"
	"github.com/aspilic/itanket/handlers"
	"github.com/aspilic/itanket/middleware"
	"github.com/aspilic/itanket/views"
)

// New creates the application router with all routes configured.
func New(database *sql.DB, cfg cliparse.Config, v *views.Views) http.Handler {
	survey := handlers.NewSurveyHandler(database, cfg, v)
	admin := handlers.NewAdminHandler(database, cfg, v)
	export := handlers.NewExportHandler(database, cfg, v)
	secret := []byte(cfg.SessionSecret)

	mux := http.NewServeMux()

	// Public survey routes. /Anket/Tesekkur wins over /Anket/{kod} because
	// literal segments take precedence over wildcards.
	mux.HandleFunc("GET /{$}", middleware.WithLogging(survey.Entry))
	mux.HandleFunc("GET /Anket", middleware.WithLogging(survey.Entry))
	mux.HandleFunc("GET /Anket/Index", middleware.WithLogging(survey.Entry))
	mux.HandleFunc("GET /Anket/Tesekkur", middleware.WithLogging(survey.Thanks))
	mux.HandleFunc("GET /Anket/{kod}", middleware.WithLogging(survey.ShowForm))
	mux.HandleFunc("POST /Anket/{kod}", middleware.WithLogging(survey.Submit))

	// Admin routes. Everything except the login pair requires a session.
	mux.HandleFunc("GET /Yonetim/Giris", middleware.WithLogging(admin.LoginForm))
	mux.HandleFunc("POST /Yonetim/Giris", middleware.WithLogging(admin.Login))
	mux.HandleFunc("GET /Yonetim/Cikis", middleware.WithLogging(middleware.RequireAdmin(secret, admin.Logout)))
	mux.HandleFunc("GET /Yonetim", middleware.WithLogging(middleware.RequireAdmin(secret, admin.Dashboard)))
	mux.HandleFunc("POST /Yonetim/Temizle", middleware.WithLogging(middleware.RequireAdmin(secret, admin.Purge)))
	mux.HandleFunc("GET /Yonetim/Excel", middleware.WithLogging(middleware.RequireAdmin(secret, export.Excel)))

	return mux
}
