// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the server-side HTML pages from embedded templates.

# Templates

One template per page, named by file:

  - anket: the survey form with per-field validation errors
  - tesekkur: the thank-you page after a successful submission
  - giris: the admin login form
  - yonetim: the admin dashboard (stats, filters, detail listing)
  - hata: standalone error page (invalid link, server errors)

# Usage

	v, err := views.New()
	v.Render(w, http.StatusOK, "anket", page)
	v.RenderError(w, http.StatusNotFound, "Geçersiz anket linki.")

Rendering is buffered: template failures produce a clean 500 instead of a
truncated page.

# Functions

Templates can format values with:

	comma - thousands-separated integers (dashboard headline counters)
	pct   - decimals fixed to two places (percentages, averages)
*/
package views
