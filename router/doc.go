// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes to their handlers.

# Routes

Public:

	GET  /{$}            redirect to the active survey link
	GET  /Anket          same
	GET  /Anket/Index    same
	GET  /Anket/Tesekkur thank-you page
	GET  /Anket/{kod}    survey form
	POST /Anket/{kod}    survey submission

Admin (session required except the login pair):

	GET  /Yonetim/Giris   login form
	POST /Yonetim/Giris   login
	GET  /Yonetim/Cikis   logout
	GET  /Yonetim         reporting dashboard
	POST /Yonetim/Temizle purge all submissions
	GET  /Yonetim/Excel   two-sheet Excel report

All routes use Go 1.22 method-and-wildcard patterns on the standard
http.ServeMux and are wrapped with request logging.
*/
package router
