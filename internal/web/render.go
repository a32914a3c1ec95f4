package web

import (
	"bytes"
	"net/http"

	"github.com/JonMunkholm/bizdash/internal/logging"
	"github.com/JonMunkholm/bizdash/internal/tables"
	"github.com/JonMunkholm/bizdash/internal/web/templates"
	"github.com/a-h/templ"
)

const themeCookie = "theme"

// render buffers c so a failed render never leaves a half-written page.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		logging.FromContext(r.Context()).Error("render error", "path", r.URL.Path, "error", err)
		http.Error(w, defaultMessage.Message+" ("+defaultMessage.Code+")", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logWriteAborted(r, err)
	}
}

// renderPage wraps body in the layout. Pending session notices are shown
// as toasts.
func renderPage(w http.ResponseWriter, r *http.Request, title, active string, body templ.Component) {
	page := templates.Page{
		Title: title,
		Theme: themeFrom(r),
		Nav:   navItems(active),
	}
	if sess := sessionFrom(r.Context()); sess != nil {
		page.Notices = sess.DrainNotices()
	}
	render(w, r, http.StatusOK, templates.Layout(page, body))
}

func themeFrom(r *http.Request) templates.Theme {
	if c, err := r.Cookie(themeCookie); err == nil && templates.Theme(c.Value) == templates.ThemeDark {
		return templates.ThemeDark
	}
	return templates.ThemeLight
}

// navItems lists the home page and every registered listing.
func navItems(active string) []templates.NavItem {
	items := []templates.NavItem{{Title: "Inicio", URL: "/", Active: active == "/"}}
	for _, def := range tables.All() {
		url := pageURL(def.Key)
		items = append(items, templates.NavItem{Title: def.Title, URL: url, Active: url == active})
	}
	return items
}

// pageURL is the full page of a listing. Listings without a dedicated
// page use the generic table page.
func pageURL(key string) string {
	switch key {
	case tables.BusinessesKey:
		return "/negocios"
	case tables.UsersKey:
		return "/usuarios"
	}
	return tables.Path(key)
}

func logWriteAborted(r *http.Request, err error) {
	logging.FromContext(r.Context()).Debug("write aborted", "path", r.URL.Path, "error", err)
}
