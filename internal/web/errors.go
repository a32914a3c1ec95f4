package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with its technical detail and the request and
// session IDs, then answered with the mapped UserMessage in the format
// the client expects: an alert fragment plus an error toast for
// background (HX-Request) submissions, JSON for API clients, and a full
// error page otherwise.

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/bizdash/internal/logging"
	"github.com/JonMunkholm/bizdash/internal/tables"
	"github.com/JonMunkholm/bizdash/internal/web/templates"
)

// ErrorResponse is the JSON body of API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes the matching user message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := MapError(err)

	level := slog.LevelWarn
	if msg.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", msg.Status,
		"error", err.Error(),
		"code", msg.Code,
	)

	switch {
	case isHTMX(r):
		renderErrorPartial(w, r, msg)
	case wantsJSON(r):
		respondErrorJSON(w, msg)
	default:
		respondErrorHTML(w, r, msg)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg UserMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(msg.Status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// respondErrorHTML renders the error inside the page layout.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg UserMessage) {
	page := templates.Page{Title: "Error", Theme: themeFrom(r), Nav: navItems("")}
	render(w, r, msg.Status, templates.Layout(page, templates.ErrorPage(msg.Message, msg.Action, msg.Code)))
}

// renderErrorPartial answers a background submission. The toast carries
// the message; the target element is left in place by static/app.js.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, msg UserMessage) {
	setToasts(w, []tables.Notice{{
		Level:   tables.LevelError,
		Message: msg.Message + " (" + msg.Code + ")",
	}})
	render(w, r, msg.Status, templates.ErrorAlert(msg.Message, msg.Action, msg.Code))
}

// isHTMX checks if the request is a background submission from app.js.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
