package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/bizdash/internal/session"
	"github.com/JonMunkholm/bizdash/internal/tables"
	"github.com/JonMunkholm/bizdash/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// intent applies one user action to the session's table. It runs with
// the session locked.
type intent func(r *http.Request, sess *session.Session, h tables.Handle) error

// tableIntent adapts an intent to a handler. Background submissions get
// the re-rendered table fragment; plain form posts are redirected back to
// the listing page.
func (s *Server) tableIntent(apply intent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "table")
		sess := sessionFrom(r.Context())

		var model tables.Model
		err := s.sessions.WithTable(r.Context(), sess, key, func(h tables.Handle) error {
			if err := apply(r, sess, h); err != nil {
				return err
			}
			model = h.Model()
			return nil
		})
		if err != nil {
			respondError(w, r, err)
			return
		}
		s.respondTable(w, r, model)
	}
}

// respondTable writes the table fragment with pending notices as toasts,
// or redirects plain requests to the listing page.
func (s *Server) respondTable(w http.ResponseWriter, r *http.Request, model tables.Model) {
	if !isHTMX(r) {
		http.Redirect(w, r, pageURL(model.Key), http.StatusSeeOther)
		return
	}
	if sess := sessionFrom(r.Context()); sess != nil {
		setToasts(w, sess.DrainNotices())
	}
	render(w, r, http.StatusOK, templates.Table(model))
}

func searchIntent(r *http.Request, _ *session.Session, h tables.Handle) error {
	h.Search(r.FormValue("q"))
	return nil
}

func sortIntent(r *http.Request, _ *session.Session, h tables.Handle) error {
	h.Sort(chi.URLParam(r, "column"))
	return nil
}

func pageIntent(r *http.Request, _ *session.Session, h tables.Handle) error {
	n, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		return fmt.Errorf("%w: page %q", errInvalidIntent, chi.URLParam(r, "page"))
	}
	h.SetPage(n)
	return nil
}

// pageSizeIntent takes the size from the path or the "size" form field.
func pageSizeIntent(r *http.Request, _ *session.Session, h tables.Handle) error {
	raw := chi.URLParam(r, "size")
	if raw == "" {
		raw = r.FormValue("size")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !h.SetPageSize(n) {
		return fmt.Errorf("%w: page size %q", errInvalidIntent, raw)
	}
	return nil
}

// selectIntent toggles one row. A row that has gone away since the page
// was rendered is reported, not treated as an error.
func selectIntent(r *http.Request, sess *session.Session, h tables.Handle) error {
	if !h.ToggleRow(chi.URLParam(r, "row")) {
		sess.Notify(tables.Notice{Level: tables.LevelError, Message: "La fila ya no está disponible"})
	}
	return nil
}

func selectAllIntent(_ *http.Request, _ *session.Session, h tables.Handle) error {
	h.ToggleSelectAll()
	return nil
}

func clearSelectionIntent(_ *http.Request, _ *session.Session, h tables.Handle) error {
	h.ClearSelection()
	return nil
}

func columnIntent(r *http.Request, _ *session.Session, h tables.Handle) error {
	if !h.ToggleColumn(chi.URLParam(r, "column")) {
		return fmt.Errorf("%w: column %q", errInvalidIntent, chi.URLParam(r, "column"))
	}
	return nil
}

func clickIntent(r *http.Request, sess *session.Session, h tables.Handle) error {
	if !h.ClickRow(chi.URLParam(r, "row")) {
		sess.Notify(tables.Notice{Level: tables.LevelError, Message: "La fila ya no está disponible"})
	}
	return nil
}

func refreshIntent(r *http.Request, _ *session.Session, h tables.Handle) error {
	return h.Refresh(r.Context())
}

// handleExport downloads the session's filtered and sorted rows as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "table")

	var buf bytes.Buffer
	err := s.sessions.WithTable(r.Context(), sessionFrom(r.Context()), key, func(h tables.Handle) error {
		return h.Export(&buf)
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", key, s.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		logWriteAborted(r, err)
	}
}
