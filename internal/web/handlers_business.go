package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/JonMunkholm/bizdash/internal/logging"
	"github.com/JonMunkholm/bizdash/internal/store"
	"github.com/JonMunkholm/bizdash/internal/tables"
)

// handleBusinessSearch applies the "Búsqueda y edición" form to the
// session's business table. "Mostrar todos" clears the criteria.
func (s *Server) handleBusinessSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	searchType, err := business.ParseSearchType(r.FormValue("type"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	params := business.SearchParams{Type: searchType, Criteria: strings.TrimSpace(r.FormValue("criteria"))}
	if r.FormValue("all") != "" {
		params.Criteria = ""
	}

	var model tables.Model
	err = s.sessions.WithTable(ctx, sess, tables.BusinessesKey, func(h tables.Handle) error {
		fs, ok := h.(tables.FormSearcher)
		if !ok {
			return fmt.Errorf("%w: %s has no search form", errInvalidIntent, tables.BusinessesKey)
		}
		if err := fs.ApplySearch(ctx, params); err != nil {
			return err
		}
		model = h.Model()
		if params.Criteria != "" {
			sess.Notify(tables.Notice{
				Level:   tables.LevelInfo,
				Message: fmt.Sprintf("%s negocios encontrados", business.FormatCount(model.Controls.Total)),
			})
		}
		return nil
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.respondTable(w, r, model)
}

// handleBusinessCreate stores a business from the "Crear nuevo" form and
// reloads the session's listing.
func (s *Server) handleBusinessCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	b, err := businessFromForm(r, s.now())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.AddBusiness(ctx, b); err != nil {
		respondError(w, r, err)
		return
	}
	logging.FromContext(ctx).Info("business created", "id", b.ID)

	var model tables.Model
	err = s.sessions.WithTable(ctx, sess, tables.BusinessesKey, func(h tables.Handle) error {
		if err := h.Refresh(ctx); err != nil {
			return err
		}
		sess.Notify(tables.Notice{
			Level:   tables.LevelSuccess,
			Message: fmt.Sprintf("Negocio %s creado", b.Identification),
		})
		model = h.Model()
		return nil
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.respondTable(w, r, model)
}

// businessFromForm reads the create form. Validation of required fields
// is left to the store.
func businessFromForm(r *http.Request, now time.Time) (*business.Business, error) {
	value := 0.0
	if raw := strings.TrimSpace(r.FormValue("value")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q is not a number", store.ErrInvalidBusiness, raw)
		}
		value = v
	}

	status := business.Status(r.FormValue("status"))
	if status == "" {
		status = business.StatusIssued
	}

	return &business.Business{
		Identification: strings.TrimSpace(r.FormValue("identification")),
		User:           business.Agent{Name: strings.TrimSpace(r.FormValue("agent"))},
		Email:          strings.TrimSpace(r.FormValue("email")),
		TermPeriod:     strings.TrimSpace(r.FormValue("term")),
		Date:           now.UTC().Truncate(24 * time.Hour),
		Value:          value,
		Product:        strings.TrimSpace(r.FormValue("product")),
		Status:         status,
	}, nil
}
