package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/JonMunkholm/bizdash/internal/tables"
	"github.com/JonMunkholm/bizdash/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// handleDashboard renders the stats overview and a card per listing.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	businesses, err := s.store.Businesses(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var listings []templates.Listing
	for _, def := range tables.All() {
		var total int
		err := s.sessions.WithTable(ctx, sess, def.Key, func(h tables.Handle) error {
			total = h.Model().Controls.Total
			return nil
		})
		if err != nil {
			respondError(w, r, err)
			return
		}
		listings = append(listings, templates.Listing{
			Title:       def.Title,
			Description: def.Description,
			URL:         pageURL(def.Key),
			Rows:        total,
		})
	}

	stats := business.Overview(businesses, s.now())
	renderPage(w, r, "Panel", "/", templates.Dashboard(stats, listings))
}

func (s *Server) handleBusinesses(w http.ResponseWriter, r *http.Request) {
	s.renderListing(w, r, tables.BusinessesKey)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	s.renderListing(w, r, tables.UsersKey)
}

// handleTable renders a listing by key. Background requests get just the
// table fragment.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "table")
	if !isHTMX(r) {
		s.renderListing(w, r, key)
		return
	}

	var model tables.Model
	err := s.sessions.WithTable(r.Context(), sessionFrom(r.Context()), key, func(h tables.Handle) error {
		model = h.Model()
		return nil
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.respondTable(w, r, model)
}

// renderListing reloads the session's table and renders its full page.
// Search, sort, page and selection survive the reload.
func (s *Server) renderListing(w http.ResponseWriter, r *http.Request, key string) {
	ctx := r.Context()

	var (
		model    tables.Model
		params   business.SearchParams
		hasForm  bool
		reloaded = s.now()
	)
	err := s.sessions.WithTable(ctx, sessionFrom(ctx), key, func(h tables.Handle) error {
		if err := h.Refresh(ctx); err != nil {
			return err
		}
		if fs, ok := h.(tables.FormSearcher); ok {
			params, hasForm = fs.SearchParams(), true
		}
		model = h.Model()
		return nil
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	var above []templ.Component
	if key == tables.BusinessesKey {
		businesses, err := s.store.Businesses(ctx)
		if err != nil {
			respondError(w, r, err)
			return
		}
		above = append(above, templates.StatsOverview(business.Overview(businesses, reloaded)))
	}
	if hasForm {
		above = append(above, templates.BusinessManagement(params))
	}

	renderPage(w, r, model.Title, pageURL(key), templates.ListingPage(templ.Join(above...), model))
}

// handleThemeToggle flips the theme cookie and sends the visitor back.
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	next := themeFrom(r).Toggle()
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    string(next),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})

	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, backTo(r, "/"), http.StatusSeeOther)
}

// backTo returns the local path of the Referer, or fallback when the
// Referer is missing or points elsewhere.
func backTo(r *http.Request, fallback string) string {
	ref := r.Referer()
	if ref == "" {
		return fallback
	}
	if i := strings.Index(ref, "://"); i >= 0 {
		rest := ref[i+3:]
		host, path, _ := strings.Cut(rest, "/")
		if host != r.Host {
			return fallback
		}
		ref = "/" + path
	}
	// Browsers read "/\host" like "//host".
	if !strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "//") || strings.HasPrefix(ref, "/\\") {
		return fallback
	}
	return ref
}
