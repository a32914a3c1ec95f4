package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/JonMunkholm/bizdash/internal/datatable"
	"github.com/JonMunkholm/bizdash/internal/tables"
	"github.com/go-chi/chi/v5"
)

// TableInfo describes a registered listing.
type TableInfo struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// TableView is one page of a listing as export text.
type TableView struct {
	Key           string              `json:"key"`
	Title         string              `json:"title"`
	Columns       []string            `json:"columns"`
	Records       []map[string]string `json:"records"`
	Search        string              `json:"search,omitempty"`
	Sort          string              `json:"sort,omitempty"`
	Dir           string              `json:"dir"`
	Page          int                 `json:"page"`
	PageSize      int                 `json:"page_size"`
	TotalPages    int                 `json:"total_pages"`
	FilteredCount int                 `json:"filtered_count"`
	Total         int                 `json:"total"`
}

// handleListTables returns every registered listing.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	defs := tables.All()
	out := make([]TableInfo, len(defs))
	for i, def := range defs {
		out[i] = TableInfo{
			Key:         def.Key,
			Title:       def.Title,
			Description: def.Description,
			URL:         tables.Path(def.Key),
		}
	}
	writeJSON(w, out)
}

// handleTableJSON computes one page of a listing on a fresh table, so API
// calls never disturb a visitor's session.
//
// Query parameters: q, sort, dir (asc|desc), page, pageSize, and for the
// business listing type and criteria.
func (s *Server) handleTableJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	h, err := s.sessions.Mount(ctx, chi.URLParam(r, "table"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	if criteria := query.Get("criteria"); criteria != "" {
		fs, ok := h.(tables.FormSearcher)
		if !ok {
			respondError(w, r, fmt.Errorf("%w: criteria not supported", errInvalidIntent))
			return
		}
		searchType, err := business.ParseSearchType(query.Get("type"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		if err := fs.ApplySearch(ctx, business.SearchParams{Type: searchType, Criteria: criteria}); err != nil {
			respondError(w, r, err)
			return
		}
	}

	h.Search(query.Get("q"))
	if col := query.Get("sort"); col != "" {
		dir := datatable.SortAsc
		if raw := query.Get("dir"); raw != "" {
			if dir = datatable.ParseSortDirection(raw); dir == datatable.SortNone {
				respondError(w, r, fmt.Errorf("%w: sort direction %q", errInvalidIntent, raw))
				return
			}
		}
		tables.SortTo(h, col, dir)
	}
	if raw := query.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !h.SetPageSize(n) {
			respondError(w, r, fmt.Errorf("%w: page size %q", errInvalidIntent, raw))
			return
		}
	}
	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, fmt.Errorf("%w: page %q", errInvalidIntent, raw))
			return
		}
		h.SetPage(n)
	}

	writeJSON(w, newTableView(h.Model()))
}

func newTableView(m tables.Model) TableView {
	c := m.Controls
	v := TableView{
		Key:           m.Key,
		Title:         m.Title,
		Records:       m.Records,
		Search:        c.SearchQuery,
		Dir:           datatable.SortNone.String(),
		Page:          c.Page,
		PageSize:      c.PageSize,
		TotalPages:    c.TotalPages,
		FilteredCount: c.FilteredCount,
		Total:         c.Total,
	}
	for _, hc := range c.Headers {
		if !hc.NoExport {
			v.Columns = append(v.Columns, hc.Key)
		}
		if hc.Direction != datatable.SortNone {
			v.Sort, v.Dir = hc.Key, hc.Direction.String()
		}
	}
	return v
}
