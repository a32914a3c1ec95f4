package datatable

import (
	"slices"
	"strings"
)

// View is the derived state of a table: the rows to render on the current
// page plus the full filtered-sorted sequence for export and counts.
type View[T any] struct {
	Rows     []T // Current page
	Filtered []T // Every row matching the search, in sort order

	Total         int // Rows in the input data
	FilteredCount int
	Page          int
	PageSize      int
	TotalPages    int

	SearchQuery   string
	SortColumn    string
	SortDirection SortDirection
	Loading       bool
}

// Empty reports whether no row matches the current search.
func (v View[T]) Empty() bool {
	return v.FilteredCount == 0
}

// View filters, sorts and paginates the input data. It does not modify
// table state or the input slice and may be called any number of times.
func (t *Table[T]) View() View[T] {
	filtered := t.sorted(t.filter())
	totalPages := t.totalPages(len(filtered))

	page := t.currentPage
	if totalPages > 0 {
		page = clamp(page, 1, totalPages)
	} else {
		page = 1
	}

	return View[T]{
		Rows:          t.paginate(filtered, page),
		Filtered:      filtered,
		Total:         len(t.data),
		FilteredCount: len(filtered),
		Page:          page,
		PageSize:      t.pageSize,
		TotalPages:    totalPages,
		SearchQuery:   t.searchQuery,
		SortColumn:    t.sortColumn,
		SortDirection: t.sortDir,
		Loading:       t.loading,
	}
}

// filter returns a fresh slice of the rows matching the search query.
func (t *Table[T]) filter() []T {
	query := t.searchQuery
	if !t.opts.Searchable || strings.TrimSpace(query) == "" {
		return slices.Clone(t.data)
	}

	var searchable []Column[T]
	for _, col := range t.columns {
		if col.Searchable {
			searchable = append(searchable, col)
		}
	}

	query = strings.ToLower(query)
	result := make([]T, 0, len(t.data))
	for _, row := range t.data {
		for _, col := range searchable {
			if strings.Contains(strings.ToLower(searchText(col.raw(row))), query) {
				result = append(result, row)
				break
			}
		}
	}
	return result
}

// sorted stable-sorts rows in place by the active column.
// rows must already be a copy owned by the caller.
func (t *Table[T]) sorted(rows []T) []T {
	if !t.opts.Sortable || t.sortDir == SortNone || t.sortColumn == "" {
		return rows
	}
	col, ok := findColumn(t.columns, t.sortColumn)
	if !ok {
		return rows
	}

	// Read each key once; accessors may be non-trivial.
	type keyed struct {
		row T
		key any
	}
	decorated := make([]keyed, len(rows))
	for i, row := range rows {
		decorated[i] = keyed{row: row, key: col.raw(row)}
	}

	desc := t.sortDir == SortDesc
	slices.SortStableFunc(decorated, func(a, b keyed) int {
		c := compareValues(a.key, b.key)
		if desc {
			return -c
		}
		return c
	})

	for i := range decorated {
		rows[i] = decorated[i].row
	}
	return rows
}

// paginate returns the slice for page. Without pagination the whole
// sequence is the page.
func (t *Table[T]) paginate(rows []T, page int) []T {
	if !t.opts.Pagination {
		return rows
	}
	start := (page - 1) * t.pageSize
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+t.pageSize, len(rows))
	return rows[start:end:end]
}
