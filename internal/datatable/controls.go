package datatable

// Gap marks an elided run of page numbers in Controls.Pages.
const Gap = 0

// HeaderControl is the state of one column header.
type HeaderControl struct {
	Key       string
	Header    string
	Align     Align
	Width     string
	Sortable  bool
	NoExport  bool
	Direction SortDirection // Direction if this is the active sort column
}

// ColumnToggle is one entry of the column-visibility menu.
type ColumnToggle struct {
	Key     string
	Header  string
	Visible bool
}

// Controls is everything the toolbar and pagination bar display.
// Each control maps to exactly one Table mutator.
type Controls struct {
	Searchable bool
	Sortable   bool
	Selectable bool
	Pagination bool
	Exportable bool
	Filterable bool

	SearchQuery string
	Headers     []HeaderControl
	ColumnMenu  []ColumnToggle

	Page            int
	TotalPages      int
	PageSize        int
	PageSizeOptions []int
	Pages           []int // Page numbers to show; Gap marks an ellipsis
	HasPrev         bool
	HasNext         bool

	From          int // 1-based index of the first row on the page, 0 if none
	To            int
	FilteredCount int
	Total         int

	SelectedCount      int
	AllOnPageSelected  bool
	SomeOnPageSelected bool // Indeterminate select-all checkbox

	Loading      bool
	Empty        bool
	EmptyMessage string
}

// Controls derives toolbar and pagination state from v, which must come
// from this table's View.
func (t *Table[T]) Controls(v View[T]) Controls {
	c := Controls{
		Searchable:      t.opts.Searchable,
		Sortable:        t.opts.Sortable,
		Selectable:      t.opts.Selectable,
		Pagination:      t.opts.Pagination && v.TotalPages > 0,
		Exportable:      t.opts.Exportable,
		Filterable:      t.opts.Filterable,
		SearchQuery:     v.SearchQuery,
		Page:            v.Page,
		TotalPages:      v.TotalPages,
		PageSize:        v.PageSize,
		PageSizeOptions: t.opts.PageSizeOptions,
		Pages:           pageWindow(v.Page, v.TotalPages, 1),
		HasPrev:         v.TotalPages > 0 && v.Page > 1,
		HasNext:         v.Page < v.TotalPages,
		FilteredCount:   v.FilteredCount,
		Total:           v.Total,
		SelectedCount:   t.SelectedCount(),
		Loading:         v.Loading,
		Empty:           v.Empty(),
		EmptyMessage:    t.opts.EmptyMessage,
	}

	if len(v.Rows) > 0 {
		c.From = (v.Page-1)*v.PageSize + 1
		if !t.opts.Pagination {
			c.From = 1
		}
		c.To = c.From + len(v.Rows) - 1
		c.AllOnPageSelected = t.allSelected(v.Rows)
		c.SomeOnPageSelected = !c.AllOnPageSelected && t.anySelected(v.Rows)
	}

	for _, col := range t.VisibleColumns() {
		h := HeaderControl{
			Key:      col.Key,
			Header:   col.Header,
			Align:    col.Align,
			Width:    col.Width,
			Sortable: t.opts.Sortable && col.Sortable(),
			NoExport: col.NoExport,
		}
		if col.Key == v.SortColumn {
			h.Direction = v.SortDirection
		}
		c.Headers = append(c.Headers, h)
	}

	if t.opts.Filterable {
		for _, col := range t.columns {
			if col.Hideable {
				c.ColumnMenu = append(c.ColumnMenu, ColumnToggle{
					Key:     col.Key,
					Header:  col.Header,
					Visible: t.ColumnVisible(col.Key),
				})
			}
		}
	}

	return c
}

// pageWindow lists the first and last page and the pages within span of
// current, with Gap where numbers are skipped.
//
//	pageWindow(5, 10, 1) = [1 0 4 5 6 0 10]
func pageWindow(current, total, span int) []int {
	if total <= 0 {
		return nil
	}
	var pages []int
	last := 0
	for p := 1; p <= total; p++ {
		if p != 1 && p != total && (p < current-span || p > current+span) {
			continue
		}
		if last != 0 && p-last > 1 {
			pages = append(pages, Gap)
		}
		pages = append(pages, p)
		last = p
	}
	return pages
}
