package datatable

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrRowKeyRequired is returned by New when rows are not comparable and
// no RowKey was configured, so selection identity cannot be established.
var ErrRowKeyRequired = errors.New("datatable: RowKey is required for non-comparable row types")

// SortDirection is the direction of the active sort.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// String returns "none", "asc" or "desc".
func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// ParseSortDirection converts "asc"/"desc" (any case) to a SortDirection.
// Anything else is SortNone.
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc
	case "desc":
		return SortDesc
	default:
		return SortNone
	}
}

// Table is the state engine for one mounted table. It is not safe for
// concurrent use; callers serialize access (one table per session).
type Table[T any] struct {
	columns []Column[T]
	opts    Options[T]
	data    []T

	searchQuery string
	sortColumn  string
	sortDir     SortDirection
	currentPage int
	pageSize    int
	loading     bool

	selected map[any]struct{}
	hidden   map[string]bool
}

// New creates a table over data with the given column registry.
// Column keys must be unique and non-empty. The data slice is read but
// never modified.
func New[T any](data []T, columns []Column[T], opts Options[T]) (*Table[T], error) {
	if err := validateColumns(columns); err != nil {
		return nil, err
	}
	if opts.RowKey == nil && !reflect.TypeFor[T]().Comparable() {
		return nil, fmt.Errorf("%w: %s", ErrRowKeyRequired, reflect.TypeFor[T]())
	}

	opts = opts.withDefaults()

	cols := make([]Column[T], len(columns))
	copy(cols, columns)

	return &Table[T]{
		columns:     cols,
		opts:        opts,
		data:        data,
		currentPage: 1,
		pageSize:    opts.PageSize,
		loading:     opts.Loading,
		selected:    make(map[any]struct{}),
		hidden:      make(map[string]bool),
	}, nil
}

// MustNew is like New but panics on an invalid column registry.
// Use it for registries declared in code.
func MustNew[T any](data []T, columns []Column[T], opts Options[T]) *Table[T] {
	t, err := New(data, columns, opts)
	if err != nil {
		panic(err)
	}
	return t
}

// identity returns the selection key for row.
func (t *Table[T]) identity(row T) any {
	if t.opts.RowKey != nil {
		return t.opts.RowKey(row)
	}
	return any(row)
}

// Columns returns the full column registry.
func (t *Table[T]) Columns() []Column[T] {
	return t.columns
}

// Options returns the table's effective options.
func (t *Table[T]) Options() Options[T] {
	return t.opts
}

// Data returns the current input rows.
func (t *Table[T]) Data() []T {
	return t.data
}

// SearchQuery returns the current search text.
func (t *Table[T]) SearchQuery() string {
	return t.searchQuery
}

// Sort returns the active sort column and direction.
// The column is empty when the direction is SortNone.
func (t *Table[T]) Sort() (string, SortDirection) {
	return t.sortColumn, t.sortDir
}

// Page returns the current page number (1-based).
func (t *Table[T]) Page() int {
	return t.currentPage
}

// PageSize returns the number of rows per page.
func (t *Table[T]) PageSize() int {
	return t.pageSize
}

// Loading reports whether the table is waiting for data.
func (t *Table[T]) Loading() bool {
	return t.loading
}

// SetSearchQuery stores the search text and returns to the first page.
// Empty and whitespace-only queries filter nothing out.
func (t *Table[T]) SetSearchQuery(text string) {
	if !t.opts.Searchable {
		return
	}
	t.searchQuery = text
	t.currentPage = 1

	if t.opts.OnGlobalSearch != nil {
		t.opts.OnGlobalSearch(text)
	}
}

// SetSort handles a click on a column header. A new column starts
// ascending; clicking the active column cycles ascending, descending,
// then no sort. Unknown and unsortable columns are ignored.
func (t *Table[T]) SetSort(columnKey string) {
	if !t.opts.Sortable {
		return
	}
	col, ok := findColumn(t.columns, columnKey)
	if !ok || !col.Sortable() {
		return
	}

	if t.sortColumn != columnKey {
		t.sortColumn = columnKey
		t.sortDir = SortAsc
		return
	}

	switch t.sortDir {
	case SortAsc:
		t.sortDir = SortDesc
	case SortDesc:
		t.sortDir = SortNone
		t.sortColumn = ""
	default:
		t.sortDir = SortAsc
	}
}

// SetPage moves to pageNumber, clamped to [1, totalPages].
// Ignored when there are no rows to page through.
func (t *Table[T]) SetPage(pageNumber int) {
	total := t.totalPages(len(t.filter()))
	if total == 0 {
		return
	}
	t.currentPage = clamp(pageNumber, 1, total)
}

// SetPageSize changes the page size, keeping the current page in range.
// Non-positive sizes are rejected and leave the state unchanged.
func (t *Table[T]) SetPageSize(size int) bool {
	if size <= 0 {
		return false
	}
	t.pageSize = size
	t.clampPage()
	return true
}

// SetData replaces the input rows. Search, sort and page survive; rows
// that are no longer present are dropped from the selection and the
// current page is clamped to the new page count.
func (t *Table[T]) SetData(data []T) {
	t.data = data

	if len(t.selected) > 0 {
		present := make(map[any]struct{}, len(data))
		for _, row := range data {
			present[t.identity(row)] = struct{}{}
		}
		pruned := false
		for key := range t.selected {
			if _, ok := present[key]; !ok {
				delete(t.selected, key)
				pruned = true
			}
		}
		if pruned {
			t.notifySelection()
		}
	}

	t.clampPage()
}

// SetLoading toggles the loading placeholder. The flag is driven by the
// caller only; nothing in the engine sets it. State mutators keep working
// while loading; only rendering waits.
func (t *Table[T]) SetLoading(loading bool) {
	t.loading = loading
}

// ToggleColumn shows or hides a hideable column. Returns false when the
// column-visibility feature is off or the column cannot be hidden.
func (t *Table[T]) ToggleColumn(columnKey string) bool {
	if !t.opts.Filterable {
		return false
	}
	col, ok := findColumn(t.columns, columnKey)
	if !ok || !col.Hideable {
		return false
	}
	if t.hidden[columnKey] {
		delete(t.hidden, columnKey)
	} else {
		t.hidden[columnKey] = true
	}
	return true
}

// ColumnVisible reports whether the column is currently shown.
func (t *Table[T]) ColumnVisible(columnKey string) bool {
	return !t.hidden[columnKey]
}

// VisibleColumns returns the columns that are not hidden, in order.
func (t *Table[T]) VisibleColumns() []Column[T] {
	if len(t.hidden) == 0 {
		return t.columns
	}
	cols := make([]Column[T], 0, len(t.columns))
	for _, col := range t.columns {
		if !t.hidden[col.Key] {
			cols = append(cols, col)
		}
	}
	return cols
}

// RowByKey finds a row by its RowKey. Always false without a RowKey.
func (t *Table[T]) RowByKey(key string) (T, bool) {
	var zero T
	if t.opts.RowKey == nil {
		return zero, false
	}
	for _, row := range t.data {
		if t.opts.RowKey(row) == key {
			return row, true
		}
	}
	return zero, false
}

// ClickRow invokes OnRowClick for the row with the given key.
func (t *Table[T]) ClickRow(key string) bool {
	row, ok := t.RowByKey(key)
	if !ok {
		return false
	}
	if t.opts.OnRowClick != nil {
		t.opts.OnRowClick(row)
	}
	return true
}

// totalPages is ceil(filtered / pageSize), zero for an empty result.
func (t *Table[T]) totalPages(filtered int) int {
	if filtered == 0 {
		return 0
	}
	if !t.opts.Pagination {
		return 1
	}
	return (filtered + t.pageSize - 1) / t.pageSize
}

// clampPage keeps currentPage inside the page range of the filtered data.
func (t *Table[T]) clampPage() {
	total := t.totalPages(len(t.filter()))
	if total == 0 {
		t.currentPage = 1
		return
	}
	t.currentPage = clamp(t.currentPage, 1, total)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
