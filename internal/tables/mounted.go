package tables

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/JonMunkholm/bizdash/internal/datatable"
)

// Model is a snapshot of a mounted table, ready for a view.
type Model struct {
	Key         string
	Title       string
	Description string
	Controls    datatable.Controls
	Rows        []Row
	Records     []map[string]string // Current page as export text, for JSON
}

// Row is one visible row of a Model.
type Row struct {
	Key      string
	Selected bool
	Cells    []datatable.Cell
}

// Mounted adapts a datatable.Table[T] to Handle.
type Mounted[T any] struct {
	def   Definition
	table *datatable.Table[T]
	load  func(ctx context.Context) ([]T, error)
}

// Mount builds a table over cols and wires its hooks to env.Notify.
// load supplies rows on every Refresh.
func Mount[T any](def Definition, env Env, cols []datatable.Column[T], opts datatable.Options[T],
	load func(ctx context.Context) ([]T, error)) (*Mounted[T], error) {
	if env.PageSize > 0 {
		opts.PageSize = env.PageSize
	}
	if len(env.PageSizeOptions) > 0 {
		opts.PageSizeOptions = env.PageSizeOptions
	}

	onExport := opts.OnExport
	opts.OnExport = func(rows []T) {
		env.notify(Notice{Level: LevelSuccess, Message: fmt.Sprintf("Exportadas %d filas de %s", len(rows), def.Title)})
		if onExport != nil {
			onExport(rows)
		}
	}

	tbl, err := datatable.New(nil, cols, opts)
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", def.Key, err)
	}
	return &Mounted[T]{def: def, table: tbl, load: load}, nil
}

func (m *Mounted[T]) Definition() Definition {
	return m.def
}

// Table exposes the underlying engine.
func (m *Mounted[T]) Table() *datatable.Table[T] {
	return m.table
}

// Refresh reloads the rows from the store. It does not touch the loading
// flag: callers that fetch asynchronously set it themselves.
func (m *Mounted[T]) Refresh(ctx context.Context) error {
	rows, err := m.load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", m.def.Key, err)
	}
	m.table.SetData(rows)
	return nil
}

func (m *Mounted[T]) Search(query string) { m.table.SetSearchQuery(query) }
func (m *Mounted[T]) Sort(column string)  { m.table.SetSort(column) }
func (m *Mounted[T]) SetPage(page int)    { m.table.SetPage(page) }
func (m *Mounted[T]) ToggleSelectAll()    { m.table.ToggleSelectAll() }
func (m *Mounted[T]) ClearSelection()     { m.table.ClearSelection() }

func (m *Mounted[T]) SortState() (string, datatable.SortDirection) {
	return m.table.Sort()
}

// SetPageSize accepts only the sizes offered by the page-size selector.
func (m *Mounted[T]) SetPageSize(size int) bool {
	if opts := m.table.Options().PageSizeOptions; len(opts) > 0 && !slices.Contains(opts, size) {
		return false
	}
	return m.table.SetPageSize(size)
}

func (m *Mounted[T]) ToggleRow(key string) bool {
	return m.table.SelectKey(key)
}

func (m *Mounted[T]) ToggleColumn(key string) bool {
	return m.table.ToggleColumn(key)
}

func (m *Mounted[T]) ClickRow(key string) bool {
	return m.table.ClickRow(key)
}

func (m *Mounted[T]) Export(w io.Writer) error {
	return m.table.Export(w)
}

func (m *Mounted[T]) Model() Model {
	v := m.table.View()
	rendered := m.table.RenderRows(v.Rows)

	rows := make([]Row, len(rendered))
	for i, r := range rendered {
		rows[i] = Row{Key: r.Key, Selected: r.Selected, Cells: r.Cells}
	}

	return Model{
		Key:         m.def.Key,
		Title:       m.def.Title,
		Description: m.def.Description,
		Controls:    m.table.Controls(v),
		Rows:        rows,
		Records:     m.table.Records(v.Rows),
	}
}

// SortTo drives the three-state sort cycle of h until column is sorted
// in dir. SortNone clears the active sort. Unknown or unsortable columns
// leave the sort unchanged.
func SortTo(h Handle, column string, dir datatable.SortDirection) {
	for range 3 {
		col, cur := h.SortState()
		if cur == dir && (dir == datatable.SortNone || col == column) {
			return
		}
		if dir == datatable.SortNone {
			column = col
		}
		h.Sort(column)
	}
}
