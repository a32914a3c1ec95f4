package datatable

import (
	"strconv"

	"github.com/a-h/templ"
)

// Placeholder is shown for cells whose value is missing.
const Placeholder = "-"

// Cell is one rendered cell of a row.
type Cell struct {
	Key     string
	Align   Align
	Content templ.Component
}

// RenderedRow is a visible row ready for a view.
type RenderedRow[T any] struct {
	Key      string
	Row      T
	Selected bool
	Cells    []Cell
}

// RenderCell produces the content of one cell. Missing values render the
// placeholder without calling the column's renderer, and a renderer that
// panics or returns nil also yields the placeholder.
func RenderCell[T any](col Column[T], row T) (c templ.Component) {
	v := col.raw(row)
	if n, rank := normalize(v); rank == rankNil || n == nil {
		return Text(Placeholder)
	}

	if col.Render != nil {
		defer func() {
			if recover() != nil {
				c = Text(Placeholder)
			}
		}()
		if out := col.Render(v, row); out != nil {
			return out
		}
		return Text(Placeholder)
	}

	return Text(searchText(v))
}

// RenderRow maps a row onto cells, one per column, in column order.
func RenderRow[T any](cols []Column[T], row T) []Cell {
	cells := make([]Cell, len(cols))
	for i, col := range cols {
		cells[i] = Cell{
			Key:     col.Key,
			Align:   col.Align,
			Content: RenderCell(col, row),
		}
	}
	return cells
}

// RenderRows renders rows against the visible columns. Rows are keyed by
// RowKey when configured, otherwise by their position in rows.
func (t *Table[T]) RenderRows(rows []T) []RenderedRow[T] {
	cols := t.VisibleColumns()
	out := make([]RenderedRow[T], len(rows))
	for i, row := range rows {
		key := strconv.Itoa(i)
		if t.opts.RowKey != nil {
			key = t.opts.RowKey(row)
		}
		out[i] = RenderedRow[T]{
			Key:      key,
			Row:      row,
			Selected: t.IsSelected(row),
			Cells:    RenderRow(cols, row),
		}
	}
	return out
}
