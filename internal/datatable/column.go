package datatable

import (
	"errors"
	"fmt"

	"github.com/a-h/templ"
)

var (
	// ErrEmptyColumnKey is returned by New when a column has no key.
	ErrEmptyColumnKey = errors.New("datatable: column key is empty")

	// ErrDuplicateColumn is returned by New when two columns share a key.
	ErrDuplicateColumn = errors.New("datatable: duplicate column key")

	// ErrMissingAccessor is returned by New when a column has no Value func.
	ErrMissingAccessor = errors.New("datatable: column has no value accessor")
)

// Align is a layout hint for a column's header and cells.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// RenderFunc produces the displayable content for one cell.
// It receives the raw value returned by the column's accessor and the row.
type RenderFunc[T any] func(value any, row T) templ.Component

// Column describes how one field of a row is read, labelled, searched,
// sorted, rendered and exported.
type Column[T any] struct {
	Key    string        // Unique identifier within the registry
	Header string        // Display label, also the CSV header
	Value  func(T) any   // Raw value accessor used by search, sort and default rendering
	Render RenderFunc[T] // Optional cell renderer; raw value as text if nil

	// Export returns the CSV value for the row. When nil, the raw value is
	// formatted if it is a scalar; composite values (structs, maps, slices)
	// export as an empty string.
	Export func(T) string

	DisableSort bool // Columns are sortable unless this is set
	Searchable  bool // Raw value participates in the global search
	Hideable    bool // Can be hidden from the column-visibility menu
	NoExport    bool // Excluded from CSV export (actions columns)

	Align Align
	Width string
}

// Sortable reports whether clicking the column header sorts by it.
func (c Column[T]) Sortable() bool {
	return !c.DisableSort
}

// raw reads the column value from row. An accessor that panics on a
// partially populated row (nil nested pointer) yields nil.
func (c Column[T]) raw(row T) (v any) {
	defer func() {
		if recover() != nil {
			v = nil
		}
	}()
	return c.Value(row)
}

// exportValue returns the CSV text for row.
func (c Column[T]) exportValue(row T) string {
	if c.Export != nil {
		return c.Export(row)
	}
	s, _ := scalarText(c.raw(row))
	return s
}

// validateColumns checks key uniqueness and accessor presence.
func validateColumns[T any](cols []Column[T]) error {
	seen := make(map[string]bool, len(cols))
	for i, col := range cols {
		if col.Key == "" {
			return fmt.Errorf("%w (column %d)", ErrEmptyColumnKey, i)
		}
		if seen[col.Key] {
			return fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Key)
		}
		if col.Value == nil {
			return fmt.Errorf("%w: %s", ErrMissingAccessor, col.Key)
		}
		seen[col.Key] = true
	}
	return nil
}

// findColumn returns the column with the given key.
func findColumn[T any](cols []Column[T], key string) (Column[T], bool) {
	for _, col := range cols {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}

// MapRow is a row represented as field name to value, the shape returned
// by generic database scans.
type MapRow map[string]any

// Field returns an accessor that reads key out of a MapRow.
// Missing keys yield nil.
func Field(key string) func(MapRow) any {
	return func(r MapRow) any {
		return r[key]
	}
}

// MapColumns builds plain text columns for MapRow data, one per key.
// Every column is searchable and sortable.
func MapColumns(keys, headers []string) []Column[MapRow] {
	cols := make([]Column[MapRow], len(keys))
	for i, key := range keys {
		header := key
		if i < len(headers) && headers[i] != "" {
			header = headers[i]
		}
		cols[i] = Column[MapRow]{
			Key:        key,
			Header:     header,
			Value:      Field(key),
			Searchable: true,
		}
	}
	return cols
}
