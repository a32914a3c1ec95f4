// Package datatable provides a generic, in-memory table engine for the
// dashboard's listing pages.
//
// A table is built from an ordered slice of rows and a column registry.
// The engine owns all interactive state (search query, sort column and
// direction, current page, page size, selected rows, hidden columns) and
// derives the rows to display on demand. It has no I/O and no UI
// dependencies beyond producing templ components for cells, so it can be
// driven by HTTP handlers, a CLI, or tests.
//
// # Pipeline
//
// [Table.View] runs the same three steps every time it is called:
//
//  1. Filter: keep rows where any searchable column contains the query
//     (case-insensitive substring of the value's text form).
//  2. Sort: stable sort on the active column; equal keys keep input order.
//  3. Paginate: slice the current page out of the filtered-sorted rows.
//
// The caller's row slice is never modified; every derived sequence is a
// fresh slice.
//
// # Column registry
//
// Columns use typed accessors rather than field-name lookups:
//
//	cols := []datatable.Column[*Business]{
//	    {Key: "name", Header: "Nombre", Searchable: true,
//	        Value: func(b *Business) any { return b.Name }},
//	    {Key: "value", Header: "Valor",
//	        Value:  func(b *Business) any { return b.Value },
//	        Export: func(b *Business) string { return fmt.Sprint(b.Value) }},
//	}
//
// Duplicate or empty keys are rejected by [New].
//
// # State lifetime
//
// A [Table] is created once per mount and survives [Table.SetData]:
// search, sort and selection persist across data refreshes, while rows
// that disappeared from the data are pruned from the selection.
package datatable
