package datatable

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrExportDisabled is returned by Table.Export when exporting is off.
var ErrExportDisabled = errors.New("datatable: export is disabled")

// Export writes the filtered-sorted rows (every page, not just the
// current one) as CSV and notifies OnExport with the same rows.
func (t *Table[T]) Export(w io.Writer) error {
	if !t.opts.Exportable {
		return ErrExportDisabled
	}
	rows := t.View().Filtered
	if t.opts.OnExport != nil {
		t.opts.OnExport(rows)
	}
	return WriteCSV(w, t.columns, rows)
}

// WriteCSV writes a header line of column headers followed by one line
// per row. Body values are always double-quoted with embedded quotes
// doubled; headers are quoted only when they need it. Columns marked
// NoExport are skipped.
func WriteCSV[T any](w io.Writer, cols []Column[T], rows []T) error {
	exportable := make([]Column[T], 0, len(cols))
	for _, col := range cols {
		if !col.NoExport {
			exportable = append(exportable, col)
		}
	}

	bw := bufio.NewWriter(w)

	for i, col := range exportable {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(headerField(col.Header))
	}
	bw.WriteByte('\n')

	for _, row := range rows {
		for i, col := range exportable {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quoteField(col.exportValue(row)))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func headerField(s string) string {
	if s == "" || strings.ContainsAny(s, ",\"\r\n") || s[0] == ' ' {
		return quoteField(s)
	}
	return s
}

// Records returns rows as column key to export text, for JSON views.
// Only visible columns that are not NoExport are included.
func (t *Table[T]) Records(rows []T) []map[string]string {
	cols := t.VisibleColumns()
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		rec := make(map[string]string, len(cols))
		for _, col := range cols {
			if !col.NoExport {
				rec[col.Key] = col.exportValue(row)
			}
		}
		out[i] = rec
	}
	return out
}
