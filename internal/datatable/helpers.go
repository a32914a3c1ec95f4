package datatable

import (
	"time"

	"github.com/a-h/templ"
)

// Badge variants understood by the stylesheet.
const (
	BadgeDefault     = "default"
	BadgeSecondary   = "secondary"
	BadgeDestructive = "destructive"
	BadgeOutline     = "outline"
)

// TextColumn is a searchable, sortable, hideable column shown as plain text.
func TextColumn[T any](key, header string, value func(T) any) Column[T] {
	return Column[T]{
		Key:        key,
		Header:     header,
		Value:      value,
		Searchable: true,
		Hideable:   true,
	}
}

// BadgeColumn renders the value inside a badge. variant picks the badge
// style from the raw value; nil means BadgeDefault.
func BadgeColumn[T any](key, header string, value func(T) any, variant func(any) string) Column[T] {
	col := TextColumn(key, header, value)
	col.Render = func(v any, _ T) templ.Component {
		name := BadgeDefault
		if variant != nil {
			name = variant(v)
		}
		return Badge(searchText(v), name)
	}
	return col
}

// DateColumn renders time.Time values with layout. Zero times show the
// placeholder.
func DateColumn[T any](key, header string, value func(T) time.Time, layout string) Column[T] {
	return Column[T]{
		Key:      key,
		Header:   header,
		Value:    func(row T) any { return value(row) },
		Hideable: true,
		Render: func(v any, _ T) templ.Component {
			return Text(v.(time.Time).Format(layout))
		},
		Export: func(row T) string {
			t := value(row)
			if t.IsZero() {
				return ""
			}
			return t.Format(DateLayout)
		},
	}
}

// CurrencyColumn renders numeric values with format, right aligned.
// The CSV keeps the unformatted number.
func CurrencyColumn[T any](key, header string, value func(T) float64, format func(float64) string) Column[T] {
	return Column[T]{
		Key:      key,
		Header:   header,
		Value:    func(row T) any { return value(row) },
		Align:    AlignRight,
		Hideable: true,
		Render: func(v any, _ T) templ.Component {
			return Text(format(v.(float64)))
		},
	}
}

// ActionsColumn is a per-row actions cell. It is never sorted, searched,
// hidden or exported.
func ActionsColumn[T any](header string, actions func(T) templ.Component) Column[T] {
	return Column[T]{
		Key:         "actions",
		Header:      header,
		Value:       func(row T) any { return row },
		DisableSort: true,
		NoExport:    true,
		Align:       AlignRight,
		Render: func(_ any, row T) templ.Component {
			return actions(row)
		},
	}
}

// Badge renders text inside a styled span.
func Badge(text, variant string) templ.Component {
	switch variant {
	case BadgeDefault, BadgeSecondary, BadgeDestructive, BadgeOutline:
	default:
		variant = BadgeDefault
	}
	return badge(text, variant)
}
