package business

import (
	"fmt"
	"time"

	"github.com/JonMunkholm/bizdash/internal/datatable"
	"github.com/a-h/templ"
)

// BusinessColumns returns the column registry of the business listing.
// actions renders the per-row actions cell; nil omits the column.
func BusinessColumns(actions func(*Business) templ.Component) []datatable.Column[*Business] {
	cols := []datatable.Column[*Business]{
		{
			Key:        "identification",
			Header:     "Identificación",
			Searchable: true,
			Value:      func(b *Business) any { return b.Identification },
			Render: func(v any, _ *Business) templ.Component {
				return styledText("font-medium", fmt.Sprint(v))
			},
		},
		{
			Key:        "user",
			Header:     "Usuario",
			Searchable: true,
			Hideable:   true,
			Value:      func(b *Business) any { return b.User },
			Render: func(v any, _ *Business) templ.Component {
				return AgentCell(v.(Agent))
			},
			Export: func(b *Business) string { return b.User.Name },
		},
		{
			Key:        "email",
			Header:     "Email",
			Searchable: true,
			Hideable:   true,
			Value:      func(b *Business) any { return b.Email },
			Render: func(v any, _ *Business) templ.Component {
				return styledText("text-muted", fmt.Sprint(v))
			},
		},
		datatable.TextColumn("termPeriod", "Plazo", func(b *Business) any { return b.TermPeriod }),
		datatable.DateColumn("date", "Fecha", func(b *Business) time.Time { return b.Date }, DisplayDateLayout),
		datatable.CurrencyColumn("value", "Valor", func(b *Business) float64 { return b.Value }, FormatCOP),
		datatable.TextColumn("product", "Producto", func(b *Business) any { return b.Product }),
		datatable.BadgeColumn("status", "Estado", func(b *Business) any { return b.Status }, statusVariant),
	}

	if actions != nil {
		cols = append(cols, datatable.ActionsColumn("Acciones", actions))
	}
	return cols
}

// UserColumns returns the column registry of the user listing.
func UserColumns() []datatable.Column[*User] {
	return []datatable.Column[*User]{
		{
			Key:        "name",
			Header:     "Nombre",
			Searchable: true,
			Value:      func(u *User) any { return u.Name },
			Render: func(_ any, u *User) templ.Component {
				return AgentCell(Agent{Name: u.Name, Avatar: u.Avatar})
			},
		},
		datatable.TextColumn("email", "Email", func(u *User) any { return u.Email }),
		datatable.BadgeColumn("role", "Rol", func(u *User) any { return u.Role }, func(any) string {
			return datatable.BadgeOutline
		}),
		datatable.DateColumn("lastLogin", "Último acceso", func(u *User) time.Time { return u.LastLogin }, DisplayDateLayout),
	}
}

func statusVariant(v any) string {
	if v == StatusIssued {
		return datatable.BadgeDefault
	}
	return datatable.BadgeSecondary
}
