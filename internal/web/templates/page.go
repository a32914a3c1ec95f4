package templates

import "github.com/JonMunkholm/bizdash/internal/tables"

// Theme is the colour scheme stored in the theme cookie.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// toggleLabel names the theme the switch moves to.
func (t Theme) toggleLabel() string {
	if t == ThemeDark {
		return "Modo claro"
	}
	return "Modo oscuro"
}

// NavItem is one sidebar link.
type NavItem struct {
	Title  string
	URL    string
	Active bool
}

// Page holds what the layout needs around a page body.
type Page struct {
	Title string
	Theme Theme
	Nav   []NavItem

	Notices []tables.Notice // Pending hook notices, shown as toasts
}

// Listing is a dashboard link to a registered table.
type Listing struct {
	Title       string
	Description string
	URL         string
	Rows        int
}
