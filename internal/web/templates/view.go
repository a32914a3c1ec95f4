package templates

import (
	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/JonMunkholm/bizdash/internal/datatable"
)

// TableID is the DOM id of a table section, the swap target of intents.
func TableID(key string) string {
	return "table-" + key
}

// tableTarget is the hx-target selector of a table section.
func tableTarget(key string) string {
	return "#" + TableID(key)
}

// checkState is the state of a checkbox-styled intent button.
type checkState int

const (
	unchecked checkState = iota
	checked
	indeterminate
)

func checkOf(on, some bool) checkState {
	switch {
	case on:
		return checked
	case some:
		return indeterminate
	}
	return unchecked
}

func (s checkState) mark() string {
	switch s {
	case checked:
		return "☑"
	case indeterminate:
		return "◩"
	}
	return "☐"
}

func (s checkState) aria() string {
	switch s {
	case checked:
		return "true"
	case indeterminate:
		return "mixed"
	}
	return "false"
}

func alignClass(a datatable.Align) string {
	if a == "" {
		a = datatable.AlignLeft
	}
	return "align-" + string(a)
}

// columnSpan counts the grid columns, including the selection column.
func columnSpan(c datatable.Controls) int {
	n := len(c.Headers)
	if c.Selectable {
		n++
	}
	return n
}

// searchTypeChecked reports whether t is the selected radio; agent search
// is preselected on a fresh form.
func searchTypeChecked(p business.SearchParams, t business.SearchType) bool {
	return t == p.Type || (p.Type == "" && t == business.SearchAgent)
}

// createStatuses are the statuses offered by the create form.
var createStatuses = []business.Status{business.StatusIssued, business.StatusSold}
