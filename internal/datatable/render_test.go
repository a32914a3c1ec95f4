package datatable

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

type account struct {
	ID    string
	Name  string
	Owner *owner
	Note  any
}

type owner struct {
	Name   string
	Avatar string
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestRenderCell_DefaultEscapesText(t *testing.T) {
	col := Column[*account]{Key: "name", Value: func(a *account) any { return a.Name }}
	got := renderString(t, RenderCell(col, &account{Name: "<b>Ana & Co</b>"}))
	if got != "&lt;b&gt;Ana &amp; Co&lt;/b&gt;" {
		t.Errorf("RenderCell = %q", got)
	}
}

func TestRenderCell_MissingValuesUsePlaceholder(t *testing.T) {
	called := false
	cols := []Column[*account]{
		{Key: "note", Value: func(a *account) any { return a.Note }},
		{Key: "owner", Value: func(a *account) any { return a.Owner },
			Render: func(v any, _ *account) templ.Component {
				called = true
				return Text(v.(*owner).Name)
			}},
		{Key: "owner_name", Value: func(a *account) any { return a.Owner.Name }},
	}

	row := &account{ID: "1"}
	for _, col := range cols {
		if got := renderString(t, RenderCell(col, row)); got != Placeholder {
			t.Errorf("column %s: RenderCell = %q, want placeholder", col.Key, got)
		}
	}
	if called {
		t.Error("custom renderer called for a nil value")
	}
}

func TestRenderCell_NestedObjectRenderer(t *testing.T) {
	col := Column[*account]{
		Key:   "owner",
		Value: func(a *account) any { return a.Owner },
		Render: func(v any, _ *account) templ.Component {
			o := v.(*owner)
			return Text(o.Name + " (" + o.Avatar + ")")
		},
	}
	row := &account{Owner: &owner{Name: "Ana", Avatar: "a.png"}}
	if got := renderString(t, RenderCell(col, row)); got != "Ana (a.png)" {
		t.Errorf("RenderCell = %q", got)
	}
}

func TestRenderCell_PanickingRendererFallsBack(t *testing.T) {
	col := Column[*account]{
		Key:    "name",
		Value:  func(a *account) any { return a.Name },
		Render: func(any, *account) templ.Component { panic("boom") },
	}
	if got := renderString(t, RenderCell(col, &account{Name: "x"})); got != Placeholder {
		t.Errorf("RenderCell = %q, want placeholder", got)
	}
}

func TestRenderRows_KeysAndSelection(t *testing.T) {
	rows := []*account{{ID: "a1", Name: "A"}, {ID: "b2", Name: "B"}}
	cols := []Column[*account]{
		{Key: "id", Header: "ID", Value: func(a *account) any { return a.ID }},
		{Key: "name", Header: "Name", Value: func(a *account) any { return a.Name }, Hideable: true},
	}
	opts := DefaultOptions[*account]()
	opts.RowKey = func(a *account) string { return a.ID }
	tbl := MustNew(rows, cols, opts)
	tbl.SelectKey("b2")
	tbl.ToggleColumn("name")

	out := tbl.RenderRows(tbl.View().Rows)
	if len(out) != 2 {
		t.Fatalf("RenderRows returned %d rows, want 2", len(out))
	}
	if out[0].Key != "a1" || out[1].Key != "b2" {
		t.Errorf("keys = %q, %q", out[0].Key, out[1].Key)
	}
	if out[0].Selected || !out[1].Selected {
		t.Error("Selected flags do not match selection")
	}
	if len(out[0].Cells) != 1 || out[0].Cells[0].Key != "id" {
		t.Errorf("hidden column rendered: %+v", out[0].Cells)
	}
}

func TestHelpers(t *testing.T) {
	type item struct {
		State string
		When  string
		Price float64
	}
	status := BadgeColumn("state", "State", func(i *item) any { return i.State }, func(v any) string {
		if v == "ok" {
			return BadgeSecondary
		}
		return "unknown-variant"
	})
	if got := renderString(t, RenderCell(status, &item{State: "ok"})); got != `<span class="badge badge-secondary">ok</span>` {
		t.Errorf("badge = %q", got)
	}
	if got := renderString(t, RenderCell(status, &item{State: "x"})); !strings.Contains(got, "badge-default") {
		t.Errorf("unknown variant not defaulted: %q", got)
	}

	price := CurrencyColumn("price", "Price", func(i *item) float64 { return i.Price }, func(f float64) string { return "$" + strings.Repeat("9", int(f)) })
	if got := renderString(t, RenderCell(price, &item{Price: 2})); got != "$99" {
		t.Errorf("currency = %q", got)
	}
	if price.Align != AlignRight {
		t.Errorf("currency align = %q", price.Align)
	}

	actions := ActionsColumn("Actions", func(i *item) templ.Component { return Text("edit " + i.State) })
	if actions.Sortable() || !actions.NoExport {
		t.Error("actions column must be unsortable and excluded from export")
	}
	if got := renderString(t, RenderCell(actions, &item{State: "s"})); got != "edit s" {
		t.Errorf("actions = %q", got)
	}
}
