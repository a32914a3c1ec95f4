package datatable

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 0, nil},
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{5, 10, []int{1, Gap, 4, 5, 6, Gap, 10}},
		{1, 10, []int{1, 2, Gap, 10}},
		{10, 10, []int{1, Gap, 9, 10}},
		{3, 5, []int{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		got := pageWindow(tt.current, tt.total, 1)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("pageWindow(%d, %d) mismatch (-want +got):\n%s", tt.current, tt.total, diff)
		}
	}
}

func TestControls_Boundaries(t *testing.T) {
	tbl := newPeople(t, generatePeople(23), nil)

	c := tbl.Controls(tbl.View())
	if c.HasPrev || !c.HasNext {
		t.Errorf("page 1: HasPrev=%v HasNext=%v", c.HasPrev, c.HasNext)
	}
	if c.From != 1 || c.To != 10 || c.FilteredCount != 23 || c.TotalPages != 3 {
		t.Errorf("page 1: from %d to %d of %d, pages %d", c.From, c.To, c.FilteredCount, c.TotalPages)
	}

	tbl.SetPage(3)
	c = tbl.Controls(tbl.View())
	if !c.HasPrev || c.HasNext {
		t.Errorf("last page: HasPrev=%v HasNext=%v", c.HasPrev, c.HasNext)
	}
	if c.From != 21 || c.To != 23 {
		t.Errorf("last page: from %d to %d", c.From, c.To)
	}
}

func TestControls_Empty(t *testing.T) {
	tbl := newPeople(t, nil, func(o *Options[*person]) { o.EmptyMessage = "Sin datos" })
	c := tbl.Controls(tbl.View())

	if !c.Empty || c.EmptyMessage != "Sin datos" {
		t.Errorf("Empty=%v EmptyMessage=%q", c.Empty, c.EmptyMessage)
	}
	if c.Pagination || c.HasPrev || c.HasNext {
		t.Error("pagination controls should be hidden for an empty table")
	}
}

func TestControls_SelectAllState(t *testing.T) {
	rows := generatePeople(4)
	tbl := newPeople(t, rows, nil)

	tbl.ToggleRowSelection(rows[1])
	c := tbl.Controls(tbl.View())
	if c.AllOnPageSelected || !c.SomeOnPageSelected || c.SelectedCount != 1 {
		t.Errorf("partial: all=%v some=%v count=%d", c.AllOnPageSelected, c.SomeOnPageSelected, c.SelectedCount)
	}

	tbl.ToggleSelectAll()
	c = tbl.Controls(tbl.View())
	if !c.AllOnPageSelected || c.SomeOnPageSelected {
		t.Errorf("full: all=%v some=%v", c.AllOnPageSelected, c.SomeOnPageSelected)
	}
}

func TestControls_Headers(t *testing.T) {
	cols := personColumns()
	cols[2].DisableSort = true
	cols[1].Hideable = true
	tbl := MustNew(generatePeople(2), cols, DefaultOptions[*person]())
	tbl.SetSort("name")
	tbl.SetSort("name")

	c := tbl.Controls(tbl.View())
	want := []HeaderControl{
		{Key: "name", Header: "Name", Sortable: true, Direction: SortDesc},
		{Key: "dept", Header: "Dept", Sortable: true},
		{Key: "age", Header: "Age", Sortable: false},
	}
	if diff := cmp.Diff(want, c.Headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ColumnToggle{{Key: "dept", Header: "Dept", Visible: true}}, c.ColumnMenu); diff != "" {
		t.Errorf("column menu mismatch (-want +got):\n%s", diff)
	}
}
