package datatable

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToggleRowSelection(t *testing.T) {
	rows := generatePeople(4)
	var calls [][]string
	tbl := newPeople(t, rows, func(o *Options[*person]) {
		o.OnSelectionChange = func(s []*person) { calls = append(calls, names(s)) }
	})

	tbl.ToggleRowSelection(rows[2])
	tbl.ToggleRowSelection(rows[0])
	tbl.ToggleRowSelection(rows[2])

	want := [][]string{{"p02"}, {"p00", "p02"}, {"p00"}}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("selection notifications mismatch (-want +got):\n%s", diff)
	}
	if !tbl.IsSelected(rows[0]) || tbl.IsSelected(rows[2]) {
		t.Error("IsSelected disagrees with toggles")
	}
}

func TestSelection_IsByReferenceNotValue(t *testing.T) {
	a := &person{Name: "same"}
	b := &person{Name: "same"}
	tbl := newPeople(t, []*person{a, b}, nil)

	tbl.ToggleRowSelection(a)
	if tbl.IsSelected(b) {
		t.Error("equal-valued row b reported selected")
	}
	if tbl.SelectedCount() != 1 {
		t.Errorf("SelectedCount() = %d, want 1", tbl.SelectedCount())
	}
}

func TestSelectKey(t *testing.T) {
	rows := generatePeople(3)
	tbl := newPeople(t, rows, func(o *Options[*person]) {
		o.RowKey = func(p *person) string { return p.Name }
	})

	if !tbl.SelectKey("p01") {
		t.Fatal("SelectKey(p01) = false")
	}
	if !tbl.IsSelected(rows[1]) {
		t.Error("row p01 not selected")
	}
	if tbl.SelectKey("missing") {
		t.Error("SelectKey(missing) = true")
	}
}

func TestToggleSelectAll_CurrentPageOnly(t *testing.T) {
	rows := generatePeople(25)
	tbl := newPeople(t, rows, nil)
	tbl.SetPage(2)

	tbl.ToggleSelectAll()
	if diff := cmp.Diff(names(rows[10:20]), names(tbl.SelectedRows())); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	tbl.ToggleSelectAll()
	if tbl.SelectedCount() != 0 {
		t.Errorf("SelectedCount() = %d after second toggle, want 0", tbl.SelectedCount())
	}
}

func TestToggleSelectAll_PartialPageSelectsThenClears(t *testing.T) {
	rows := generatePeople(15)
	tbl := newPeople(t, rows, nil)

	// One row on page 1 and one on page 2 selected beforehand.
	tbl.ToggleRowSelection(rows[3])
	tbl.ToggleRowSelection(rows[12])

	tbl.ToggleSelectAll() // partial -> all of page 1
	if tbl.SelectedCount() != 11 {
		t.Fatalf("SelectedCount() = %d, want 11", tbl.SelectedCount())
	}

	tbl.ToggleSelectAll() // all -> none of page 1
	if diff := cmp.Diff([]string{"p12"}, names(tbl.SelectedRows())); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleSelectAll_IdempotentFromFullOrEmpty(t *testing.T) {
	rows := generatePeople(8)
	tbl := newPeople(t, rows, nil)

	before := names(tbl.SelectedRows())
	tbl.ToggleSelectAll()
	tbl.ToggleSelectAll()
	if diff := cmp.Diff(before, names(tbl.SelectedRows())); diff != "" {
		t.Errorf("empty page not restored (-want +got):\n%s", diff)
	}

	tbl.ToggleSelectAll()
	full := names(tbl.SelectedRows())
	tbl.ToggleSelectAll()
	tbl.ToggleSelectAll()
	if diff := cmp.Diff(full, names(tbl.SelectedRows())); diff != "" {
		t.Errorf("full page not restored (-want +got):\n%s", diff)
	}
}

func TestSelection_DisabledIsNoop(t *testing.T) {
	rows := generatePeople(3)
	tbl := newPeople(t, rows, func(o *Options[*person]) { o.Selectable = false })

	tbl.ToggleRowSelection(rows[0])
	tbl.ToggleSelectAll()
	if tbl.SelectedCount() != 0 {
		t.Errorf("SelectedCount() = %d, want 0", tbl.SelectedCount())
	}
}

func TestClearSelection(t *testing.T) {
	rows := generatePeople(3)
	tbl := newPeople(t, rows, nil)
	tbl.ToggleSelectAll()
	tbl.ClearSelection()
	if tbl.SelectedCount() != 0 {
		t.Errorf("SelectedCount() = %d, want 0", tbl.SelectedCount())
	}
}
