package datatable

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExport_UsesFilteredSetNotPage(t *testing.T) {
	rows := make([]*person, 23)
	for i := range rows {
		dept := "other"
		if i < 15 {
			dept = "sales"
		}
		rows[i] = &person{Name: fmt.Sprintf("n%02d", i), Dept: dept, Age: i}
	}

	var hooked int
	tbl := newPeople(t, rows, func(o *Options[*person]) {
		o.OnExport = func(r []*person) { hooked = len(r) }
	})
	tbl.SetSearchQuery("sales")
	tbl.SetPage(2)

	var buf bytes.Buffer
	if err := tbl.Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 16 {
		t.Errorf("exported %d lines, want 16 (header + 15 rows)", len(lines))
	}
	if hooked != 15 {
		t.Errorf("OnExport received %d rows, want 15", hooked)
	}
}

func TestExport_Disabled(t *testing.T) {
	tbl := newPeople(t, generatePeople(2), func(o *Options[*person]) { o.Exportable = false })
	if err := tbl.Export(&bytes.Buffer{}); !errors.Is(err, ErrExportDisabled) {
		t.Errorf("Export() error = %v, want ErrExportDisabled", err)
	}
}

func TestWriteCSV_Format(t *testing.T) {
	type rec struct {
		Title string
		Note  *string
		Owner struct{ Name string }
	}
	note := `said "hi", left`
	rows := []*rec{
		{Title: "plain", Note: &note},
		{Title: "", Note: nil},
	}
	rows[0].Owner.Name = "Ana"

	cols := []Column[*rec]{
		{Key: "title", Header: "Title", Value: func(r *rec) any { return r.Title }},
		{Key: "note", Header: "Note, long", Value: func(r *rec) any { return r.Note }},
		{Key: "owner", Header: "Owner", Value: func(r *rec) any { return r.Owner }},
		{Key: "owner_name", Header: "Owner name", Value: func(r *rec) any { return r.Owner },
			Export: func(r *rec) string { return r.Owner.Name }},
		{Key: "actions", Header: "Actions", Value: func(r *rec) any { return r }, NoExport: true},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, cols, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := strings.Join([]string{
		`Title,"Note, long",Owner,Owner name`,
		`"plain","said ""hi"", left","","Ana"`,
		`"","","",""`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV_ScalarFormatting(t *testing.T) {
	type rec struct{ V any }
	rows := []*rec{{V: 3}, {V: 2.5}, {V: true}, {V: mustDate("2024-03-05")}}
	cols := []Column[*rec]{{Key: "v", Header: "V", Value: func(r *rec) any { return r.V }}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, cols, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	want := "V\n\"3\"\n\"2.5\"\n\"true\"\n\"2024-03-05\"\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() = %q, want %q", buf.String(), want)
	}
}

func TestRecords_VisibleExportableColumns(t *testing.T) {
	tbl := newPeople(t, []*person{{Name: "ana", Dept: "ops", Age: 31}}, nil)
	cols := tbl.columns
	cols[1].Hideable = true
	tbl.ToggleColumn("dept")

	got := tbl.Records(tbl.View().Rows)
	want := []map[string]string{{"name": "ana", "age": "31"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Records() mismatch (-want +got):\n%s", diff)
	}
}
