package datatable

import (
	"math"
	"testing"
	"time"
)

type status string

// ref has a pointer-receiver String, so a nil *ref would panic if called.
type ref struct{ code string }

func (r *ref) String() string { return "ref-" + r.code }

// brokenStringer panics in String despite being a non-nil value.
type brokenStringer struct{ m map[string]*ref }

func (b brokenStringer) String() string { return b.m["x"].code }

func mustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCompareValues(t *testing.T) {
	five := 5
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 1, 2, -1},
		{"int vs float", 2, 1.5, 1},
		{"strings", "b", "a", 1},
		{"equal strings", "a", "a", 0},
		{"named string", status("Emitido"), status("Venta Efectuado"), -1},
		{"bools", false, true, -1},
		{"times", mustDate("2024-01-01"), mustDate("2023-01-01"), 1},
		{"nil first", nil, 1, -1},
		{"nil pointer is nil", (*int)(nil), nil, 0},
		{"pointer deref", &five, 4, 1},
		{"number before string", 10, "1", -1},
		{"zero time is nil", time.Time{}, nil, 0},
		{"int64 above 2^53", int64(1<<53 + 1), int64(1 << 53), 1},
		{"uint64 above 2^53", uint64(1<<53 + 1), uint64(1 << 53), 1},
		{"max uint64 vs max int64", uint64(math.MaxUint64), int64(math.MaxInt64), 1},
		{"negative int vs uint", -1, uint(0), -1},
		{"uint vs negative int", uint(0), -1, 1},
		{"float vs uint", 0.5, uint(1), -1},
		{"nil stringer pointer is nil", (*ref)(nil), nil, 0},
		{"nil stringer sorts first", (*ref)(nil), &ref{code: "a"}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compareValues(tt.a, tt.b); got != tt.want {
				t.Errorf("compareValues(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScalarText(t *testing.T) {
	tests := []struct {
		in     any
		want   string
		wantOK bool
	}{
		{"x", "x", true},
		{42, "42", true},
		{1.25, "1.25", true},
		{false, "false", true},
		{mustDate("2024-02-29"), "2024-02-29", true},
		{nil, "", false},
		{int64(1<<53 + 1), "9007199254740993", true},
		{uint64(math.MaxUint64), "18446744073709551615", true},
		{(*ref)(nil), "", false},
		{&ref{code: "7"}, "ref-7", true},
		{brokenStringer{}, "", false},
		{struct{ A int }{1}, "", false},
		{map[string]int{"a": 1}, "", false},
	}

	for _, tt := range tests {
		got, ok := scalarText(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("scalarText(%v) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSearchText_CompositeFallsBackToFmt(t *testing.T) {
	got := searchText(struct{ Name string }{"Ana"})
	if got != "{Ana}" {
		t.Errorf("searchText = %q, want %q", got, "{Ana}")
	}
}
