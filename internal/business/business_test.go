package business

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/bizdash/internal/datatable"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBusinesses() []*Business {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	return []*Business{
		{ID: "1", Identification: "1020304050", User: Agent{Name: "María López"}, Email: "cliente1@correo.co", TermPeriod: "12 meses", Date: day(3), Value: 1500000, Product: "Seguro de vida", Status: StatusIssued},
		{ID: "2", Identification: "5566778899", User: Agent{Name: "Carlos Pérez"}, Email: "ana@empresa.co", TermPeriod: "6 meses", Date: day(1), Value: 250000, Product: "Crédito", Status: StatusSold},
		{ID: "3", Identification: "1122334455", User: Agent{Name: "Ana Gómez"}, Email: "luis@correo.co", TermPeriod: "24 meses", Date: day(2), Value: 980000, Product: "Seguro de auto", Status: StatusIssued},
	}
}

func TestFilter(t *testing.T) {
	all := sampleBusinesses()

	tests := []struct {
		name   string
		params SearchParams
		want   []string
	}{
		{"agent", SearchParams{Type: SearchAgent, Criteria: "ana"}, []string{"3"}},
		{"client", SearchParams{Type: SearchClient, Criteria: "ANA@"}, []string{"2"}},
		{"id", SearchParams{Type: SearchID, Criteria: "1122"}, []string{"3"}},
		{"show all", SearchParams{Type: SearchID, Criteria: "  "}, []string{"1", "2", "3"}},
		{"no match", SearchParams{Type: SearchAgent, Criteria: "zz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, b := range Filter(all, tt.params) {
				got = append(got, b.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSearchType(t *testing.T) {
	st, err := ParseSearchType("")
	require.NoError(t, err)
	assert.Equal(t, SearchAgent, st)

	st, err = ParseSearchType("id")
	require.NoError(t, err)
	assert.Equal(t, SearchID, st)

	_, err = ParseSearchType("phone")
	assert.Error(t, err)
}

func TestAgent(t *testing.T) {
	a := Agent{Name: "María  José López"}
	assert.Equal(t, "MJL", a.Initials())
	assert.Equal(t, "María  José López", a.String())
}

func TestFormatCOP(t *testing.T) {
	got := FormatCOP(1500000.4)
	require.True(t, strings.HasPrefix(got, "$ "), "got %q", got)

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, got)
	assert.Equal(t, "1500000", digits)
	assert.NotContains(t, got, ",", "es-CO groups with dots, not commas")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "05/03/2024", FormatDate(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestBusinessTable(t *testing.T) {
	opts := datatable.DefaultOptions[*Business]()
	opts.RowKey = func(b *Business) string { return b.ID }
	tbl, err := datatable.New(sampleBusinesses(), BusinessColumns(nil), opts)
	require.NoError(t, err)

	// The nested user column is searchable and sortable by agent name.
	tbl.SetSearchQuery("gómez")
	v := tbl.View()
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "3", v.Rows[0].ID)

	tbl.SetSearchQuery("")
	tbl.SetSort("user")
	v = tbl.View()
	assert.Equal(t, []string{"3", "2", "1"}, []string{v.Rows[0].ID, v.Rows[1].ID, v.Rows[2].ID})

	tbl.SetSort("value")
	v = tbl.View()
	assert.Equal(t, "2", v.Rows[0].ID)

	var buf bytes.Buffer
	require.NoError(t, tbl.Export(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Identificación,Usuario,Email,Plazo,Fecha,Valor,Producto,Estado", lines[0])
	assert.Equal(t, `"5566778899","Carlos Pérez","ana@empresa.co","6 meses","2024-06-01","250000","Crédito","Venta Efectuado"`, lines[1])
}

func TestBusinessColumns_Actions(t *testing.T) {
	cols := BusinessColumns(func(b *Business) templ.Component { return datatable.Text("edit " + b.ID) })
	last := cols[len(cols)-1]
	assert.Equal(t, "actions", last.Key)
	assert.True(t, last.NoExport)

	var buf bytes.Buffer
	require.NoError(t, datatable.RenderCell(last, sampleBusinesses()[0]).Render(context.Background(), &buf))
	assert.Equal(t, "edit 1", buf.String())
}

func TestAgentCell_Escapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, AgentCell(Agent{Name: `<script>`, Avatar: `x" onerror="y`}).Render(context.Background(), &buf))
	out := buf.String()
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, `x" onerror`)
}

func TestOverview(t *testing.T) {
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	all := []*Business{
		{Date: now.AddDate(0, 0, -1), Value: 100, Status: StatusSold},
		{Date: now.AddDate(0, 0, -2), Value: 100, Status: StatusIssued},
		{Date: now.AddDate(0, 0, -40), Value: 100, Status: StatusIssued},
	}

	stats := Overview(all, now)
	require.Len(t, stats, 4)

	assert.Equal(t, "Total negocios", stats[0].Title)
	assert.Equal(t, "3", stats[0].Value)
	assert.Equal(t, 100.0, stats[0].Change)
	assert.Equal(t, TrendUp, stats[0].Trend)
	assert.Equal(t, "+100%", stats[0].ChangeLabel())

	assert.Equal(t, "2", stats[2].Value, "issued count")
	assert.Equal(t, 0.0, stats[2].Change)
	assert.Equal(t, TrendNeutral, stats[2].Trend)

	assert.Equal(t, "1", stats[3].Value, "sold count")
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 0.0, percentChange(0, 0))
	assert.Equal(t, 100.0, percentChange(5, 0))
	assert.Equal(t, -50.0, percentChange(1, 2))
	assert.Equal(t, 33.3, percentChange(4, 3))
}
