package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/JonMunkholm/bizdash/internal/store"
	"github.com/JonMunkholm/bizdash/internal/tables"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func businessModel(t *testing.T, rows []*business.Business, pageSize int, intents func(tables.Handle)) tables.Model {
	t.Helper()
	def, ok := tables.Get(tables.BusinessesKey)
	require.True(t, ok)
	h, err := def.Mount(tables.Env{Store: store.NewMemoryWith(rows, nil), PageSize: pageSize})
	require.NoError(t, err)
	require.NoError(t, h.Refresh(context.Background()))
	if intents != nil {
		intents(h)
	}
	return h.Model()
}

func manyBusinesses(n int) []*business.Business {
	out := make([]*business.Business, n)
	for i := range out {
		out[i] = &business.Business{
			ID:             "id" + string(rune('a'+i)),
			Identification: "100" + string(rune('0'+i%10)),
			User:           business.Agent{Name: "Agente"},
			Date:           time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			Value:          1000,
			Status:         business.StatusIssued,
		}
	}
	return out
}

func TestTable_Structure(t *testing.T) {
	m := businessModel(t, manyBusinesses(12), 5, func(h tables.Handle) {
		h.Sort("value")
		h.ToggleRow("ida")
	})
	out := render(t, Table(m))

	assert.Contains(t, out, `id="table-negocios"`)
	assert.Contains(t, out, `action="/t/negocios/search"`)
	assert.Contains(t, out, `action="/t/negocios/sort/value"`)
	assert.Contains(t, out, `aria-label="ascendente"`)
	assert.Contains(t, out, `href="/t/negocios/export"`)
	assert.Contains(t, out, `1 seleccionados`)
	assert.Contains(t, out, `aria-checked="mixed"`, "one of five rows on the page is selected")
	assert.Contains(t, out, `Mostrando 1–5 de 12`)
	assert.Contains(t, out, `aria-current="page"`)
	assert.Contains(t, out, `Columnas`)
	assert.Equal(t, 5, strings.Count(out, `<tr class="row`))
	assert.NotContains(t, out, `action="/t/negocios/sort/actions"`, "actions column is not sortable")
}

func TestTable_FirstPageDisablesPrevious(t *testing.T) {
	out := render(t, Table(businessModel(t, manyBusinesses(3), 10, nil)))
	assert.Contains(t, out, `action="/t/negocios/page/0" hx-post="/t/negocios/page/0" hx-target="#table-negocios" class="intent"><button type="submit" class="btn btn-outline btn-sm" disabled>Anterior`)
}

func TestTable_Empty(t *testing.T) {
	m := businessModel(t, manyBusinesses(3), 10, func(h tables.Handle) { h.Search("zzz") })
	out := render(t, Table(m))
	assert.Contains(t, out, `class="empty">No hay datos disponibles</td>`)
	assert.NotContains(t, out, `class="pagination"`)
}

func TestTable_EscapesSearchQuery(t *testing.T) {
	m := businessModel(t, manyBusinesses(1), 10, func(h tables.Handle) { h.Search(`"><script>`) })
	out := render(t, Table(m))
	assert.NotContains(t, out, `"><script>`)
	assert.Contains(t, out, `&#34;&gt;&lt;script&gt;`)
}

func TestStatsOverview(t *testing.T) {
	out := render(t, StatsOverview([]business.StatsData{
		{Title: "Total negocios", Value: "12", Change: 10, Trend: business.TrendUp, Description: "vs. 30 días anteriores"},
	}))
	assert.Contains(t, out, "Total negocios")
	assert.Contains(t, out, "trend-up")
	assert.Contains(t, out, "+10%")
}

func TestLayout(t *testing.T) {
	out := render(t, Layout(Page{
		Title: "Negocios",
		Theme: ThemeDark,
		Nav:   []NavItem{{Title: "Negocios", URL: "/negocios", Active: true}},
	}, templ.Raw("<p>body</p>")))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `<html lang="es" class="dark">`)
	assert.Contains(t, out, `class="nav-link active"`)
	assert.Contains(t, out, "Modo claro")
	assert.Contains(t, out, "<p>body</p>")
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeDark, Theme("").Toggle())
}

func TestBusinessManagement_KeepsCriteria(t *testing.T) {
	out := render(t, BusinessManagement(business.SearchParams{Type: business.SearchClient, Criteria: "ana@"}))
	assert.Contains(t, out, `value="client" checked`)
	assert.NotContains(t, out, `value="agent" checked`)
	assert.Contains(t, out, `value="ana@"`)
	assert.Contains(t, out, "Mostrar todos")
	assert.Contains(t, out, `action="/negocios/new"`)
}

func TestErrorAlert(t *testing.T) {
	out := render(t, ErrorAlert("Tabla no encontrada", "Verifique la dirección", "TBL001"))
	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, "TBL001")
}

func TestLayout_RendersNotices(t *testing.T) {
	out := render(t, Layout(Page{
		Title:   "Negocios",
		Notices: []tables.Notice{{Level: tables.LevelSuccess, Message: "Exportadas 3 filas de <Negocios>"}},
	}, nil))
	assert.Contains(t, out, `<div class="toast toast-success" role="status">Exportadas 3 filas de &lt;Negocios&gt;</div>`)
}

func TestTable_LoadingMarksBusy(t *testing.T) {
	m := businessModel(t, manyBusinesses(3), 10, nil)
	assert.NotContains(t, render(t, Table(m)), `aria-busy`)

	m.Controls.Loading = true
	out := render(t, Table(m))
	assert.Contains(t, out, `class="card datatable" aria-busy="true">`)
	assert.Contains(t, out, `class="loading">Cargando...</td>`)
	assert.NotContains(t, out, `<tr class="row`)
}

func TestTable_RowActions(t *testing.T) {
	out := render(t, Table(businessModel(t, manyBusinesses(1), 10, nil)))
	assert.Contains(t, out, `hx-post="/t/negocios/rows/ida/click" hx-target="#table-negocios" hx-swap="outerHTML">Editar</button>`)
}

func TestListingPage(t *testing.T) {
	m := businessModel(t, manyBusinesses(2), 10, nil)

	out := render(t, ListingPage(nil, m))
	assert.True(t, strings.HasPrefix(out, `<section id="table-negocios"`))

	out = render(t, ListingPage(BusinessManagement(business.SearchParams{}), m))
	assert.Less(t, strings.Index(out, `action="/negocios/new"`), strings.Index(out, `id="table-negocios"`))
	assert.Contains(t, out, `value="agent" checked`)
}
