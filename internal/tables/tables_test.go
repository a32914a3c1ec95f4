package tables

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/JonMunkholm/bizdash/internal/datatable"
	"github.com/JonMunkholm/bizdash/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *store.Memory {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return store.NewMemoryWith(
		[]*business.Business{
			{ID: "b1", Identification: "100", User: business.Agent{Name: "Ana Gómez"}, Email: "a@x.co", Date: day, Value: 300, Status: business.StatusIssued},
			{ID: "b2", Identification: "200", User: business.Agent{Name: "Luis Torres"}, Email: "b@x.co", Date: day, Value: 100, Status: business.StatusSold},
			{ID: "b3", Identification: "300", User: business.Agent{Name: "Ana Castro"}, Email: "c@x.co", Date: day, Value: 200, Status: business.StatusIssued},
		},
		[]*business.User{
			{ID: "u1", Name: "Camila", Email: "camila@bizdash.co", Role: "Agente"},
		},
	)
}

func mount(t *testing.T, key string, env Env) Handle {
	t.Helper()
	def, ok := Get(key)
	require.True(t, ok, "table %s registered", key)
	h, err := def.Mount(env)
	require.NoError(t, err)
	require.NoError(t, h.Refresh(context.Background()))
	return h
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{BusinessesKey, UsersKey}, Keys())

	_, ok := Get("missing")
	assert.False(t, ok)

	assert.Panics(t, func() {
		Register(Definition{Key: BusinessesKey, Mount: mountBusinesses})
	})
	assert.Panics(t, func() { Register(Definition{Key: "nomount"}) })
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/t/negocios", Path("negocios"))
	assert.Equal(t, "/t/negocios/rows/a%2Fb/click", Path("negocios", "rows", "a/b", "click"))
}

func TestMountedBusinesses_Intents(t *testing.T) {
	h := mount(t, BusinessesKey, Env{Store: testStore(), PageSize: 2, PageSizeOptions: []int{2, 4}})

	m := h.Model()
	assert.Equal(t, "Negocios", m.Title)
	assert.Equal(t, 2, m.Controls.TotalPages)
	assert.Equal(t, []int{2, 4}, m.Controls.PageSizeOptions)
	require.Len(t, m.Rows, 2)
	assert.Equal(t, "b1", m.Rows[0].Key)

	h.Sort("value")
	col, dir := h.SortState()
	assert.Equal(t, "value", col)
	assert.Equal(t, datatable.SortAsc, dir)
	assert.Equal(t, "b2", h.Model().Rows[0].Key)

	h.SetPage(2)
	assert.Equal(t, "b1", h.Model().Rows[0].Key)

	h.Search("ana")
	m = h.Model()
	assert.Equal(t, 1, m.Controls.Page, "search resets the page")
	assert.Equal(t, 2, m.Controls.FilteredCount)

	assert.True(t, h.ToggleRow("b3"))
	assert.False(t, h.ToggleRow("nope"))
	assert.Equal(t, 1, h.Model().Controls.SelectedCount)

	assert.True(t, h.ToggleColumn("email"))
	for _, hc := range h.Model().Controls.Headers {
		assert.NotEqual(t, "email", hc.Key)
	}
	assert.False(t, h.ToggleColumn("identification"), "not hideable")

	assert.True(t, h.SetPageSize(4))
	assert.False(t, h.SetPageSize(0))
	assert.False(t, h.SetPageSize(3), "not an offered size")
}

func TestMountedBusinesses_RecordsAndExport(t *testing.T) {
	var notices []Notice
	h := mount(t, BusinessesKey, Env{Store: testStore(), Notify: func(n Notice) { notices = append(notices, n) }})

	rec := h.Model().Records[0]
	assert.Equal(t, "Ana Gómez", rec["user"])
	assert.Equal(t, "300", rec["value"])
	assert.NotContains(t, rec, "actions")

	var buf bytes.Buffer
	require.NoError(t, h.Export(&buf))
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))

	require.Len(t, notices, 1)
	assert.Equal(t, LevelSuccess, notices[0].Level)
	assert.Contains(t, notices[0].Message, "3 filas")
}

func TestMountedBusinesses_ClickNotifies(t *testing.T) {
	var notices []Notice
	h := mount(t, BusinessesKey, Env{Store: testStore(), Notify: func(n Notice) { notices = append(notices, n) }})

	assert.True(t, h.ClickRow("b2"))
	assert.False(t, h.ClickRow("zz"))
	require.Len(t, notices, 1)
	assert.Equal(t, "Negocio 200 de Luis Torres", notices[0].Message)
}

func TestBusinessTable_ApplySearch(t *testing.T) {
	h := mount(t, BusinessesKey, Env{Store: testStore(), PageSize: 1})
	fs, ok := h.(FormSearcher)
	require.True(t, ok)

	h.SetPage(3)
	h.ToggleRow("b3")
	require.NoError(t, fs.ApplySearch(context.Background(), business.SearchParams{Type: business.SearchID, Criteria: "300"}))

	m := h.Model()
	assert.Equal(t, 1, m.Controls.Total)
	assert.Equal(t, 1, m.Controls.Page)
	assert.Equal(t, 1, m.Controls.SelectedCount, "surviving selection is kept")
	assert.Equal(t, "300", fs.SearchParams().Criteria)

	require.NoError(t, fs.ApplySearch(context.Background(), business.SearchParams{Type: business.SearchAgent, Criteria: "luis"}))
	assert.Equal(t, 0, h.Model().Controls.SelectedCount, "pruned with its row")

	require.NoError(t, fs.ApplySearch(context.Background(), business.SearchParams{}))
	assert.Equal(t, 3, h.Model().Controls.Total)
}

type failingStore struct{ store.Store }

func (failingStore) Businesses(context.Context) ([]*business.Business, error) {
	return nil, errors.New("boom")
}

func TestRefresh_Error(t *testing.T) {
	def, _ := Get(BusinessesKey)
	h, err := def.Mount(Env{Store: failingStore{}})
	require.NoError(t, err)

	err = h.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load negocios")
	assert.False(t, h.Model().Controls.Loading)
}

func TestMountedUsers(t *testing.T) {
	h := mount(t, UsersKey, Env{Store: testStore()})
	m := h.Model()
	require.Len(t, m.Rows, 1)
	assert.Equal(t, "u1", m.Rows[0].Key)

	h.Search("nobody")
	m = h.Model()
	assert.True(t, m.Controls.Empty)
	assert.Equal(t, "No hay usuarios registrados", m.Controls.EmptyMessage)
}

func TestSortTo(t *testing.T) {
	h := mount(t, BusinessesKey, Env{Store: testStore()})

	tests := []struct {
		column  string
		dir     datatable.SortDirection
		wantCol string
		wantDir datatable.SortDirection
	}{
		{"value", datatable.SortDesc, "value", datatable.SortDesc},
		{"value", datatable.SortAsc, "value", datatable.SortAsc},
		{"date", datatable.SortDesc, "date", datatable.SortDesc},
		{"", datatable.SortNone, "", datatable.SortNone},
		{"actions", datatable.SortAsc, "", datatable.SortNone},
	}

	for _, tt := range tests {
		SortTo(h, tt.column, tt.dir)
		col, dir := h.SortState()
		assert.Equal(t, tt.wantCol, col, "sort to %s %s", tt.column, tt.dir)
		assert.Equal(t, tt.wantDir, dir, "sort to %s %s", tt.column, tt.dir)
	}
}

func TestRefresh_LeavesLoadingToCaller(t *testing.T) {
	h := mount(t, UsersKey, Env{Store: testStore()})
	m, ok := h.(*Mounted[*business.User])
	require.True(t, ok)

	m.Table().SetLoading(true)
	require.NoError(t, m.Refresh(context.Background()))
	assert.True(t, m.Model().Controls.Loading, "caller-owned flag survives a refresh")
	assert.Equal(t, 1, m.Model().Controls.Total)

	m.Table().SetLoading(false)
	assert.False(t, m.Model().Controls.Loading)
}
