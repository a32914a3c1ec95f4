package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/bizdash/internal/datatable"
	"github.com/JonMunkholm/bizdash/internal/store"
	"github.com/JonMunkholm/bizdash/internal/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newManager(clock *fakeClock) *Manager {
	st := store.NewMemory(store.SeedOptions{Seed: 3, Businesses: 12, Users: 4, Now: clock.t})
	return NewManager(Options{
		TTL:   time.Minute,
		Env:   tables.Env{Store: st, PageSize: 5},
		Clock: clock.Now,
	})
}

func TestResolve(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newManager(clock)

	s, created := m.Resolve("")
	require.True(t, created)
	require.NotEmpty(t, s.ID)

	again, created := m.Resolve(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := m.Resolve("forged")
	assert.True(t, created)
	assert.NotEqual(t, "forged", other.ID)
	assert.Equal(t, 2, m.Len())
}

func TestResolve_ExpiredStartsOver(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newManager(clock)

	s, _ := m.Resolve("")
	clock.t = clock.t.Add(time.Minute)

	fresh, created := m.Resolve(s.ID)
	assert.True(t, created)
	assert.NotEqual(t, s.ID, fresh.ID)
	assert.Equal(t, 1, m.Len())
}

func TestSweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newManager(clock)

	old, _ := m.Resolve("")
	clock.t = clock.t.Add(45 * time.Second)
	recent, _ := m.Resolve("")
	clock.t = clock.t.Add(30 * time.Second)

	assert.Equal(t, 1, m.Sweep())
	_, created := m.Resolve(recent.ID)
	assert.False(t, created)
	_, created = m.Resolve(old.ID)
	assert.True(t, created)
}

func TestWithTable_StateIsPerSession(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newManager(clock)
	ctx := context.Background()

	a, _ := m.Resolve("")
	b, _ := m.Resolve("")

	require.NoError(t, m.WithTable(ctx, a, tables.BusinessesKey, func(h tables.Handle) error {
		h.SetPage(2)
		return nil
	}))

	var pageA, pageB int
	require.NoError(t, m.WithTable(ctx, a, tables.BusinessesKey, func(h tables.Handle) error {
		pageA = h.Model().Controls.Page
		return nil
	}))
	require.NoError(t, m.WithTable(ctx, b, tables.BusinessesKey, func(h tables.Handle) error {
		pageB = h.Model().Controls.Page
		return nil
	}))

	assert.Equal(t, 2, pageA)
	assert.Equal(t, 1, pageB)
}

func TestWithTable_Errors(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newManager(clock)
	s, _ := m.Resolve("")

	err := m.WithTable(context.Background(), s, "nope", func(tables.Handle) error { return nil })
	assert.ErrorIs(t, err, ErrUnknownTable)

	sentinel := errors.New("intent failed")
	err = m.WithTable(context.Background(), s, tables.UsersKey, func(tables.Handle) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestNotices(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newManager(clock)
	s, _ := m.Resolve("")

	require.NoError(t, m.WithTable(context.Background(), s, tables.BusinessesKey, func(h tables.Handle) error {
		key := h.Model().Rows[0].Key
		assert.True(t, h.ClickRow(key))
		return nil
	}))

	notices := s.DrainNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, tables.LevelInfo, notices[0].Level)
	assert.Empty(t, s.DrainNotices())

	for range maxNotices + 5 {
		s.Notify(tables.Notice{Message: "x"})
	}
	assert.Len(t, s.DrainNotices(), maxNotices)
}

func TestWithTable_ConcurrentIntents(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newManager(clock)
	s, _ := m.Resolve("")
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.WithTable(ctx, s, tables.BusinessesKey, func(h tables.Handle) error {
				h.Sort("value")
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, m.WithTable(ctx, s, tables.BusinessesKey, func(h tables.Handle) error {
		col, dir := h.SortState()
		assert.Equal(t, "value", col)
		assert.Equal(t, datatable.SortDesc, dir, "eight clicks: two full cycles then asc, desc")
		return nil
	}))
}

func TestMount_Detached(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newManager(clock)
	ctx := context.Background()

	h, err := m.Mount(ctx, tables.BusinessesKey)
	require.NoError(t, err)
	assert.Equal(t, 12, h.Model().Controls.Total)
	assert.Zero(t, m.Len(), "detached tables create no session")

	h.Sort("value")
	other, err := m.Mount(ctx, tables.BusinessesKey)
	require.NoError(t, err)
	col, _ := other.SortState()
	assert.Empty(t, col)

	_, err = m.Mount(ctx, "missing")
	assert.ErrorIs(t, err, ErrUnknownTable)
}
