package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonMunkholm/bizdash/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resettable struct {
	store.Store
	src      store.Store
	deadline bool
	err      error
}

func (r *resettable) Reset(ctx context.Context, src store.Store) (int64, error) {
	r.src = src
	_, r.deadline = ctx.Deadline()
	if r.err != nil {
		return 0, r.err
	}
	rows, _ := src.Businesses(ctx)
	return int64(len(rows)), nil
}

func TestReset(t *testing.T) {
	seed := store.NewMemory(store.SeedOptions{Seed: 1, Businesses: 7, Users: 2, Now: time.Now()})
	st := &resettable{}

	n, err := Reset(t.Context(), st, seed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Same(t, seed, st.src)
	assert.True(t, st.deadline, "reset runs under ResetTimeout")
}

func TestReset_Errors(t *testing.T) {
	seed := store.NewMemoryWith(nil, nil)

	_, err := Reset(t.Context(), seed, seed)
	assert.ErrorIs(t, err, ErrNotResettable)

	boom := errors.New("boom")
	_, err = Reset(t.Context(), &resettable{err: boom}, seed)
	assert.ErrorIs(t, err, boom)
}
