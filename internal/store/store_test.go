package store

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func TestNewMemory_Deterministic(t *testing.T) {
	opts := SeedOptions{Seed: 7, Businesses: 25, Users: 5, Now: fixedNow}
	a, err := NewMemory(opts).Businesses(context.Background())
	require.NoError(t, err)
	b, err := NewMemory(opts).Businesses(context.Background())
	require.NoError(t, err)

	require.Len(t, a, 25)
	assert.Equal(t, a, b)

	other, err := NewMemory(SeedOptions{Seed: 8, Businesses: 25, Now: fixedNow}).Businesses(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, a[0].Identification, other[0].Identification)
}

func TestNewMemory_RowsAreWellFormed(t *testing.T) {
	m := NewMemory(SeedOptions{Seed: 1, Businesses: 50, Users: 10, Now: fixedNow})
	rows, err := m.Businesses(context.Background())
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, b := range rows {
		assert.NoError(t, prepareBusiness(b), "seed row %s", b.ID)
		_, err := uuid.Parse(b.ID)
		assert.NoError(t, err)
		assert.False(t, ids[b.ID], "duplicate id %s", b.ID)
		ids[b.ID] = true

		assert.Len(t, b.Identification, 10)
		assert.False(t, b.Date.After(fixedNow))
		assert.True(t, b.Date.After(fixedNow.AddDate(0, 0, -91)))
		assert.Zero(t, math.Mod(b.Value, 50_000))
		assert.NotContains(t, b.Email, "á")
	}

	users, err := m.Users(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 10)
}

func TestMemory_BusinessesReturnsCopy(t *testing.T) {
	m := NewMemory(SeedOptions{Seed: 1, Businesses: 3, Now: fixedNow})
	rows, _ := m.Businesses(context.Background())
	rows[0] = nil

	again, _ := m.Businesses(context.Background())
	assert.NotNil(t, again[0])
}

func TestMemory_AddBusiness(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryWith(nil, nil)

	b := &business.Business{Identification: "123", User: business.Agent{Name: "Ana"}, Status: business.StatusSold, Value: 10}
	require.NoError(t, m.AddBusiness(ctx, b))
	assert.NotEmpty(t, b.ID, "an id is assigned")

	rows, _ := m.Businesses(ctx)
	require.Len(t, rows, 1)
	assert.Same(t, b, rows[0])

	dup := *b
	assert.ErrorIs(t, m.AddBusiness(ctx, &dup), ErrInvalidBusiness)
}

func TestPrepareBusiness_Rejects(t *testing.T) {
	tests := []struct {
		name string
		b    *business.Business
		want string
	}{
		{"nil", nil, "nil record"},
		{"identification", &business.Business{User: business.Agent{Name: "A"}, Status: business.StatusIssued}, "identification"},
		{"agent", &business.Business{Identification: "1", Status: business.StatusIssued}, "user name"},
		{"status", &business.Business{Identification: "1", User: business.Agent{Name: "A"}, Status: "Borrador"}, "unknown status"},
		{"value", &business.Business{Identification: "1", User: business.Agent{Name: "A"}, Status: business.StatusIssued, Value: -1}, "non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := prepareBusiness(tt.b)
			require.ErrorIs(t, err, ErrInvalidBusiness)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPgConversions(t *testing.T) {
	assert.False(t, toPgText("").Valid)
	assert.Equal(t, "x", toPgText("x").String)

	assert.False(t, toPgDate(time.Time{}).Valid)
	d := toPgDate(time.Date(2024, 3, 5, 18, 30, 0, 0, time.FixedZone("COT", -5*3600)))
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d.Time)

	assert.False(t, toPgTimestamptz(time.Time{}).Valid)

	id := uuid.NewString()
	pgID, err := toPgUUID(id)
	require.NoError(t, err)
	assert.Equal(t, id, uuidToString(pgID))
	_, err = toPgUUID("not-a-uuid")
	assert.Error(t, err)

	n, err := floatToNumeric(1500000.25)
	require.NoError(t, err)
	f, err := numericToFloat(n)
	require.NoError(t, err)
	assert.InDelta(t, 1500000.25, f, 1e-9)
}

func TestBusinessArgs_Order(t *testing.T) {
	b := &business.Business{
		ID: uuid.NewString(), Identification: "99", User: business.Agent{Name: "Ana"},
		Status: business.StatusIssued, Value: 5,
	}
	args, err := businessArgs(b)
	require.NoError(t, err)
	require.Len(t, args, len(businessColumns))
	assert.Equal(t, "99", args[1])
	assert.Equal(t, "Ana", args[2])
	assert.Equal(t, string(business.StatusIssued), args[9])
}
