package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/google/uuid"
)

// seedNamespace derives stable row IDs for generated rows.
var seedNamespace = uuid.MustParse("6f1c2b0e-8d4a-4c57-9a53-2f0e3b7d9c11")

// SeedOptions controls the rows generated by NewMemory.
type SeedOptions struct {
	Seed       int64
	Businesses int
	Users      int
	Now        time.Time // Dates are spread over the 90 days before Now
}

// Memory is a Store backed by slices guarded by a mutex.
type Memory struct {
	mu         sync.RWMutex
	businesses []*business.Business
	users      []*business.User
}

// NewMemory returns a store holding deterministic generated rows.
// The same SeedOptions always produce the same rows.
func NewMemory(opts SeedOptions) *Memory {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	r := rand.New(rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed)^0x9e3779b97f4a7c15))
	return &Memory{
		businesses: seedBusinesses(r, opts),
		users:      seedUsers(r, opts),
	}
}

// NewMemoryWith returns a store holding the given rows.
func NewMemoryWith(businesses []*business.Business, users []*business.User) *Memory {
	return &Memory{
		businesses: slices.Clone(businesses),
		users:      slices.Clone(users),
	}
}

func (m *Memory) Businesses(_ context.Context) ([]*business.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.businesses), nil
}

func (m *Memory) Users(_ context.Context) ([]*business.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.users), nil
}

// AddBusiness appends b after validating it.
func (m *Memory) AddBusiness(_ context.Context, b *business.Business) error {
	if err := prepareBusiness(b); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.ContainsFunc(m.businesses, func(existing *business.Business) bool {
		return existing.ID == b.ID
	}) {
		return fmt.Errorf("%w: duplicate id %s", ErrInvalidBusiness, b.ID)
	}
	m.businesses = append(m.businesses, b)
	return nil
}

func (m *Memory) Close() {}

var (
	firstNames = []string{"María", "Carlos", "Ana", "Luis", "Camila", "Andrés", "Valentina", "Juan", "Laura", "Santiago", "Daniela", "Felipe"}
	lastNames  = []string{"López", "Pérez", "Gómez", "Rodríguez", "Martínez", "García", "Hernández", "Torres", "Ramírez", "Castro"}
	products   = []string{"Seguro de vida", "Seguro de auto", "Crédito hipotecario", "Crédito de libre inversión", "Tarjeta de crédito", "CDT", "Póliza de salud"}
	terms      = []string{"6 meses", "12 meses", "24 meses", "36 meses", "60 meses"}
	domains    = []string{"correo.co", "empresa.com.co", "gmail.com", "outlook.com"}
	roles      = []string{"Administrador", "Agente", "Supervisor", "Analista"}
)

func pick[T any](r *rand.Rand, from []T) T {
	return from[r.IntN(len(from))]
}

func personName(r *rand.Rand) string {
	return pick(r, firstNames) + " " + pick(r, lastNames)
}

func emailFor(name, domain string) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	local = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n").Replace(local)
	return local + "@" + domain
}

func seedBusinesses(r *rand.Rand, opts SeedOptions) []*business.Business {
	agents := make([]business.Agent, 8)
	for i := range agents {
		name := personName(r)
		agents[i] = business.Agent{Name: name, Avatar: fmt.Sprintf("/static/avatars/%d.svg", i+1)}
	}

	out := make([]*business.Business, opts.Businesses)
	for i := range out {
		client := personName(r)
		status := business.StatusIssued
		if r.IntN(3) == 0 {
			status = business.StatusSold
		}
		day := opts.Now.AddDate(0, 0, -r.IntN(90))
		out[i] = &business.Business{
			ID:             uuid.NewSHA1(seedNamespace, fmt.Appendf(nil, "business-%d", i)).String(),
			Identification: fmt.Sprintf("%010d", 1_000_000_000+r.IntN(8_999_999_999)),
			User:           pick(r, agents),
			Email:          emailFor(client, pick(r, domains)),
			TermPeriod:     pick(r, terms),
			Date:           time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Value:          float64(50_000 * (1 + r.IntN(400))),
			Product:        pick(r, products),
			Status:         status,
		}
	}
	return out
}

func seedUsers(r *rand.Rand, opts SeedOptions) []*business.User {
	out := make([]*business.User, opts.Users)
	for i := range out {
		name := personName(r)
		var last time.Time
		if r.IntN(5) != 0 {
			last = opts.Now.Add(-time.Duration(r.IntN(30*24)) * time.Hour).UTC()
		}
		out[i] = &business.User{
			ID:        uuid.NewSHA1(seedNamespace, fmt.Appendf(nil, "user-%d", i)).String(),
			Name:      name,
			Email:     emailFor(name, "bizdash.co"),
			Role:      pick(r, roles),
			LastLogin: last,
		}
	}
	return out
}
