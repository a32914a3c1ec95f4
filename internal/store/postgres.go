package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS businesses (
	id             UUID PRIMARY KEY,
	identification TEXT NOT NULL,
	agent_name     TEXT NOT NULL,
	agent_avatar   TEXT,
	email          TEXT,
	term_period    TEXT,
	issued_on      DATE,
	value          NUMERIC(18, 2) NOT NULL DEFAULT 0,
	product        TEXT,
	status         TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS dashboard_users (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	avatar     TEXT,
	role       TEXT,
	last_login TIMESTAMPTZ
);
`

var businessColumns = []string{
	"id", "identification", "agent_name", "agent_avatar", "email",
	"term_period", "issued_on", "value", "product", "status",
}

// Postgres is a Store reading from a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an open pool. Close closes the pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the tables when they do not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SeedIfEmpty copies src's rows into an empty database and returns the
// number of businesses copied. A database that already holds businesses
// is left alone.
func (p *Postgres) SeedIfEmpty(ctx context.Context, src Store) (int64, error) {
	var count int64
	if err := p.pool.QueryRow(ctx, "SELECT count(*) FROM businesses").Scan(&count); err != nil {
		return 0, fmt.Errorf("count businesses: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	return p.load(ctx, src, false)
}

// Reset replaces every business and user with src's rows in one
// transaction.
func (p *Postgres) Reset(ctx context.Context, src Store) (int64, error) {
	return p.load(ctx, src, true)
}

func (p *Postgres) load(ctx context.Context, src Store, truncate bool) (int64, error) {
	rows, err := src.Businesses(ctx)
	if err != nil {
		return 0, err
	}
	users, err := src.Users(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback(ctx)

	if truncate {
		if _, err := tx.Exec(ctx, "TRUNCATE businesses, dashboard_users"); err != nil {
			return 0, fmt.Errorf("truncate: %w", err)
		}
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"businesses"}, businessColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return businessArgs(rows[i])
		}))
	if err != nil {
		return 0, fmt.Errorf("copy businesses: %w", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"dashboard_users"},
		[]string{"id", "name", "email", "avatar", "role", "last_login"},
		pgx.CopyFromSlice(len(users), func(i int) ([]any, error) {
			u := users[i]
			id, err := toPgUUID(u.ID)
			if err != nil {
				return nil, err
			}
			return []any{id, u.Name, u.Email, toPgText(u.Avatar), toPgText(u.Role), toPgTimestamptz(u.LastLogin)}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy users: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit load: %w", err)
	}
	return copied, nil
}

func (p *Postgres) Businesses(ctx context.Context) ([]*business.Business, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, identification, agent_name, agent_avatar, email,
		       term_period, issued_on, value, product, status
		FROM businesses
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	var out []*business.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return out, nil
}

func (p *Postgres) Users(ctx context.Context) ([]*business.User, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, email, avatar, role, last_login
		FROM dashboard_users
		ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []*business.User
	for rows.Next() {
		var (
			id        pgtype.UUID
			avatar    pgtype.Text
			role      pgtype.Text
			lastLogin pgtype.Timestamptz
			u         business.User
		)
		if err := rows.Scan(&id, &u.Name, &u.Email, &avatar, &role, &lastLogin); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.ID = uuidToString(id)
		u.Avatar = avatar.String
		u.Role = role.String
		if lastLogin.Valid {
			u.LastLogin = lastLogin.Time
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

// AddBusiness inserts b after validating it.
func (p *Postgres) AddBusiness(ctx context.Context, b *business.Business) error {
	if err := prepareBusiness(b); err != nil {
		return err
	}
	args, err := businessArgs(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBusiness, err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO businesses (id, identification, agent_name, agent_avatar, email,
		                        term_period, issued_on, value, product, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, args...)
	if err != nil {
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func scanBusiness(row pgx.Row) (*business.Business, error) {
	var (
		id       pgtype.UUID
		avatar   pgtype.Text
		email    pgtype.Text
		term     pgtype.Text
		issuedOn pgtype.Date
		value    pgtype.Numeric
		product  pgtype.Text
		status   string
		b        business.Business
	)
	err := row.Scan(&id, &b.Identification, &b.User.Name, &avatar, &email,
		&term, &issuedOn, &value, &product, &status)
	if err != nil {
		return nil, err
	}

	b.ID = uuidToString(id)
	b.User.Avatar = avatar.String
	b.Email = email.String
	b.TermPeriod = term.String
	b.Product = product.String
	b.Status = business.Status(status)
	if issuedOn.Valid {
		b.Date = issuedOn.Time
	}
	if b.Value, err = numericToFloat(value); err != nil {
		return nil, err
	}
	return &b, nil
}

func businessArgs(b *business.Business) ([]any, error) {
	id, err := toPgUUID(b.ID)
	if err != nil {
		return nil, err
	}
	value, err := floatToNumeric(b.Value)
	if err != nil {
		return nil, err
	}
	return []any{
		id, b.Identification, b.User.Name, toPgText(b.User.Avatar), toPgText(b.Email),
		toPgText(b.TermPeriod), toPgDate(b.Date), value, toPgText(b.Product), string(b.Status),
	}, nil
}

// Helper functions for type conversion

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func toPgDate(t time.Time) pgtype.Date {
	if t.IsZero() {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), Valid: true}
}

func toPgTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func toPgUUID(s string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("parse id %q: %w", s, err)
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func uuidToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

func floatToNumeric(f float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(fmt.Sprintf("%.2f", f)); err != nil {
		return n, fmt.Errorf("numeric %v: %w", f, err)
	}
	return n, nil
}

func numericToFloat(n pgtype.Numeric) (float64, error) {
	if !n.Valid {
		return 0, nil
	}
	f, err := n.Float64Value()
	if err != nil {
		return 0, fmt.Errorf("numeric value: %w", err)
	}
	return f.Float64, nil
}
