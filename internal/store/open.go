package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/bizdash/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open returns the Store selected by cfg: the seeded in-memory store when
// no database URL is configured, otherwise a Postgres store. A fresh
// Postgres database is seeded with the same generated rows.
func Open(ctx context.Context, db config.DatabaseConfig, table config.TableConfig) (Store, error) {
	seed := NewMemory(SeedOptions{
		Seed:       table.Seed,
		Businesses: table.SeedRows,
		Users:      table.SeedUsers,
		Now:        time.Now(),
	})

	if db.InMemory() {
		slog.Info("using in-memory store", "businesses", table.SeedRows, "users", table.SeedUsers)
		return seed, nil
	}

	poolConfig, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(db.MaxConns)
	poolConfig.MinConns = int32(db.MinConns)
	poolConfig.MaxConnLifetime = db.MaxConnLifetime
	poolConfig.MaxConnIdleTime = db.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(db.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	pg := NewPostgres(pool)
	if db.EnsureSchema {
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		n, err := pg.SeedIfEmpty(ctx, seed)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if n > 0 {
			slog.Info("seeded empty database", "businesses", n)
		}
	}
	return pg, nil
}
