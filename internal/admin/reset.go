// Package admin provides administrative operations on the row store.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/bizdash/internal/store"
)

// ResetTimeout is the maximum duration for a reset.
const ResetTimeout = 30 * time.Second

// ErrNotResettable is returned for stores that keep no persistent rows.
var ErrNotResettable = errors.New("store cannot be reset")

// Reset replaces every row of st with seed's rows. This is a destructive
// operation: businesses created from the dashboard are lost.
func Reset(ctx context.Context, st store.Store, seed store.Store) (int64, error) {
	r, ok := st.(store.Resetter)
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrNotResettable, st)
	}

	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	start := time.Now()
	n, err := r.Reset(ctx, seed)
	if err != nil {
		return 0, fmt.Errorf("reset: %w", err)
	}

	slog.Info("store reset", "businesses", n, "duration_ms", time.Since(start).Milliseconds())
	return n, nil
}
