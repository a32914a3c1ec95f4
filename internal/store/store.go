// Package store provides the row sources behind the dashboard's tables.
//
// Both implementations only load rows: every filter, sort and page is
// computed in memory by the datatable engine.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/google/uuid"
)

// ErrInvalidBusiness is wrapped by AddBusiness when a record is rejected.
var ErrInvalidBusiness = errors.New("invalid business")

// Store loads the rows of the business and user listings.
type Store interface {
	Businesses(ctx context.Context) ([]*business.Business, error)
	Users(ctx context.Context) ([]*business.User, error)
	AddBusiness(ctx context.Context, b *business.Business) error
	Close()
}

// Resetter is implemented by stores whose rows can be replaced wholesale.
type Resetter interface {
	Reset(ctx context.Context, src Store) (int64, error)
}

// prepareBusiness validates b and assigns an ID when missing.
func prepareBusiness(b *business.Business) error {
	if b == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidBusiness)
	}

	var problems []string
	if strings.TrimSpace(b.Identification) == "" {
		problems = append(problems, "identification is required")
	}
	if strings.TrimSpace(b.User.Name) == "" {
		problems = append(problems, "user name is required")
	}
	if !b.Status.Valid() {
		problems = append(problems, fmt.Sprintf("unknown status %q", b.Status))
	}
	if b.Value < 0 {
		problems = append(problems, "value must be non-negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidBusiness, strings.Join(problems, "; "))
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
