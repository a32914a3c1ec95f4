package tables

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/JonMunkholm/bizdash/internal/datatable"
)

// BusinessesKey is the registry key of the business listing.
const BusinessesKey = "negocios"

func init() {
	Register(Definition{
		Key:         BusinessesKey,
		Title:       "Negocios",
		Description: "Negocios emitidos y ventas efectuadas por los agentes",
		Order:       1,
		Mount:       mountBusinesses,
	})
}

// FormSearcher is implemented by listings with a dedicated search form
// that narrows the rows before the table's own global search.
type FormSearcher interface {
	SearchParams() business.SearchParams
	ApplySearch(ctx context.Context, params business.SearchParams) error
}

type businessTable struct {
	*Mounted[*business.Business]
	params business.SearchParams
}

func mountBusinesses(env Env) (Handle, error) {
	def, _ := Get(BusinessesKey)
	bt := &businessTable{params: business.SearchParams{Type: business.SearchAgent}}

	opts := datatable.DefaultOptions[*business.Business]()
	opts.RowKey = func(b *business.Business) string { return b.ID }
	opts.OnRowClick = func(b *business.Business) {
		env.notify(Notice{
			Level:   LevelInfo,
			Message: fmt.Sprintf("Negocio %s de %s", b.Identification, b.User.Name),
		})
	}
	opts.OnSelectionChange = func(selected []*business.Business) {
		slog.Debug("business selection changed", "selected", len(selected))
	}

	m, err := Mount(def, env, business.BusinessColumns(editAction), opts,
		func(ctx context.Context) ([]*business.Business, error) {
			all, err := env.Store.Businesses(ctx)
			if err != nil {
				return nil, err
			}
			return business.Filter(all, bt.params), nil
		})
	if err != nil {
		return nil, err
	}
	bt.Mounted = m
	return bt, nil
}

func (bt *businessTable) SearchParams() business.SearchParams {
	return bt.params
}

// ApplySearch replaces the form criteria and reloads the rows.
// Blank criteria show every business.
func (bt *businessTable) ApplySearch(ctx context.Context, params business.SearchParams) error {
	bt.params = params
	if err := bt.Refresh(ctx); err != nil {
		return err
	}
	bt.table.SetPage(1)
	return nil
}
