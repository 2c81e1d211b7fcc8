package tickets

import (
	"context"

	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// Repository handles the append-only Tickets tab.
type Repository struct {
	store *sheetdb.Store
}

// NewRepository binds the tabular store to ticket operations.
func NewRepository(store *sheetdb.Store) *Repository {
	return &Repository{store: store}
}

// List returns every ticket row in tab order.
func (r *Repository) List(ctx context.Context) ([]Ticket, error) {
	table, err := r.store.Read(ctx, sheetdb.TabTickets)
	if err != nil {
		return nil, err
	}
	out := make([]Ticket, 0, table.Len())
	for _, row := range table.Rows {
		out = append(out, FromRow(row))
	}
	return out, nil
}

// Append adds one ticket without reading the rest of the tab.
func (r *Repository) Append(ctx context.Context, ticket Ticket) error {
	return r.store.Append(ctx, sheetdb.TabTickets, ticket.ToRow())
}
