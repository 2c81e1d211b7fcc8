package users

import (
	"context"

	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// Repository handles account persistence against the Users tab.
type Repository struct {
	store *sheetdb.Store
}

// NewRepository binds the tabular store to account operations.
func NewRepository(store *sheetdb.Store) *Repository {
	return &Repository{store: store}
}

// List returns every account row in tab order.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	table, err := r.store.Read(ctx, sheetdb.TabUsers)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, table.Len())
	for _, row := range table.Rows {
		out = append(out, FromRow(row))
	}
	return out, nil
}

// Save replaces the Users tab with the provided rows. Last writer wins.
func (r *Repository) Save(ctx context.Context, accounts []User) error {
	table := sheetdb.NewTable(sheetdb.TabUsers.Headers)
	for _, u := range accounts {
		table.Append(u.ToRow())
	}
	return r.store.Write(ctx, sheetdb.TabUsers, table)
}
