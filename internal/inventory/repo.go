package inventory

import (
	"context"

	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// Repository handles item persistence against the Items tab.
type Repository struct {
	store *sheetdb.Store
}

// NewRepository binds the tabular store to item operations.
func NewRepository(store *sheetdb.Store) *Repository {
	return &Repository{store: store}
}

// List returns every item row in tab order.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	table, err := r.store.Read(ctx, sheetdb.TabItems)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, table.Len())
	for _, row := range table.Rows {
		items = append(items, FromRow(row))
	}
	return items, nil
}

// Save replaces the Items tab with the provided rows. Last writer wins.
func (r *Repository) Save(ctx context.Context, items []Item) error {
	table := sheetdb.NewTable(sheetdb.TabItems.Headers)
	for _, item := range items {
		table.Append(item.ToRow())
	}
	return r.store.Write(ctx, sheetdb.TabItems, table)
}
