package stock

import (
	"context"

	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// Repository handles the append-only Transactions tab.
type Repository struct {
	store *sheetdb.Store
}

// NewRepository binds the tabular store to transaction operations.
func NewRepository(store *sheetdb.Store) *Repository {
	return &Repository{store: store}
}

// List returns every transaction row in tab order.
func (r *Repository) List(ctx context.Context) ([]Transaction, error) {
	table, err := r.store.Read(ctx, sheetdb.TabTransactions)
	if err != nil {
		return nil, err
	}
	txns := make([]Transaction, 0, table.Len())
	for _, row := range table.Rows {
		txns = append(txns, FromRow(row))
	}
	return txns, nil
}

// Append adds one movement without reading the rest of the tab.
func (r *Repository) Append(ctx context.Context, txn Transaction) error {
	return r.store.Append(ctx, sheetdb.TabTransactions, txn.ToRow())
}

// AppendAll logs a batch of movements with one tab append.
func (r *Repository) AppendAll(ctx context.Context, txns []Transaction) error {
	rows := make([]sheetdb.Row, len(txns))
	for i, txn := range txns {
		rows[i] = txn.ToRow()
	}
	return r.store.AppendAll(ctx, sheetdb.TabTransactions, rows)
}
