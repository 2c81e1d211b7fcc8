package catalog

import (
	"context"

	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// Repository handles master-data persistence for categories, branches and
// issue categories.
type Repository struct {
	store *sheetdb.Store
}

// NewRepository binds the tabular store to master-data operations.
func NewRepository(store *sheetdb.Store) *Repository {
	return &Repository{store: store}
}

// ListCategories returns every category row in tab order.
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	table, err := r.store.Read(ctx, sheetdb.TabCategories)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, table.Len())
	for _, row := range table.Rows {
		out = append(out, categoryFromRow(row))
	}
	return out, nil
}

// SaveCategories replaces the Categories tab with the provided rows.
func (r *Repository) SaveCategories(ctx context.Context, categories []Category) error {
	table := sheetdb.NewTable(sheetdb.TabCategories.Headers)
	for _, c := range categories {
		table.Append(c.toRow())
	}
	return r.store.Write(ctx, sheetdb.TabCategories, table)
}

// ListBranches returns every branch row in tab order.
func (r *Repository) ListBranches(ctx context.Context) ([]Branch, error) {
	table, err := r.store.Read(ctx, sheetdb.TabBranches)
	if err != nil {
		return nil, err
	}
	out := make([]Branch, 0, table.Len())
	for _, row := range table.Rows {
		out = append(out, branchFromRow(row))
	}
	return out, nil
}

// SaveBranches replaces the Branches tab with the provided rows.
func (r *Repository) SaveBranches(ctx context.Context, branches []Branch) error {
	table := sheetdb.NewTable(sheetdb.TabBranches.Headers)
	for _, b := range branches {
		table.Append(b.toRow())
	}
	return r.store.Write(ctx, sheetdb.TabBranches, table)
}

// ListIssueCategories returns every ticket category row in tab order.
func (r *Repository) ListIssueCategories(ctx context.Context) ([]IssueCategory, error) {
	table, err := r.store.Read(ctx, sheetdb.TabTicketCategories)
	if err != nil {
		return nil, err
	}
	out := make([]IssueCategory, 0, table.Len())
	for _, row := range table.Rows {
		out = append(out, issueCategoryFromRow(row))
	}
	return out, nil
}

// SaveIssueCategories replaces the TicketCategories tab with the provided rows.
func (r *Repository) SaveIssueCategories(ctx context.Context, categories []IssueCategory) error {
	table := sheetdb.NewTable(sheetdb.TabTicketCategories.Headers)
	for _, c := range categories {
		table.Append(c.toRow())
	}
	return r.store.Write(ctx, sheetdb.TabTicketCategories, table)
}

// CategoryNames builds a code to display-name lookup.
func (r *Repository) CategoryNames(ctx context.Context) (map[string]string, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.Code] = c.Name
	}
	return names, nil
}

// BranchNames builds a code to display-name lookup.
func (r *Repository) BranchNames(ctx context.Context) (map[string]string, error) {
	branches, err := r.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(branches))
	for _, b := range branches {
		names[b.Code] = b.Name
	}
	return names, nil
}
