package inventory

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
)

type itemRepository interface {
	List(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

type categoryCatalog interface {
	CategoryNames(ctx context.Context) (map[string]string, error)
}

// Service exposes inventory operations.
type Service interface {
	List(ctx context.Context, query string) ([]Item, error)
	Get(ctx context.Context, code string) (*Item, error)
	Upsert(ctx context.Context, input UpsertItemInput) (*Item, bool, error)
	Delete(ctx context.Context, code string) error
	GenerateCode(ctx context.Context, category string) (string, error)
	LowStock(ctx context.Context) ([]Item, error)
}

type service struct {
	repo       itemRepository
	categories categoryCatalog
}

// NewService builds an inventory service with the provided repositories.
func NewService(repo itemRepository, categories categoryCatalog) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category catalog required")
	}
	return &service{repo: repo, categories: categories}, nil
}

// UpsertItemInput captures an item mutation. A blank code requests automatic
// code generation from the category.
type UpsertItemInput struct {
	Code         string
	Category     string
	Name         string
	Unit         string
	QtyOnHand    int
	ReorderPoint int
	Location     string
	Active       bool
}

func (s *service) List(ctx context.Context, query string) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return items, nil
	}

	matched := make([]Item, 0, len(items))
	for _, item := range items {
		haystack := strings.ToLower(item.Code + " " + item.Name + " " + item.Category)
		if strings.Contains(haystack, needle) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (s *service) Get(ctx context.Context, code string) (*Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Code == code {
			return &item, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
}

func (s *service) Upsert(ctx context.Context, input UpsertItemInput) (*Item, bool, error) {
	input.Code = strings.TrimSpace(input.Code)
	input.Category = strings.TrimSpace(input.Category)
	input.Name = strings.TrimSpace(input.Name)

	if input.Category == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if input.Name == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.QtyOnHand < 0 || input.ReorderPoint < 0 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "quantities cannot be negative")
	}

	names, err := s.categories.CategoryNames(ctx)
	if err != nil {
		return nil, false, err
	}
	if _, ok := names[input.Category]; !ok {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "unknown category "+input.Category)
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, false, err
	}

	if input.Code == "" {
		input.Code = NextCode(items, input.Category)
	}

	item := Item{
		Code:         input.Code,
		Category:     input.Category,
		Name:         input.Name,
		Unit:         input.Unit,
		QtyOnHand:    input.QtyOnHand,
		ReorderPoint: input.ReorderPoint,
		Location:     input.Location,
		Active:       input.Active,
	}

	updated := false
	for i := range items {
		if items[i].Code == item.Code {
			items[i] = item
			updated = true
			break
		}
	}
	if !updated {
		items = append(items, item)
	}

	if err := s.repo.Save(ctx, items); err != nil {
		return nil, false, err
	}
	return &item, updated, nil
}

func (s *service) Delete(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	removed := false
	for _, item := range items {
		if item.Code == code {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}

	return s.repo.Save(ctx, kept)
}

func (s *service) GenerateCode(ctx context.Context, category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	names, err := s.categories.CategoryNames(ctx)
	if err != nil {
		return "", err
	}
	if _, ok := names[category]; !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown category "+category)
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}
	return NextCode(items, category), nil
}

func (s *service) LowStock(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]Item, 0)
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low, nil
}

// NextCode scans existing codes with the category prefix and returns the
// highest running number plus one, zero-padded to three digits. Padding
// widens naturally past 999.
func NextCode(items []Item, category string) string {
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(category) + `-(\d+)$`)
	max := 0
	for _, item := range items {
		match := pattern.FindStringSubmatch(item.Code)
		if match == nil {
			continue
		}
		if n, err := strconv.Atoi(match[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", category, max+1)
}
