package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/itaoit/itstock-backend/internal/catalog"
	"github.com/itaoit/itstock-backend/internal/inventory"
	"github.com/itaoit/itstock-backend/internal/users"
	"github.com/itaoit/itstock-backend/pkg/config"
	"github.com/itaoit/itstock-backend/pkg/enums"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/security"
)

// Kind names one importable entity.
type Kind string

const (
	KindCategories       Kind = "categories"
	KindBranches         Kind = "branches"
	KindItems            Kind = "items"
	KindTicketCategories Kind = "ticket_categories"
	KindUsers            Kind = "users"
)

// ParseKind converts a raw path segment to Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindCategories, KindBranches, KindItems, KindTicketCategories, KindUsers:
		return Kind(value), nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown import kind "+value)
}

// RowError records why one upload row was skipped. Row numbers are 1-based
// counting the header.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// Result summarizes an import: rows inserted, rows that replaced an existing
// entity, and rows skipped.
type Result struct {
	Added   int        `json:"added"`
	Updated int        `json:"updated"`
	Errors  []RowError `json:"errors,omitempty"`
}

type catalogRepository interface {
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	SaveCategories(ctx context.Context, categories []catalog.Category) error
	ListBranches(ctx context.Context) ([]catalog.Branch, error)
	SaveBranches(ctx context.Context, branches []catalog.Branch) error
	ListIssueCategories(ctx context.Context) ([]catalog.IssueCategory, error)
	SaveIssueCategories(ctx context.Context, categories []catalog.IssueCategory) error
	CategoryNames(ctx context.Context) (map[string]string, error)
}

type itemRepository interface {
	List(ctx context.Context) ([]inventory.Item, error)
	Save(ctx context.Context, items []inventory.Item) error
}

type userRepository interface {
	List(ctx context.Context) ([]users.User, error)
	Save(ctx context.Context, accounts []users.User) error
}

// Service exposes bulk upload of master data, items and accounts.
type Service interface {
	Import(ctx context.Context, kind Kind, filename string, upload io.Reader) (*Result, error)
}

type service struct {
	catalog     catalogRepository
	items       itemRepository
	users       userRepository
	passwordCfg config.PasswordConfig
}

// NewService builds an import service with the provided repositories.
func NewService(catalogRepo catalogRepository, items itemRepository, usersRepo userRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{catalog: catalogRepo, items: items, users: usersRepo, passwordCfg: passwordCfg}, nil
}

func (s *service) Import(ctx context.Context, kind Kind, filename string, upload io.Reader) (*Result, error) {
	rows, err := parseUpload(filename, upload)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upload is empty")
	}

	index := headerIndex(rows[0])
	data := rows[1:]

	switch kind {
	case KindCategories:
		return s.importCategories(ctx, index, data)
	case KindBranches:
		return s.importBranches(ctx, index, data)
	case KindTicketCategories:
		return s.importIssueCategories(ctx, index, data)
	case KindItems:
		return s.importItems(ctx, index, data)
	case KindUsers:
		return s.importUsers(ctx, index, data)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown import kind "+string(kind))
	}
}

// upsertCodeName folds upload rows into an existing code/name list. The
// three flat master-data tabs share this shape.
func upsertCodeName(index map[string]int, data [][]string, codeCol, nameCol string, existing [][2]string) ([][2]string, *Result) {
	position := make(map[string]int, len(existing))
	for i, pair := range existing {
		position[pair[0]] = i
	}

	result := &Result{}
	for i, row := range data {
		rowNum := i + 2
		code := cellAt(row, index, codeCol)
		if code == "" {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Error: codeCol + " is required"})
			continue
		}
		name := cellAt(row, index, nameCol)
		if pos, ok := position[code]; ok {
			existing[pos][1] = name
			result.Updated++
		} else {
			position[code] = len(existing)
			existing = append(existing, [2]string{code, name})
			result.Added++
		}
	}
	return existing, result
}

func (s *service) importCategories(ctx context.Context, index map[string]int, data [][]string) (*Result, error) {
	if _, ok := index["CategoryCode"]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required column CategoryCode")
	}

	current, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	pairs := make([][2]string, 0, len(current))
	for _, c := range current {
		pairs = append(pairs, [2]string{c.Code, c.Name})
	}

	merged, result := upsertCodeName(index, data, "CategoryCode", "CategoryName", pairs)
	if result.Added == 0 && result.Updated == 0 {
		return result, nil
	}

	out := make([]catalog.Category, 0, len(merged))
	for _, pair := range merged {
		out = append(out, catalog.Category{Code: pair[0], Name: pair[1]})
	}
	return result, s.catalog.SaveCategories(ctx, out)
}

func (s *service) importBranches(ctx context.Context, index map[string]int, data [][]string) (*Result, error) {
	if _, ok := index["BranchCode"]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required column BranchCode")
	}

	current, err := s.catalog.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	pairs := make([][2]string, 0, len(current))
	for _, b := range current {
		pairs = append(pairs, [2]string{b.Code, b.Name})
	}

	merged, result := upsertCodeName(index, data, "BranchCode", "BranchName", pairs)
	if result.Added == 0 && result.Updated == 0 {
		return result, nil
	}

	out := make([]catalog.Branch, 0, len(merged))
	for _, pair := range merged {
		out = append(out, catalog.Branch{Code: pair[0], Name: pair[1]})
	}
	return result, s.catalog.SaveBranches(ctx, out)
}

func (s *service) importIssueCategories(ctx context.Context, index map[string]int, data [][]string) (*Result, error) {
	if _, ok := index["IssueCode"]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required column IssueCode")
	}

	current, err := s.catalog.ListIssueCategories(ctx)
	if err != nil {
		return nil, err
	}
	pairs := make([][2]string, 0, len(current))
	for _, c := range current {
		pairs = append(pairs, [2]string{c.Code, c.Name})
	}

	merged, result := upsertCodeName(index, data, "IssueCode", "IssueName", pairs)
	if result.Added == 0 && result.Updated == 0 {
		return result, nil
	}

	out := make([]catalog.IssueCategory, 0, len(merged))
	for _, pair := range merged {
		out = append(out, catalog.IssueCategory{Code: pair[0], Name: pair[1]})
	}
	return result, s.catalog.SaveIssueCategories(ctx, out)
}

func (s *service) importItems(ctx context.Context, index map[string]int, data [][]string) (*Result, error) {
	for _, col := range []string{"Category", "Name"} {
		if _, ok := index[col]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required column "+col)
		}
	}

	categoryNames, err := s.catalog.CategoryNames(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	position := make(map[string]int, len(items))
	for i, item := range items {
		position[item.Code] = i
	}

	result := &Result{}
	seen := map[string]bool{}
	for i, row := range data {
		rowNum := i + 2

		category := cellAt(row, index, "Category")
		name := cellAt(row, index, "Name")
		if category == "" || name == "" {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Error: "Category and Name are required"})
			continue
		}
		if _, ok := categoryNames[category]; !ok {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Error: "unknown category " + category})
			continue
		}

		code := cellAt(row, index, "Code")
		if code == "" {
			code = inventory.NextCode(items, category)
		}
		if seen[code] {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Error: "duplicate code " + code + " in file"})
			continue
		}
		seen[code] = true

		item := inventory.Item{
			Code:         code,
			Category:     category,
			Name:         name,
			Unit:         cellAt(row, index, "Unit"),
			QtyOnHand:    clampZero(inventory.ParseQuantity(cellAt(row, index, "QtyOnHand"))),
			ReorderPoint: clampZero(inventory.ParseQuantity(cellAt(row, index, "ReorderPoint"))),
			Location:     cellAt(row, index, "Location"),
			Active:       !strings.EqualFold(cellAt(row, index, "Active"), "N"),
		}

		if pos, exists := position[code]; exists {
			items[pos] = item
			result.Updated++
		} else {
			position[code] = len(items)
			items = append(items, item)
			result.Added++
		}
	}

	if result.Added == 0 && result.Updated == 0 {
		return result, nil
	}
	return result, s.items.Save(ctx, items)
}

func (s *service) importUsers(ctx context.Context, index map[string]int, data [][]string) (*Result, error) {
	if _, ok := index["Username"]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required column Username")
	}

	accounts, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	position := make(map[string]int, len(accounts))
	for i, u := range accounts {
		position[u.Username] = i
	}

	result := &Result{}
	for i, row := range data {
		rowNum := i + 2

		username := cellAt(row, index, "Username")
		if username == "" {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Error: "Username is required"})
			continue
		}

		display := cellAt(row, index, "DisplayName")
		role := enums.Role(cellAt(row, index, "Role"))
		if role == "" {
			role = enums.RoleStaff
		}
		if !role.IsValid() {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Error: "invalid role " + string(role)})
			continue
		}
		active := !strings.EqualFold(cellAt(row, index, "Active"), "N")

		// A plaintext Password column wins over a pre-hashed PasswordHash.
		hash := ""
		if plain := cellAt(row, index, "Password"); plain != "" {
			hashed, err := security.HashPassword(plain, s.passwordCfg)
			if err != nil {
				result.Errors = append(result.Errors, RowError{Row: rowNum, Error: "hashing password failed"})
				continue
			}
			hash = hashed
		} else if preHashed := cellAt(row, index, "PasswordHash"); preHashed != "" {
			hash = preHashed
		}

		if pos, exists := position[username]; exists {
			accounts[pos].DisplayName = display
			accounts[pos].Role = role
			accounts[pos].Active = active
			if hash != "" {
				accounts[pos].PasswordHash = hash
			}
			result.Updated++
			continue
		}

		if hash == "" {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Error: "new user requires Password or PasswordHash"})
			continue
		}
		position[username] = len(accounts)
		accounts = append(accounts, users.User{
			Username:     username,
			DisplayName:  display,
			Role:         role,
			PasswordHash: hash,
			Active:       active,
		})
		result.Added++
	}

	if result.Added == 0 && result.Updated == 0 {
		return result, nil
	}
	return result, s.users.Save(ctx, accounts)
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
