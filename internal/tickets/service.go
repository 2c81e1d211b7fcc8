package tickets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itaoit/itstock-backend/internal/catalog"
	"github.com/itaoit/itstock-backend/pkg/enums"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
)

type ticketRepository interface {
	List(ctx context.Context) ([]Ticket, error)
	Append(ctx context.Context, ticket Ticket) error
}

type issueCatalog interface {
	ListIssueCategories(ctx context.Context) ([]catalog.IssueCategory, error)
}

// Service exposes ticket intake and listing.
type Service interface {
	Create(ctx context.Context, actor string, input CreateTicketInput) (*Ticket, error)
	List(ctx context.Context, filter ListFilter) ([]Ticket, error)
}

type service struct {
	repo       ticketRepository
	categories issueCatalog
	loc        *time.Location
	now        func() time.Time
}

// NewService builds a ticket service. A nil clock falls back to time.Now and
// a nil location to time.Local.
func NewService(repo ticketRepository, categories issueCatalog, loc *time.Location, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ticket repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("issue catalog required")
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, categories: categories, loc: loc, now: now}, nil
}

// CreateTicketInput captures a new trouble report. A blank reporter falls
// back to the acting user.
type CreateTicketInput struct {
	Branch      string
	Reporter    string
	Category    string
	Description string
	Note        string
}

// ListFilter narrows the ticket listing. Zero values mean no filtering.
type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status enums.TicketStatus
}

// Create appends one ticket. The identifier is derived from the creation
// second; two tickets created within the same second share an ID.
func (s *service) Create(ctx context.Context, actor string, input CreateTicketInput) (*Ticket, error) {
	input.Branch = strings.TrimSpace(input.Branch)
	input.Reporter = strings.TrimSpace(input.Reporter)
	input.Category = strings.TrimSpace(input.Category)
	input.Description = strings.TrimSpace(input.Description)

	if input.Branch == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch is required")
	}
	if input.Category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if input.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if input.Reporter == "" {
		input.Reporter = actor
	}

	known, err := s.categories.ListIssueCategories(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for _, c := range known {
		if c.Code == input.Category {
			found = true
			break
		}
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown issue category "+input.Category)
	}

	now := s.now().In(s.loc)
	timestamp := now.Format(TimeLayout)

	ticket := Ticket{
		ID:          "TCK-" + now.Format("20060102-150405"),
		ReportedAt:  timestamp,
		Branch:      input.Branch,
		Reporter:    input.Reporter,
		Category:    input.Category,
		Description: input.Description,
		Status:      enums.TicketStatusReceived,
		Assignee:    actor,
		UpdatedAt:   timestamp,
		Note:        input.Note,
	}

	if err := s.repo.Append(ctx, ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List returns tickets matching the filter in tab order. Rows whose
// ReportedAt does not parse are excluded when a date bound is set.
func (s *service) List(ctx context.Context, filter ListFilter) ([]Ticket, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid ticket status "+string(filter.Status))
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Ticket, 0, len(all))
	for _, ticket := range all {
		if filter.Status != "" && ticket.Status != filter.Status {
			continue
		}
		if filter.From != nil || filter.To != nil {
			reported, err := time.ParseInLocation(TimeLayout, ticket.ReportedAt, s.loc)
			if err != nil {
				continue
			}
			if filter.From != nil && reported.Before(*filter.From) {
				continue
			}
			if filter.To != nil && reported.After(*filter.To) {
				continue
			}
		}
		out = append(out, ticket)
	}
	return out, nil
}
