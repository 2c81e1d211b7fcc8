package tickets

import (
	"context"
	"testing"
	"time"

	"github.com/itaoit/itstock-backend/internal/catalog"
	"github.com/itaoit/itstock-backend/pkg/enums"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
)

type stubTicketRepo struct {
	tickets  []Ticket
	appended []Ticket
}

func (s *stubTicketRepo) List(_ context.Context) ([]Ticket, error) {
	return append([]Ticket(nil), s.tickets...), nil
}

func (s *stubTicketRepo) Append(_ context.Context, ticket Ticket) error {
	s.appended = append(s.appended, ticket)
	s.tickets = append(s.tickets, ticket)
	return nil
}

type stubIssueCatalog struct{}

func (stubIssueCatalog) ListIssueCategories(_ context.Context) ([]catalog.IssueCategory, error) {
	return []catalog.IssueCategory{
		{Code: "HW", Name: "Hardware"},
		{Code: "SW", Name: "Software"},
	}, nil
}

var fixedNow = time.Date(2026, 8, 23, 14, 30, 45, 0, time.UTC)

func newTestService(t *testing.T, repo *stubTicketRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubIssueCatalog{}, time.UTC, func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateDerivesIDFromCreationSecond(t *testing.T) {
	repo := &stubTicketRepo{}
	svc := newTestService(t, repo)

	ticket, err := svc.Create(context.Background(), "somchai", CreateTicketInput{
		Branch: "BKK", Category: "HW", Description: "monitor flickers",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if ticket.ID != "TCK-20260823-143045" {
		t.Fatalf("unexpected ticket id: %s", ticket.ID)
	}
	if ticket.Status != enums.TicketStatusReceived {
		t.Fatalf("expected status received, got %s", ticket.Status)
	}
	if ticket.Assignee != "somchai" || ticket.Reporter != "somchai" {
		t.Fatalf("expected actor as assignee and fallback reporter, got %#v", ticket)
	}
	if ticket.ReportedAt != "2026-08-23 14:30:45" || ticket.UpdatedAt != ticket.ReportedAt {
		t.Fatalf("unexpected timestamps: %#v", ticket)
	}
	if len(repo.appended) != 1 {
		t.Fatalf("expected one appended ticket, got %d", len(repo.appended))
	}
}

func TestCreateKeepsExplicitReporter(t *testing.T) {
	svc := newTestService(t, &stubTicketRepo{})

	ticket, err := svc.Create(context.Background(), "somchai", CreateTicketInput{
		Branch: "BKK", Reporter: "walk-in", Category: "SW", Description: "license expired",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.Reporter != "walk-in" || ticket.Assignee != "somchai" {
		t.Fatalf("unexpected reporter/assignee: %#v", ticket)
	}
}

func TestCreateRejectsUnknownIssueCategory(t *testing.T) {
	svc := newTestService(t, &stubTicketRepo{})

	_, err := svc.Create(context.Background(), "somchai", CreateTicketInput{
		Branch: "BKK", Category: "NOPE", Description: "anything",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListFiltersByStatusAndRange(t *testing.T) {
	repo := &stubTicketRepo{tickets: []Ticket{
		{ID: "TCK-1", ReportedAt: "2026-08-01 09:00:00", Status: enums.TicketStatusReceived},
		{ID: "TCK-2", ReportedAt: "2026-08-15 09:00:00", Status: enums.TicketStatusResolved},
		{ID: "TCK-3", ReportedAt: "2026-08-20 09:00:00", Status: enums.TicketStatusReceived},
		{ID: "TCK-4", ReportedAt: "not a date", Status: enums.TicketStatusReceived},
	}}
	svc := newTestService(t, repo)

	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	got, err := svc.List(context.Background(), ListFilter{From: &from, Status: enums.TicketStatusReceived})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "TCK-3" {
		t.Fatalf("unexpected filtered tickets: %#v", got)
	}

	all, err := svc.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected unfiltered listing to keep unparseable rows, got %d", len(all))
	}
}

func TestListRejectsInvalidStatus(t *testing.T) {
	svc := newTestService(t, &stubTicketRepo{})

	_, err := svc.List(context.Background(), ListFilter{Status: enums.TicketStatus("bogus")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
