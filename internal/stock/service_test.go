package stock

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/itaoit/itstock-backend/internal/inventory"
	"github.com/itaoit/itstock-backend/pkg/enums"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
)

type stubItemRepo struct {
	items []inventory.Item
	saved [][]inventory.Item
}

func (s *stubItemRepo) List(_ context.Context) ([]inventory.Item, error) {
	return append([]inventory.Item(nil), s.items...), nil
}

func (s *stubItemRepo) Save(_ context.Context, items []inventory.Item) error {
	s.items = append([]inventory.Item(nil), items...)
	s.saved = append(s.saved, s.items)
	return nil
}

type stubTxnRepo struct {
	appended   []Transaction
	batchCalls int
}

func (s *stubTxnRepo) Append(_ context.Context, txn Transaction) error {
	s.appended = append(s.appended, txn)
	return nil
}

func (s *stubTxnRepo) AppendAll(_ context.Context, txns []Transaction) error {
	s.batchCalls++
	s.appended = append(s.appended, txns...)
	return nil
}

var fixedNow = time.Date(2026, 8, 23, 10, 15, 0, 0, time.UTC)

func newTestService(t *testing.T, items *stubItemRepo, txns *stubTxnRepo) Service {
	t.Helper()
	svc, err := NewService(items, txns, time.UTC, func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func qtyOf(items []inventory.Item, code string) int {
	for _, item := range items {
		if item.Code == code {
			return item.QtyOnHand
		}
	}
	return -1
}

func TestIssueBatchRejectsLinesExceedingRemainingStock(t *testing.T) {
	itemRepo := &stubItemRepo{items: []inventory.Item{
		{Code: "NET-001", Name: "Switch", QtyOnHand: 10, Active: true},
	}}
	txnRepo := &stubTxnRepo{}
	svc := newTestService(t, itemRepo, txnRepo)

	result, err := svc.IssueBatch(context.Background(), "somchai", IssueInput{
		Branch: "BKK",
		Lines:  []IssueLine{{Code: "NET-001", Qty: 4}, {Code: "NET-001", Qty: 8}},
	})
	if err != nil {
		t.Fatalf("issue batch: %v", err)
	}

	if len(result.Posted) != 1 || result.Posted[0].Qty != 4 {
		t.Fatalf("expected only the 4-unit line to post, got %#v", result.Posted)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0].Reason, "insufficient stock: 6") {
		t.Fatalf("expected the 8-unit line rejected against the remaining 6, got %#v", result.Errors)
	}
	if got := qtyOf(itemRepo.items, "NET-001"); got != 6 {
		t.Fatalf("expected 6 on hand after committing 4, got %d", got)
	}
}

func TestIssueBatchAppliesValidLinesCumulatively(t *testing.T) {
	itemRepo := &stubItemRepo{items: []inventory.Item{
		{Code: "NET-001", Name: "Switch", QtyOnHand: 10, Active: true},
	}}
	txnRepo := &stubTxnRepo{}
	svc := newTestService(t, itemRepo, txnRepo)

	result, err := svc.IssueBatch(context.Background(), "somchai", IssueInput{
		Branch: "BKK",
		Lines:  []IssueLine{{Code: "NET-001", Qty: 4}, {Code: "NET-001", Qty: 5}},
	})
	if err != nil {
		t.Fatalf("issue batch: %v", err)
	}

	if len(result.Posted) != 2 || len(result.Errors) != 0 {
		t.Fatalf("expected both lines to post, got %#v", result)
	}
	if got := qtyOf(itemRepo.items, "NET-001"); got != 1 {
		t.Fatalf("expected 1 on hand, got %d", got)
	}
	if len(txnRepo.appended) != 2 {
		t.Fatalf("expected one movement per posted line, got %d", len(txnRepo.appended))
	}
	if txnRepo.batchCalls != 1 {
		t.Fatalf("expected the batch logged in one append, got %d calls", txnRepo.batchCalls)
	}
	for _, txn := range txnRepo.appended {
		if txn.Type != enums.TxnTypeOut || txn.Actor != "somchai" || txn.Branch != "BKK" {
			t.Fatalf("unexpected movement: %#v", txn)
		}
		if txn.Timestamp != "2026-08-23 10:15:00" {
			t.Fatalf("unexpected timestamp: %s", txn.Timestamp)
		}
		if len(txn.ID) != 8 {
			t.Fatalf("expected 8-char movement id, got %q", txn.ID)
		}
	}
}

func TestIssueBatchNeverDrivesStockNegative(t *testing.T) {
	itemRepo := &stubItemRepo{items: []inventory.Item{
		{Code: "NET-001", Name: "Switch", QtyOnHand: 3, Active: true},
	}}
	svc := newTestService(t, itemRepo, &stubTxnRepo{})

	result, err := svc.IssueBatch(context.Background(), "somchai", IssueInput{
		Branch: "BKK",
		Lines:  []IssueLine{{Code: "NET-001", Qty: 3}, {Code: "NET-001", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("issue batch: %v", err)
	}
	if len(result.Posted) != 1 || len(result.Errors) != 1 {
		t.Fatalf("expected the draining line posted and the extra unit rejected, got %#v", result)
	}
	if got := qtyOf(itemRepo.items, "NET-001"); got != 0 {
		t.Fatalf("expected exactly 0 on hand, got %d", got)
	}
}

func TestIssueBatchSkipsInvalidLinesWithoutWriting(t *testing.T) {
	itemRepo := &stubItemRepo{items: []inventory.Item{
		{Code: "NET-001", Name: "Switch", QtyOnHand: 10, Active: true},
	}}
	txnRepo := &stubTxnRepo{}
	svc := newTestService(t, itemRepo, txnRepo)

	result, err := svc.IssueBatch(context.Background(), "somchai", IssueInput{
		Branch: "BKK",
		Lines:  []IssueLine{{Code: "NET-404", Qty: 1}, {Code: "NET-001", Qty: 0}},
	})
	if err != nil {
		t.Fatalf("issue batch: %v", err)
	}

	if len(result.Posted) != 0 || len(result.Errors) != 2 {
		t.Fatalf("expected both lines skipped, got %#v", result)
	}
	if len(itemRepo.saved) != 0 || len(txnRepo.appended) != 0 {
		t.Fatalf("expected no writes when nothing posts")
	}
}

func TestIssueBatchRejectsOversizedBatch(t *testing.T) {
	svc := newTestService(t, &stubItemRepo{}, &stubTxnRepo{})

	lines := make([]IssueLine, MaxIssueLines+1)
	for i := range lines {
		lines[i] = IssueLine{Code: "NET-001", Qty: 1}
	}
	_, err := svc.IssueBatch(context.Background(), "somchai", IssueInput{Branch: "BKK", Lines: lines})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestIssueBatchRequiresBranch(t *testing.T) {
	svc := newTestService(t, &stubItemRepo{}, &stubTxnRepo{})

	_, err := svc.IssueBatch(context.Background(), "somchai", IssueInput{
		Lines: []IssueLine{{Code: "NET-001", Qty: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReceiveIncrementsAndAppends(t *testing.T) {
	itemRepo := &stubItemRepo{items: []inventory.Item{
		{Code: "NET-001", Name: "Switch", QtyOnHand: 2, Active: true},
	}}
	txnRepo := &stubTxnRepo{}
	svc := newTestService(t, itemRepo, txnRepo)

	txn, err := svc.Receive(context.Background(), "somchai", ReceiveInput{
		Code: "NET-001", Qty: 5, Branch: "BKK", Note: "restock",
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}

	if txn.Type != enums.TxnTypeIn || txn.Qty != 5 {
		t.Fatalf("unexpected movement: %#v", txn)
	}
	if got := qtyOf(itemRepo.items, "NET-001"); got != 7 {
		t.Fatalf("expected 7 on hand, got %d", got)
	}
	if len(txnRepo.appended) != 1 {
		t.Fatalf("expected one appended movement, got %d", len(txnRepo.appended))
	}
}

func TestReceiveHonorsManualTimestamp(t *testing.T) {
	itemRepo := &stubItemRepo{items: []inventory.Item{
		{Code: "NET-001", Name: "Switch", QtyOnHand: 0, Active: true},
	}}
	svc := newTestService(t, itemRepo, &stubTxnRepo{})

	arrived := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	txn, err := svc.Receive(context.Background(), "somchai", ReceiveInput{
		Code: "NET-001", Qty: 1, Branch: "BKK", Timestamp: &arrived,
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if txn.Timestamp != "2026-08-20 09:00:00" {
		t.Fatalf("expected manual timestamp, got %s", txn.Timestamp)
	}
}

func TestReceiveUnknownItem(t *testing.T) {
	svc := newTestService(t, &stubItemRepo{}, &stubTxnRepo{})

	_, err := svc.Receive(context.Background(), "somchai", ReceiveInput{
		Code: "NET-404", Qty: 1, Branch: "BKK",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
