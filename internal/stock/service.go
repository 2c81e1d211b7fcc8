package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/itaoit/itstock-backend/internal/inventory"
	"github.com/itaoit/itstock-backend/pkg/enums"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
)

// MaxIssueLines caps one OUT batch.
const MaxIssueLines = 5

type itemRepository interface {
	List(ctx context.Context) ([]inventory.Item, error)
	Save(ctx context.Context, items []inventory.Item) error
}

type txnRepository interface {
	Append(ctx context.Context, txn Transaction) error
	AppendAll(ctx context.Context, txns []Transaction) error
}

// Service exposes stock movement operations.
type Service interface {
	IssueBatch(ctx context.Context, actor string, input IssueInput) (*IssueResult, error)
	Receive(ctx context.Context, actor string, input ReceiveInput) (*Transaction, error)
}

type service struct {
	items itemRepository
	txns  txnRepository
	loc   *time.Location
	now   func() time.Time
}

// NewService builds a stock service. A nil clock falls back to time.Now and
// a nil location to time.Local.
func NewService(items itemRepository, txns txnRepository, loc *time.Location, now func() time.Time) (Service, error) {
	if items == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if txns == nil {
		return nil, fmt.Errorf("transaction repository required")
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &service{items: items, txns: txns, loc: loc, now: now}, nil
}

// IssueInput is one OUT batch: up to MaxIssueLines movements against a
// single branch, sharing one note.
type IssueInput struct {
	Branch string
	Note   string
	Lines  []IssueLine
}

// ReceiveInput is one IN movement. Timestamp overrides the clock when the
// goods physically arrived earlier than the entry is made.
type ReceiveInput struct {
	Code      string
	Qty       int
	Branch    string
	Note      string
	Timestamp *time.Time
}

// IssueBatch applies lines in order against a running balance: each line
// sees the decrements of the lines posted before it, so a batch can never
// drive an item below zero. Valid lines commit together, one full item write
// plus one transaction append for the whole batch. Failed lines are
// reported, never retried.
func (s *service) IssueBatch(ctx context.Context, actor string, input IssueInput) (*IssueResult, error) {
	input.Branch = strings.TrimSpace(input.Branch)
	if input.Branch == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch is required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}
	if len(input.Lines) > MaxIssueLines {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("at most %d lines per batch", MaxIssueLines))
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.Code] = i
	}

	result := &IssueResult{}
	timestamp := s.now().In(s.loc).Format(TimeLayout)

	for _, line := range input.Lines {
		code := strings.TrimSpace(line.Code)
		pos, ok := index[code]
		switch {
		case code == "":
			result.Errors = append(result.Errors, LineError{Code: code, Reason: "item code is required"})
			continue
		case !ok:
			result.Errors = append(result.Errors, LineError{Code: code, Reason: "unknown item code"})
			continue
		case line.Qty < 1:
			result.Errors = append(result.Errors, LineError{Code: code, Reason: "quantity must be at least 1"})
			continue
		case line.Qty > items[pos].QtyOnHand:
			result.Errors = append(result.Errors, LineError{
				Code:   code,
				Reason: fmt.Sprintf("insufficient stock: %d on hand", items[pos].QtyOnHand),
			})
			continue
		}

		items[pos].QtyOnHand -= line.Qty
		result.Posted = append(result.Posted, Transaction{
			ID:        newTxnID(),
			Timestamp: timestamp,
			Type:      enums.TxnTypeOut,
			Code:      code,
			Name:      items[pos].Name,
			Branch:    input.Branch,
			Qty:       line.Qty,
			Actor:     actor,
			Note:      input.Note,
		})
	}

	if len(result.Posted) == 0 {
		return result, nil
	}

	if err := s.items.Save(ctx, items); err != nil {
		return nil, err
	}
	if err := s.txns.AppendAll(ctx, result.Posted); err != nil {
		return nil, err
	}
	return result, nil
}

// Receive increments an item unconditionally and appends one IN movement.
func (s *service) Receive(ctx context.Context, actor string, input ReceiveInput) (*Transaction, error) {
	input.Code = strings.TrimSpace(input.Code)
	input.Branch = strings.TrimSpace(input.Branch)
	if input.Code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item code is required")
	}
	if input.Branch == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch is required")
	}
	if input.Qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	pos := -1
	for i, item := range items {
		if item.Code == input.Code {
			pos = i
			break
		}
	}
	if pos == -1 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}

	items[pos].QtyOnHand += input.Qty

	timestamp := s.now().In(s.loc).Format(TimeLayout)
	if input.Timestamp != nil {
		timestamp = input.Timestamp.In(s.loc).Format(TimeLayout)
	}

	txn := Transaction{
		ID:        newTxnID(),
		Timestamp: timestamp,
		Type:      enums.TxnTypeIn,
		Code:      input.Code,
		Name:      items[pos].Name,
		Branch:    input.Branch,
		Qty:       input.Qty,
		Actor:     actor,
		Note:      input.Note,
	}

	if err := s.items.Save(ctx, items); err != nil {
		return nil, err
	}
	if err := s.txns.Append(ctx, txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func newTxnID() string {
	return uuid.NewString()[:8]
}
