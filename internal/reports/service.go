package reports

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/itaoit/itstock-backend/internal/inventory"
	"github.com/itaoit/itstock-backend/internal/stock"
	"github.com/itaoit/itstock-backend/internal/tickets"
	"github.com/itaoit/itstock-backend/pkg/enums"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
)

type txnLister interface {
	List(ctx context.Context) ([]stock.Transaction, error)
}

type itemLister interface {
	List(ctx context.Context) ([]inventory.Item, error)
}

type ticketLister interface {
	List(ctx context.Context) ([]tickets.Ticket, error)
}

type labelCatalog interface {
	CategoryNames(ctx context.Context) (map[string]string, error)
	BranchNames(ctx context.Context) (map[string]string, error)
}

// Service exposes reporting and aggregation.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
	Transactions(ctx context.Context, filter TxnFilter) ([]stock.Transaction, error)
	IssuedByCategory(ctx context.Context, filter TxnFilter, top int) ([]GroupRow, error)
	IssuedByBranch(ctx context.Context, filter TxnFilter, top int) ([]GroupRow, error)
	StockByLocation(ctx context.Context, top int) ([]GroupRow, error)
	ByPeriod(ctx context.Context, filter TxnFilter, period Period) ([]PeriodRow, error)
	Export(ctx context.Context, input ExportInput) ([]byte, string, error)
}

type service struct {
	txns    txnLister
	items   itemLister
	tickets ticketLister
	labels  labelCatalog
	loc     *time.Location
	now     func() time.Time
}

// NewService builds a reporting service. A nil clock falls back to time.Now
// and a nil location to time.Local.
func NewService(txns txnLister, items itemLister, ticketsRepo ticketLister, labels labelCatalog, loc *time.Location, now func() time.Time) (Service, error) {
	if txns == nil {
		return nil, fmt.Errorf("transaction lister required")
	}
	if items == nil {
		return nil, fmt.Errorf("item lister required")
	}
	if ticketsRepo == nil {
		return nil, fmt.Errorf("ticket lister required")
	}
	if labels == nil {
		return nil, fmt.Errorf("label catalog required")
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &service{txns: txns, items: items, tickets: ticketsRepo, labels: labels, loc: loc, now: now}, nil
}

// TxnFilter narrows the transaction history. Query matches code, item name
// and branch, case-insensitive.
type TxnFilter struct {
	Range RangeKey
	From  string
	To    string
	Query string
}

// Period is the bucketing granularity for time-series grouping.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// PeriodRow is one time-bucketed aggregation row.
type PeriodRow struct {
	Period string        `json:"period"`
	Type   enums.TxnType `json:"type"`
	Name   string        `json:"name"`
	Qty    int           `json:"qty"`
}

// Summary is the dashboard payload.
type Summary struct {
	TotalItems      int        `json:"total_items"`
	TotalQty        int        `json:"total_qty"`
	LowStockCount   int        `json:"low_stock_count"`
	StockByCategory []GroupRow `json:"stock_by_category"`
	TicketsByStatus []GroupRow `json:"tickets_by_status"`
}

// ExportInput selects which tabular result to render as a spreadsheet.
type ExportInput struct {
	Kind   string
	Filter TxnFilter
	Period Period
	Top    int
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	categoryNames, err := s.labels.CategoryNames(ctx)
	if err != nil {
		return nil, err
	}
	allTickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{TotalItems: len(items)}
	byCategory := make([]GroupRow, 0, len(items))
	for _, item := range items {
		summary.TotalQty += item.QtyOnHand
		if item.IsLowStock() {
			summary.LowStockCount++
		}
		byCategory = append(byCategory, GroupRow{Label: labelFor(item.Category, categoryNames), Qty: item.QtyOnHand})
	}
	summary.StockByCategory = groupSum(byCategory)

	byStatus := make([]GroupRow, 0, len(allTickets))
	for _, ticket := range allTickets {
		byStatus = append(byStatus, GroupRow{Label: string(ticket.Status), Qty: 1})
	}
	summary.TicketsByStatus = groupSum(byStatus)

	return summary, nil
}

func (s *service) Transactions(ctx context.Context, filter TxnFilter) ([]stock.Transaction, error) {
	return s.filtered(ctx, filter)
}

// StockByLocation sums current quantity on hand per storage location. Items
// without a location land in a blank bucket.
func (s *service) StockByLocation(ctx context.Context, top int) ([]GroupRow, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]GroupRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, GroupRow{Label: item.Location, Qty: item.QtyOnHand})
	}
	return topN(groupSum(rows), top), nil
}

func (s *service) IssuedByCategory(ctx context.Context, filter TxnFilter, top int) ([]GroupRow, error) {
	txns, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	categoryNames, err := s.labels.CategoryNames(ctx)
	if err != nil {
		return nil, err
	}

	categoryByCode := make(map[string]string, len(items))
	for _, item := range items {
		categoryByCode[item.Code] = item.Category
	}

	rows := make([]GroupRow, 0, len(txns))
	for _, txn := range txns {
		if txn.Type != enums.TxnTypeOut {
			continue
		}
		rows = append(rows, GroupRow{Label: labelFor(categoryByCode[txn.Code], categoryNames), Qty: txn.Qty})
	}
	return topN(groupSum(rows), top), nil
}

func (s *service) IssuedByBranch(ctx context.Context, filter TxnFilter, top int) ([]GroupRow, error) {
	txns, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	branchNames, err := s.labels.BranchNames(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]GroupRow, 0, len(txns))
	for _, txn := range txns {
		if txn.Type != enums.TxnTypeOut {
			continue
		}
		rows = append(rows, GroupRow{Label: labelFor(txn.Branch, branchNames), Qty: txn.Qty})
	}
	return topN(groupSum(rows), top), nil
}

func (s *service) ByPeriod(ctx context.Context, filter TxnFilter, period Period) ([]PeriodRow, error) {
	if period != PeriodWeek && period != PeriodMonth && period != PeriodYear {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid period "+string(period))
	}

	txns, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}

	type key struct {
		period string
		typ    enums.TxnType
		name   string
	}
	totals := map[key]int{}
	for _, txn := range txns {
		when, err := time.ParseInLocation(stock.TimeLayout, txn.Timestamp, s.loc)
		if err != nil {
			continue
		}
		totals[key{periodKey(when, period), txn.Type, txn.Name}] += txn.Qty
	}

	out := make([]PeriodRow, 0, len(totals))
	for k, qty := range totals {
		out = append(out, PeriodRow{Period: k.period, Type: k.typ, Name: k.name, Qty: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period < out[j].Period
		}
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *service) Export(ctx context.Context, input ExportInput) ([]byte, string, error) {
	switch input.Kind {
	case "transactions":
		txns, err := s.filtered(ctx, input.Filter)
		if err != nil {
			return nil, "", err
		}
		rows := make([][]string, 0, len(txns))
		for _, txn := range txns {
			rows = append(rows, []string{
				txn.ID, txn.Timestamp, string(txn.Type), txn.Code, txn.Name,
				txn.Branch, strconv.Itoa(txn.Qty), txn.Actor, txn.Note,
			})
		}
		headers := []string{"TxnID", "Timestamp", "Type", "Code", "Name", "Branch", "Qty", "Actor", "Note"}
		blob, err := writeXLSX("Transactions", headers, rows)
		return blob, "transactions.xlsx", err

	case "by-category", "by-branch":
		var grouped []GroupRow
		var err error
		if input.Kind == "by-category" {
			grouped, err = s.IssuedByCategory(ctx, input.Filter, input.Top)
		} else {
			grouped, err = s.IssuedByBranch(ctx, input.Filter, input.Top)
		}
		if err != nil {
			return nil, "", err
		}
		rows := make([][]string, 0, len(grouped))
		for _, row := range grouped {
			rows = append(rows, []string{row.Label, strconv.Itoa(row.Qty)})
		}
		blob, err := writeXLSX("Issued", []string{"Label", "Qty"}, rows)
		return blob, input.Kind + ".xlsx", err

	case "by-period":
		grouped, err := s.ByPeriod(ctx, input.Filter, input.Period)
		if err != nil {
			return nil, "", err
		}
		rows := make([][]string, 0, len(grouped))
		for _, row := range grouped {
			rows = append(rows, []string{row.Period, string(row.Type), row.Name, strconv.Itoa(row.Qty)})
		}
		blob, err := writeXLSX("ByPeriod", []string{"Period", "Type", "Name", "Qty"}, rows)
		return blob, "by-period.xlsx", err

	default:
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid export kind "+input.Kind)
	}
}

func (s *service) filtered(ctx context.Context, filter TxnFilter) ([]stock.Transaction, error) {
	start, end, err := ResolveRange(filter.Range, filter.From, filter.To, s.now().In(s.loc))
	if err != nil {
		return nil, err
	}

	all, err := s.txns.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]stock.Transaction, 0, len(all))
	for _, txn := range all {
		when, err := time.ParseInLocation(stock.TimeLayout, txn.Timestamp, s.loc)
		if err != nil || when.Before(start) || when.After(end) {
			continue
		}
		if needle != "" {
			haystack := strings.ToLower(txn.Code + " " + txn.Name + " " + txn.Branch)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		out = append(out, txn)
	}
	return out, nil
}

func periodKey(when time.Time, period Period) string {
	switch period {
	case PeriodWeek:
		year, week := when.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case PeriodMonth:
		return when.Format("2006-01")
	default:
		return when.Format("2006")
	}
}

func labelFor(code string, names map[string]string) string {
	if name, ok := names[code]; ok && name != "" {
		return name
	}
	if code == "" {
		return "unknown"
	}
	return code
}
