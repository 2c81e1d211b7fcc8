package stock

import (
	"strconv"

	"github.com/itaoit/itstock-backend/internal/inventory"
	"github.com/itaoit/itstock-backend/pkg/enums"
	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// TimeLayout is the timestamp format stored in the Transactions tab.
const TimeLayout = "2006-01-02 15:04:05"

// Transaction is one stock movement row, append-only.
type Transaction struct {
	ID        string        `json:"id"`
	Timestamp string        `json:"timestamp"`
	Type      enums.TxnType `json:"type"`
	Code      string        `json:"code"`
	Name      string        `json:"name"`
	Branch    string        `json:"branch"`
	Qty       int           `json:"qty"`
	Actor     string        `json:"actor"`
	Note      string        `json:"note,omitempty"`
}

// FromRow maps a tab row into a Transaction.
func FromRow(row sheetdb.Row) Transaction {
	return Transaction{
		ID:        row[sheetdb.ColTxnID],
		Timestamp: row[sheetdb.ColTxnTimestamp],
		Type:      enums.TxnType(row[sheetdb.ColTxnType]),
		Code:      row[sheetdb.ColTxnItemCode],
		Name:      row[sheetdb.ColTxnItemName],
		Branch:    row[sheetdb.ColTxnBranch],
		Qty:       inventory.ParseQuantity(row[sheetdb.ColTxnQty]),
		Actor:     row[sheetdb.ColTxnActor],
		Note:      row[sheetdb.ColTxnNote],
	}
}

// ToRow maps the transaction back into tab cells.
func (t Transaction) ToRow() sheetdb.Row {
	return sheetdb.Row{
		sheetdb.ColTxnID:        t.ID,
		sheetdb.ColTxnTimestamp: t.Timestamp,
		sheetdb.ColTxnType:      string(t.Type),
		sheetdb.ColTxnItemCode:  t.Code,
		sheetdb.ColTxnItemName:  t.Name,
		sheetdb.ColTxnBranch:    t.Branch,
		sheetdb.ColTxnQty:       strconv.Itoa(t.Qty),
		sheetdb.ColTxnActor:     t.Actor,
		sheetdb.ColTxnNote:      t.Note,
	}
}

// IssueLine is one requested OUT movement inside a batch.
type IssueLine struct {
	Code string `json:"code" validate:"required"`
	Qty  int    `json:"qty" validate:"required,min=1"`
}

// LineError records why one batch line was skipped.
type LineError struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// IssueResult reports what a batch actually did: posted movements plus the
// lines that failed validation.
type IssueResult struct {
	Posted []Transaction `json:"posted"`
	Errors []LineError   `json:"errors"`
}
