package tickets

import (
	"github.com/itaoit/itstock-backend/pkg/enums"
	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// TimeLayout is the timestamp format stored in the Tickets tab.
const TimeLayout = "2006-01-02 15:04:05"

// Ticket is one trouble report row.
type Ticket struct {
	ID          string             `json:"id"`
	ReportedAt  string             `json:"reported_at"`
	Branch      string             `json:"branch"`
	Reporter    string             `json:"reporter"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Status      enums.TicketStatus `json:"status"`
	Assignee    string             `json:"assignee"`
	UpdatedAt   string             `json:"updated_at"`
	Note        string             `json:"note,omitempty"`
}

// FromRow maps a tab row into a Ticket.
func FromRow(row sheetdb.Row) Ticket {
	return Ticket{
		ID:          row[sheetdb.ColTicketID],
		ReportedAt:  row[sheetdb.ColTicketReportedAt],
		Branch:      row[sheetdb.ColTicketBranch],
		Reporter:    row[sheetdb.ColTicketReporter],
		Category:    row[sheetdb.ColTicketCategory],
		Description: row[sheetdb.ColTicketDescription],
		Status:      enums.TicketStatus(row[sheetdb.ColTicketStatus]),
		Assignee:    row[sheetdb.ColTicketAssignee],
		UpdatedAt:   row[sheetdb.ColTicketUpdatedAt],
		Note:        row[sheetdb.ColTicketNote],
	}
}

// ToRow maps the ticket back into tab cells.
func (t Ticket) ToRow() sheetdb.Row {
	return sheetdb.Row{
		sheetdb.ColTicketID:          t.ID,
		sheetdb.ColTicketReportedAt:  t.ReportedAt,
		sheetdb.ColTicketBranch:      t.Branch,
		sheetdb.ColTicketReporter:    t.Reporter,
		sheetdb.ColTicketCategory:    t.Category,
		sheetdb.ColTicketDescription: t.Description,
		sheetdb.ColTicketStatus:      string(t.Status),
		sheetdb.ColTicketAssignee:    t.Assignee,
		sheetdb.ColTicketUpdatedAt:   t.UpdatedAt,
		sheetdb.ColTicketNote:        t.Note,
	}
}
