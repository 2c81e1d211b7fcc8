package sheetdb

// TabSpec declares one tab's identity and fixed header schema. Column order
// matters: writes emit columns exactly in this order.
type TabSpec struct {
	Name    string
	Headers []string
	// Grid size used when the bootstrapper has to create the tab.
	Rows int64
	Cols int64
}

// Item columns.
const (
	ColItemCode     = "Code"
	ColItemCategory = "Category"
	ColItemName     = "Name"
	ColItemUnit     = "Unit"
	ColItemQty      = "QtyOnHand"
	ColItemReorder  = "ReorderPoint"
	ColItemLocation = "Location"
	ColItemActive   = "Active"
)

// Transaction columns.
const (
	ColTxnID        = "TxnID"
	ColTxnTimestamp = "Timestamp"
	ColTxnType      = "Type"
	ColTxnItemCode  = "Code"
	ColTxnItemName  = "Name"
	ColTxnBranch    = "Branch"
	ColTxnQty       = "Qty"
	ColTxnActor     = "Actor"
	ColTxnNote      = "Note"
)

// User columns.
const (
	ColUserName    = "Username"
	ColUserDisplay = "DisplayName"
	ColUserRole    = "Role"
	ColUserHash    = "PasswordHash"
	ColUserActive  = "Active"
)

// Category and branch columns.
const (
	ColCategoryCode = "CategoryCode"
	ColCategoryName = "CategoryName"
	ColBranchCode   = "BranchCode"
	ColBranchName   = "BranchName"
)

// Ticket columns.
const (
	ColTicketID          = "TicketID"
	ColTicketReportedAt  = "ReportedAt"
	ColTicketBranch      = "Branch"
	ColTicketReporter    = "Reporter"
	ColTicketCategory    = "Category"
	ColTicketDescription = "Description"
	ColTicketStatus      = "Status"
	ColTicketAssignee    = "Assignee"
	ColTicketUpdatedAt   = "UpdatedAt"
	ColTicketNote        = "Note"
)

// Ticket category columns.
const (
	ColIssueCode = "IssueCode"
	ColIssueName = "IssueName"
)

var (
	TabItems = TabSpec{
		Name: "Items",
		Headers: []string{
			ColItemCode, ColItemCategory, ColItemName, ColItemUnit,
			ColItemQty, ColItemReorder, ColItemLocation, ColItemActive,
		},
		Rows: 1000, Cols: 13,
	}

	TabTransactions = TabSpec{
		Name: "Transactions",
		Headers: []string{
			ColTxnID, ColTxnTimestamp, ColTxnType, ColTxnItemCode,
			ColTxnItemName, ColTxnBranch, ColTxnQty, ColTxnActor, ColTxnNote,
		},
		Rows: 2000, Cols: 14,
	}

	TabUsers = TabSpec{
		Name: "Users",
		Headers: []string{
			ColUserName, ColUserDisplay, ColUserRole, ColUserHash, ColUserActive,
		},
		Rows: 100, Cols: 7,
	}

	TabCategories = TabSpec{
		Name:    "Categories",
		Headers: []string{ColCategoryCode, ColCategoryName},
		Rows:    200, Cols: 4,
	}

	TabBranches = TabSpec{
		Name:    "Branches",
		Headers: []string{ColBranchCode, ColBranchName},
		Rows:    200, Cols: 4,
	}

	TabTickets = TabSpec{
		Name: "Tickets",
		Headers: []string{
			ColTicketID, ColTicketReportedAt, ColTicketBranch, ColTicketReporter,
			ColTicketCategory, ColTicketDescription, ColTicketStatus,
			ColTicketAssignee, ColTicketUpdatedAt, ColTicketNote,
		},
		Rows: 1000, Cols: 15,
	}

	TabTicketCategories = TabSpec{
		Name:    "TicketCategories",
		Headers: []string{ColIssueCode, ColIssueName},
		Rows:    200, Cols: 4,
	}
)

// AllTabs lists every tab the bootstrapper provisions.
var AllTabs = []TabSpec{
	TabItems,
	TabTransactions,
	TabUsers,
	TabCategories,
	TabBranches,
	TabTickets,
	TabTicketCategories,
}
