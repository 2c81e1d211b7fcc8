package catalog

import "github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"

// Category is an equipment category, the prefix of every item code.
type Category struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Branch is a site that can receive issued stock or report tickets.
type Branch struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// IssueCategory classifies trouble tickets.
type IssueCategory struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func categoryFromRow(row sheetdb.Row) Category {
	return Category{Code: row[sheetdb.ColCategoryCode], Name: row[sheetdb.ColCategoryName]}
}

func (c Category) toRow() sheetdb.Row {
	return sheetdb.Row{sheetdb.ColCategoryCode: c.Code, sheetdb.ColCategoryName: c.Name}
}

func branchFromRow(row sheetdb.Row) Branch {
	return Branch{Code: row[sheetdb.ColBranchCode], Name: row[sheetdb.ColBranchName]}
}

func (b Branch) toRow() sheetdb.Row {
	return sheetdb.Row{sheetdb.ColBranchCode: b.Code, sheetdb.ColBranchName: b.Name}
}

func issueCategoryFromRow(row sheetdb.Row) IssueCategory {
	return IssueCategory{Code: row[sheetdb.ColIssueCode], Name: row[sheetdb.ColIssueName]}
}

func (c IssueCategory) toRow() sheetdb.Row {
	return sheetdb.Row{sheetdb.ColIssueCode: c.Code, sheetdb.ColIssueName: c.Name}
}
