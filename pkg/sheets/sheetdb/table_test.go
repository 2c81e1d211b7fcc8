package sheetdb

import (
	"reflect"
	"testing"
)

func TestTableFromValuesSynthesizesMissingColumns(t *testing.T) {
	values := [][]any{
		{"Code", "Name"},
		{"NET-001", "Switch 24p"},
	}

	table := TableFromValues(values, TabItems.Headers)
	if table.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", table.Len())
	}
	row := table.Rows[0]
	if row[ColItemCode] != "NET-001" || row[ColItemName] != "Switch 24p" {
		t.Fatalf("unexpected row: %#v", row)
	}
	if row[ColItemQty] != "" || row[ColItemActive] != "" {
		t.Fatalf("expected missing columns to be empty, got %#v", row)
	}
}

func TestTableFromValuesDropsExtraColumnsAndTrims(t *testing.T) {
	values := [][]any{
		{"CategoryCode", "CategoryName", "Legacy"},
		{" NET ", " Network ", "x"},
	}

	table := TableFromValues(values, TabCategories.Headers)
	row := table.Rows[0]
	if row[ColCategoryCode] != "NET" || row[ColCategoryName] != "Network" {
		t.Fatalf("expected trimmed cells, got %#v", row)
	}
	if _, ok := row["Legacy"]; ok {
		t.Fatalf("expected extra column to be dropped")
	}
}

func TestTableFromValuesCoercesNumericCells(t *testing.T) {
	values := [][]any{
		{"Code", "Category", "Name", "Unit", "QtyOnHand", "ReorderPoint", "Location", "Active"},
		{"NET-001", "NET", "Switch", "pcs", 12, 2.0, "IT Room", "Y"},
	}

	table := TableFromValues(values, TabItems.Headers)
	row := table.Rows[0]
	if row[ColItemQty] != "12" {
		t.Fatalf("expected integer cell to stringify, got %q", row[ColItemQty])
	}
	if row[ColItemReorder] != "2" {
		t.Fatalf("expected float cell to stringify, got %q", row[ColItemReorder])
	}
}

func TestValuesRoundTripPreservesColumnOrder(t *testing.T) {
	table := NewTable(TabCategories.Headers)
	table.Append(Row{ColCategoryCode: "NET", ColCategoryName: "Network"})
	table.Append(Row{ColCategoryCode: "PRT", ColCategoryName: "Printer"})

	grid := table.Values()
	if !reflect.DeepEqual(grid[0], []any{"CategoryCode", "CategoryName"}) {
		t.Fatalf("unexpected header row: %#v", grid[0])
	}
	if !reflect.DeepEqual(grid[1], []any{"NET", "Network"}) {
		t.Fatalf("unexpected data row: %#v", grid[1])
	}

	back := TableFromValues(grid, TabCategories.Headers)
	if !reflect.DeepEqual(back.Rows, table.Rows) {
		t.Fatalf("round trip mismatch: %#v vs %#v", back.Rows, table.Rows)
	}
}

func TestUpsertUpdatesInPlace(t *testing.T) {
	table := NewTable(TabCategories.Headers)
	table.Append(Row{ColCategoryCode: "NET", ColCategoryName: "Network"})

	updated := table.Upsert(ColCategoryCode, Row{ColCategoryCode: "NET", ColCategoryName: "Networking"})
	if !updated {
		t.Fatalf("expected existing row to be updated")
	}
	if table.Len() != 1 || table.Rows[0][ColCategoryName] != "Networking" {
		t.Fatalf("unexpected table after upsert: %#v", table.Rows)
	}

	updated = table.Upsert(ColCategoryCode, Row{ColCategoryCode: "PRT", ColCategoryName: "Printer"})
	if updated {
		t.Fatalf("expected new row to be appended, not updated")
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
}

func TestDeleteRemovesMatchingRows(t *testing.T) {
	table := NewTable(TabCategories.Headers)
	table.Append(Row{ColCategoryCode: "NET", ColCategoryName: "Network"})
	table.Append(Row{ColCategoryCode: "PRT", ColCategoryName: "Printer"})

	if !table.Delete(ColCategoryCode, "NET") {
		t.Fatalf("expected delete to report removal")
	}
	if table.Len() != 1 || table.Rows[0][ColCategoryCode] != "PRT" {
		t.Fatalf("unexpected rows after delete: %#v", table.Rows)
	}
	if table.Delete(ColCategoryCode, "MISSING") {
		t.Fatalf("expected delete of absent key to report false")
	}
}

func TestTableBinaryRoundTrip(t *testing.T) {
	table := NewTable(TabUsers.Headers)
	table.Append(Row{ColUserName: "admin", ColUserRole: "admin", ColUserActive: "Y"})

	blob, err := table.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	restored := &Table{}
	if err := restored.UnmarshalBinary(blob); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(restored.Headers, table.Headers) {
		t.Fatalf("headers mismatch: %#v", restored.Headers)
	}
	if restored.Rows[0][ColUserName] != "admin" {
		t.Fatalf("rows mismatch: %#v", restored.Rows)
	}
}
