package sheetdb

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Row maps column name to cell text. All cells are strings; numeric fields
// are coerced at the domain layer.
type Row map[string]string

// Table is the in-memory form of one tab: a fixed header order plus rows.
type Table struct {
	Headers []string
	Rows    []Row
}

// NewTable returns an empty table with the given column order.
func NewTable(headers []string) *Table {
	return &Table{Headers: append([]string(nil), headers...)}
}

// TableFromValues builds a table from a raw values grid (first row headers).
// The result has exactly the expected columns in the expected order: columns
// missing from the grid are synthesized empty, extra columns are dropped.
func TableFromValues(values [][]any, expected []string) *Table {
	table := NewTable(expected)
	if len(values) == 0 {
		return table
	}

	index := make(map[string]int, len(values[0]))
	for i, cell := range values[0] {
		index[cellString(cell)] = i
	}

	for _, raw := range values[1:] {
		row := make(Row, len(expected))
		for _, col := range expected {
			pos, ok := index[col]
			if !ok || pos >= len(raw) {
				row[col] = ""
				continue
			}
			row[col] = cellString(raw[pos])
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// Values renders the table back to a grid: header row first, then each row's
// cells in header order. Missing cells render empty.
func (t *Table) Values() [][]any {
	out := make([][]any, 0, len(t.Rows)+1)
	header := make([]any, len(t.Headers))
	for i, col := range t.Headers {
		header[i] = col
	}
	out = append(out, header)

	for _, row := range t.Rows {
		cells := make([]any, len(t.Headers))
		for i, col := range t.Headers {
			cells[i] = row[col]
		}
		out = append(out, cells)
	}
	return out
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds a row; columns outside the header set are ignored on write.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Find returns the first row whose column equals the given value.
func (t *Table) Find(col, value string) (Row, bool) {
	for _, row := range t.Rows {
		if row[col] == value {
			return row, true
		}
	}
	return nil, false
}

// Upsert replaces the first row matching on the key column or appends a new
// one. Returns true when an existing row was updated.
func (t *Table) Upsert(keyCol string, row Row) bool {
	for i, existing := range t.Rows {
		if existing[keyCol] == row[keyCol] {
			t.Rows[i] = row
			return true
		}
	}
	t.Rows = append(t.Rows, row)
	return false
}

// Delete removes every row whose column equals the given value and reports
// whether anything was removed.
func (t *Table) Delete(col, value string) bool {
	kept := t.Rows[:0]
	removed := false
	for _, row := range t.Rows {
		if row[col] == value {
			removed = true
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
	return removed
}

type tableJSON struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// MarshalBinary implements the cache serialization contract.
func (t *Table) MarshalBinary() ([]byte, error) {
	return json.Marshal(tableJSON{Headers: t.Headers, Rows: t.Rows})
}

// UnmarshalBinary restores a table serialized by MarshalBinary.
func (t *Table) UnmarshalBinary(data []byte) error {
	var decoded tableJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	t.Headers = decoded.Headers
	t.Rows = decoded.Rows
	return nil
}

func cellString(cell any) string {
	switch v := cell.(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
