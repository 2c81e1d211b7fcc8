package inventory

import (
	"strconv"
	"strings"

	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// Item is one equipment row. Quantities live as text in the tab and are
// coerced on the way in; unparseable cells count as zero.
type Item struct {
	Code         string `json:"code"`
	Category     string `json:"category"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	QtyOnHand    int    `json:"qty_on_hand"`
	ReorderPoint int    `json:"reorder_point"`
	Location     string `json:"location"`
	Active       bool   `json:"active"`
}

// IsLowStock reports whether the item sits at or below its reorder point.
func (i Item) IsLowStock() bool {
	return i.Active && i.QtyOnHand <= i.ReorderPoint
}

// FromRow maps a tab row into an Item.
func FromRow(row sheetdb.Row) Item {
	return Item{
		Code:         row[sheetdb.ColItemCode],
		Category:     row[sheetdb.ColItemCategory],
		Name:         row[sheetdb.ColItemName],
		Unit:         row[sheetdb.ColItemUnit],
		QtyOnHand:    ParseQuantity(row[sheetdb.ColItemQty]),
		ReorderPoint: ParseQuantity(row[sheetdb.ColItemReorder]),
		Location:     row[sheetdb.ColItemLocation],
		Active:       !strings.EqualFold(row[sheetdb.ColItemActive], "N"),
	}
}

// ToRow maps the item back into tab cells.
func (i Item) ToRow() sheetdb.Row {
	active := "Y"
	if !i.Active {
		active = "N"
	}
	return sheetdb.Row{
		sheetdb.ColItemCode:     i.Code,
		sheetdb.ColItemCategory: i.Category,
		sheetdb.ColItemName:     i.Name,
		sheetdb.ColItemUnit:     i.Unit,
		sheetdb.ColItemQty:      strconv.Itoa(i.QtyOnHand),
		sheetdb.ColItemReorder:  strconv.Itoa(i.ReorderPoint),
		sheetdb.ColItemLocation: i.Location,
		sheetdb.ColItemActive:   active,
	}
}

// ParseQuantity coerces free-form cell text to an integer quantity. Decimal
// text truncates toward zero; anything unparseable or blank reads as zero.
func ParseQuantity(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return int(f)
	}
	return 0
}
