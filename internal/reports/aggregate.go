package reports

import "sort"

// GroupRow is one aggregation bucket.
type GroupRow struct {
	Label string `json:"label"`
	Qty   int    `json:"qty"`
}

// OtherLabel collects the remainder past the top-N cut.
const OtherLabel = "other"

// groupSum folds (label, qty) pairs into buckets sorted by quantity
// descending, ties by label for stable output.
func groupSum(pairs []GroupRow) []GroupRow {
	totals := map[string]int{}
	for _, p := range pairs {
		totals[p.Label] += p.Qty
	}

	out := make([]GroupRow, 0, len(totals))
	for label, qty := range totals {
		out = append(out, GroupRow{Label: label, Qty: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Qty != out[j].Qty {
			return out[i].Qty > out[j].Qty
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// topN keeps the n largest buckets and folds the rest into one "other" row.
// n <= 0 means no cut.
func topN(rows []GroupRow, n int) []GroupRow {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	kept := append([]GroupRow(nil), rows[:n]...)
	rest := 0
	for _, row := range rows[n:] {
		rest += row.Qty
	}
	return append(kept, GroupRow{Label: OtherLabel, Qty: rest})
}
