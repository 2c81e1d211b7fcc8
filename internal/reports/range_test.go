package reports

import (
	"testing"
	"time"

	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
)

var rangeNow = time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)

func TestResolveRangeQuickKeys(t *testing.T) {
	cases := []struct {
		key       RangeKey
		wantStart string
	}{
		{RangeToday, "2026-08-23"},
		{RangeLast7, "2026-08-16"},
		{RangeLast30, "2026-07-24"},
		{RangeLast90, "2026-05-25"},
		{RangeMonth, "2026-08-01"},
		{RangeYear, "2026-01-01"},
		{"", "2026-07-24"},
	}
	for _, tc := range cases {
		start, end, err := ResolveRange(tc.key, "", "", rangeNow)
		if err != nil {
			t.Fatalf("%s: %v", tc.key, err)
		}
		if got := start.Format(DateLayout); got != tc.wantStart {
			t.Fatalf("%s: expected start %s, got %s", tc.key, tc.wantStart, got)
		}
		if got := end.Format("2006-01-02 15:04:05"); got != "2026-08-23 23:59:59" {
			t.Fatalf("%s: expected inclusive end of today, got %s", tc.key, got)
		}
	}
}

func TestResolveRangeCustomInclusive(t *testing.T) {
	start, end, err := ResolveRange(RangeCustom, "2026-08-01", "2026-08-10", rangeNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if start.Format("2006-01-02 15:04:05") != "2026-08-01 00:00:00" {
		t.Fatalf("unexpected start: %v", start)
	}
	if end.Format("2006-01-02 15:04:05") != "2026-08-10 23:59:59" {
		t.Fatalf("unexpected end: %v", end)
	}
}

func TestResolveRangeRejectsBadInput(t *testing.T) {
	if _, _, err := ResolveRange(RangeCustom, "not-a-date", "2026-08-10", rangeNow); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for bad from date")
	}
	if _, _, err := ResolveRange(RangeCustom, "2026-08-10", "2026-08-01", rangeNow); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for inverted range")
	}
	if _, _, err := ResolveRange("fortnight", "", "", rangeNow); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for unknown key")
	}
}
