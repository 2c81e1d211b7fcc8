package reports

import (
	"time"

	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
)

// RangeKey names a quick date range. Custom takes explicit bounds.
type RangeKey string

const (
	RangeToday  RangeKey = "today"
	RangeLast7  RangeKey = "7d"
	RangeLast30 RangeKey = "30d"
	RangeLast90 RangeKey = "90d"
	RangeMonth  RangeKey = "month"
	RangeYear   RangeKey = "year"
	RangeCustom RangeKey = "custom"
)

// DateLayout is the day format accepted for custom bounds.
const DateLayout = "2006-01-02"

// ResolveRange turns a range key into inclusive [start, end] instants: start
// is the first second of the first day, end the last second of the last day.
// A blank key means the last 30 days.
func ResolveRange(key RangeKey, from, to string, now time.Time) (time.Time, time.Time, error) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var start, end time.Time
	end = today

	switch key {
	case RangeToday:
		start = today
	case RangeLast7:
		start = today.AddDate(0, 0, -7)
	case RangeLast30, "":
		start = today.AddDate(0, 0, -30)
	case RangeLast90:
		start = today.AddDate(0, 0, -90)
	case RangeMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	case RangeYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
	case RangeCustom:
		var err error
		start, err = time.ParseInLocation(DateLayout, from, loc)
		if err != nil {
			return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid from date "+from)
		}
		end, err = time.ParseInLocation(DateLayout, to, loc)
		if err != nil {
			return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid to date "+to)
		}
	default:
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid range "+string(key))
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "range end before start")
	}

	return start, end.Add(24*time.Hour - time.Second), nil
}
