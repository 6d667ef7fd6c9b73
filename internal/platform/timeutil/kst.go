package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// KST is a fixed UTC+9 offset. Civil-day boundaries use this offset
// directly, independent of timezone databases or daylight saving.
var KST = time.FixedZone("KST", 9*60*60)

var dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateRange is a half-open absolute time window [Start, End). Either
// side may be nil for an unbounded range.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange resolves list-query date filters into absolute
// instants. A `date` value wins over dateFrom/dateTo and is interpreted
// as one KST civil day.
func ParseDateRange(dateFrom, dateTo, date string) (DateRange, error) {
	if date != "" {
		start, end, err := KSTDayRange(date)
		if err != nil {
			return DateRange{}, err
		}
		return DateRange{Start: &start, End: &end}, nil
	}

	var out DateRange
	if dateFrom != "" {
		start, err := parseISO(dateFrom, "dateFrom")
		if err != nil {
			return DateRange{}, err
		}
		out.Start = &start
	}
	if dateTo != "" {
		end, err := parseISO(dateTo, "dateTo")
		if err != nil {
			return DateRange{}, err
		}
		out.End = &end
	}

	return out, nil
}

// KSTDayRange maps a value to the KST civil day containing it:
// [local midnight, next local midnight). Accepts a plain YYYY-MM-DD
// date or any RFC3339 instant.
func KSTDayRange(value string) (time.Time, time.Time, error) {
	if dateOnlyPattern.MatchString(value) {
		start, err := time.ParseInLocation("2006-01-02", value, KST)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("date must be a valid YYYY-MM-DD value")
		}
		return start.UTC(), start.Add(24 * time.Hour).UTC(), nil
	}

	instant, err := parseISO(value, "date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	local := instant.In(KST)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, KST)
	return start.UTC(), start.Add(24 * time.Hour).UTC(), nil
}

func parseISO(value, field string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a valid ISO date string", field)
	}
	return parsed.UTC(), nil
}
