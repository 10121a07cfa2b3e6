package aggregation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// DateLayout is the calendar date format accepted by the query endpoints.
const DateLayout = "2006-01-02"

// Period names a reporting window ending with the current day.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// Periods lists the windows of the orders overview in display order.
var Periods = []Period{Daily, Weekly, Monthly, Yearly}

// Window returns the half-open [start, end) range covered by period at now.
// Every window ends at the start of the next calendar day in loc.
//
//	daily   today 00:00
//	weekly  today 00:00 minus seven days
//	monthly first day of the month 00:00
//	yearly  January 1 00:00
func Window(period Period, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	today, tomorrow := DayBounds(now, loc)

	var start time.Time
	switch period {
	case Daily:
		start = today
	case Weekly:
		start = today.AddDate(0, 0, -7)
	case Monthly:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	case Yearly:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q", period)
	}

	return start, tomorrow, nil
}

// DayBounds returns midnight of the calendar day containing t in loc and
// midnight of the following day.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// ParseDate parses a YYYY-MM-DD calendar date in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, &models.ValidationError{Fields: []string{"date"}}
	}
	parsed, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, &models.ValidationError{Fields: []string{"date"}, Reason: fmt.Sprintf("date %q must use YYYY-MM-DD", value)}
	}
	return parsed, nil
}
