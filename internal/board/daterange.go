package board

import "time"

// Default date window around today.
const (
	DefaultDaysBack  = 120
	DefaultDaysAhead = 240
)

// DateRange produces the fixed ordered sequence of midnight-normalized
// calendar days the grid spans, from daysBack days before today through
// daysAhead days after. It is computed once per board mount and never
// rolled forward during a session.
func DateRange(today time.Time, daysBack, daysAhead int) []time.Time {
	start := Midnight(today).AddDate(0, 0, -daysBack)
	days := make([]time.Time, 0, daysBack+daysAhead+1)
	for i := 0; i <= daysBack+daysAhead; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// Midnight normalizes a time to 00:00:00 in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsWeekend reports whether the day renders at half width.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
