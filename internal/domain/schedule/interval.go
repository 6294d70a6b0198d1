package schedule

import "time"

// Overlaps reports whether two inclusive date intervals intersect:
// aStart <= bEnd && aEnd >= bStart. Shared by leave requests and any
// other interval-based rule, so the overlap test exists exactly once.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// ClockMinutes parses a "15:04" clock string into minutes since
// midnight. Clock strings are how business hours and slots are stored.
func ClockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WindowsOverlap reports whether two half-open minute windows
// [aStart, aEnd) and [bStart, bEnd) intersect. Used for the lunch
// break check.
func WindowsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate compares calendar dates ignoring time of day and location
// offsets between date-typed columns.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
