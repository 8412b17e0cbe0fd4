package leave

import "time"

const dateLayout = "2006-01-02"

// CountDays returns the inclusive number of calendar days in [start, end].
// An inverted range yields zero or less; callers must reject it.
func CountDays(start, end time.Time) int {
	s := truncateToDate(start)
	e := truncateToDate(end)
	return int(e.Sub(s).Hours()/24) + 1
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
