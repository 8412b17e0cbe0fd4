package leave

import "time"

const (
	baseAnnualDays = 15
	maxAnnualDays  = 25
	// The proration divisor ignores leap years.
	prorationDaysPerYear = 365
)

// CalculateAnnualLeave returns the annual leave granted for year to an
// employee hired on hireDate.
//
// Employees hired before the year get the base grant plus one day per full
// year of service after the first, capped at maxAnnualDays. Employees hired
// during the year get the base grant prorated over the days left until
// December 31. Employees hired after the year get nothing.
func CalculateAnnualLeave(hireDate time.Time, year int) int {
	hire := truncateToDate(hireDate)
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	switch {
	case hire.Before(yearStart):
		yearsOfWork := year - hire.Year()
		days := baseAnnualDays + max(0, yearsOfWork-1)
		return min(days, maxAnnualDays)
	case hire.After(yearEnd):
		return 0
	default:
		remaining := int(yearEnd.Sub(hire).Hours() / 24)
		return baseAnnualDays * remaining / prorationDaysPerYear
	}
}
