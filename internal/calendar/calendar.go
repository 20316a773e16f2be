// Package calendar holds the date arithmetic behind the Wednesday-based
// service week and the 14-day menu rotation. Everything runs in UTC.
package calendar

import (
	"time"

	"github.com/tanjilh136/mealprep/internal/config"
)

// Date truncates t to midnight UTC. Business dates are always stored and
// compared in this form.
func Date(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ServiceWeekStart returns the Wednesday that starts the service week
// containing d. The week runs Wednesday through Tuesday.
func ServiceWeekStart(d time.Time) time.Time {
	d = Date(d)
	// Monday=0 .. Sunday=6, Wednesday=2
	weekday := (int(d.Weekday()) + 6) % 7
	offset := (weekday - 2 + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the Tuesday that closes the week starting at weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return Date(weekStart).AddDate(0, 0, 6)
}

// CutoffInstant returns the deadline for client changes to the week starting
// at weekStart: the Monday 23:59 immediately before it.
func CutoffInstant(weekStart time.Time) time.Time {
	cutoff := Date(weekStart).AddDate(0, 0, -2)
	return time.Date(
		cutoff.Year(), cutoff.Month(), cutoff.Day(),
		23, 59, 0, 0, time.UTC,
	)
}

// RotationDayNumber maps a calendar date to a 1-14 rotation day number.
// config.MenuRotationStartDate is day 1; the cycle extends in both
// directions, so dates before the anchor still land in [1,14].
func RotationDayNumber(d time.Time) int {
	deltaDays := int(Date(d).Sub(config.MenuRotationStartDate).Hours() / 24)
	// Go's % keeps the sign of the dividend; force a non-negative remainder.
	return ((deltaDays%14)+14)%14 + 1
}
