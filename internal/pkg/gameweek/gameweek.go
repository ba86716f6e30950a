// Package gameweek computes the weekly reset boundaries of the game.
// The reset happens on a fixed weekday at 00:00 UTC rather than on a
// Monday/Sunday or epoch-aligned boundary, so the enclosing period of a
// timestamp is "the most recent reset weekday on/before it".
package gameweek

import (
	"time"

	"github.com/gmstracker/backend/internal/constant"
)

// StartDate returns the calendar date (midnight UTC) beginning the weekly
// reset period that encloses t. Any two instants within the same calendar
// day yield the same result.
func StartDate(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	daysSinceReset := (int(day.Weekday()) - int(constant.ResetWeekday) + 7) % 7
	return day.AddDate(0, 0, -daysSinceReset)
}

// EndDate returns the last calendar date of the period enclosing t.
func EndDate(t time.Time) time.Time {
	return StartDate(t).AddDate(0, 0, 6)
}

// Current returns the start of the period enclosing the present moment.
func Current() time.Time {
	return StartDate(time.Now())
}

// SamePeriod reports whether a and b fall into the same reset period.
func SamePeriod(a, b time.Time) bool {
	return StartDate(a).Equal(StartDate(b))
}
