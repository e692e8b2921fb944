// Package recurrence decides whether recurring obligations fall inside a
// forward-looking date window.
//
// Monthly recurrence uses a modulo-30 day cycle and annual recurrence uses a
// plain year replacement without wrap-forward. Both are accepted
// approximations of calendar recurrence, kept as-is rather than corrected.
package recurrence

import (
	"math"
	"time"

	"github.com/4rnv/safebalance/internal/models"
)

// FirstDateLayout is the wire format of a scheduled payment's first occurrence.
const FirstDateLayout = "2006-01-02"

// DueWithinWeek reports whether an obligation with the given occurrence and
// first-occurrence date is due within the next 7 days of today.
//
// Weekly obligations are always due. Unknown occurrence tags are never due.
func DueWithinWeek(occurrence models.Occurrence, firstDate, today time.Time) bool {
	switch occurrence {
	case models.OccurrenceWeekly:
		return true
	case models.OccurrenceMonthly:
		daysUntil := mod(firstDate.Day()-today.Day(), 30)
		return daysUntil >= 0 && daysUntil <= 7
	case models.OccurrenceAnnual:
		// Replace the year only; if the date already passed this year the
		// difference goes negative and the obligation waits for next year.
		thisYear := time.Date(today.Year(), firstDate.Month(), firstDate.Day(),
			firstDate.Hour(), firstDate.Minute(), firstDate.Second(), 0, today.Location())
		daysDiff := int(math.Floor(thisYear.Sub(today).Hours() / 24))
		return daysDiff >= 0 && daysDiff <= 7
	default:
		return false
	}
}

// DaysUntil returns the number of days until the next occurrence for the
// recurrence kinds used by payment reminders. The second return is false for
// occurrences that reminders skip (annual and unknown tags).
func DaysUntil(occurrence models.Occurrence, firstDate, today time.Time) (int, bool) {
	switch occurrence {
	case models.OccurrenceMonthly:
		return mod(firstDate.Day()-today.Day(), 30), true
	case models.OccurrenceWeekly:
		return mod(int(firstDate.Weekday())-int(today.Weekday()), 7), true
	default:
		return 0, false
	}
}

// mod is the floored modulo, matching Python's % for negative operands.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
