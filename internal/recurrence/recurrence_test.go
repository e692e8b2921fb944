package recurrence

import (
	"testing"
	"time"

	"github.com/4rnv/safebalance/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeeklyAlwaysDue(t *testing.T) {
	t.Parallel()

	today := date(2025, time.March, 10)
	firstDates := []time.Time{
		date(2024, time.January, 1),
		date(2025, time.March, 10),
		date(2026, time.December, 31),
	}
	for _, fd := range firstDates {
		if !DueWithinWeek(models.OccurrenceWeekly, fd, today) {
			t.Fatalf("weekly payment with first date %s should always be due", fd.Format(FirstDateLayout))
		}
	}
}

func TestMonthlyDueWindow(t *testing.T) {
	t.Parallel()

	today := date(2025, time.March, 10)

	// Same day of month: days-until = 0, included.
	if !DueWithinWeek(models.OccurrenceMonthly, date(2024, time.June, 10), today) {
		t.Fatal("monthly payment on today's day-of-month should be due")
	}
	// 7 days ahead: boundary, included.
	if !DueWithinWeek(models.OccurrenceMonthly, date(2024, time.June, 17), today) {
		t.Fatal("monthly payment 7 days ahead should be due")
	}
	// 8 days ahead: excluded.
	if DueWithinWeek(models.OccurrenceMonthly, date(2024, time.June, 18), today) {
		t.Fatal("monthly payment 8 days ahead should not be due")
	}
	// Day before today's day wraps to 29 under the mod-30 cycle: excluded.
	if DueWithinWeek(models.OccurrenceMonthly, date(2024, time.June, 9), today) {
		t.Fatal("monthly payment that wrapped past should not be due")
	}
}

func TestAnnualDueWindow(t *testing.T) {
	t.Parallel()

	today := date(2025, time.March, 10)

	if !DueWithinWeek(models.OccurrenceAnnual, date(2020, time.March, 14), today) {
		t.Fatal("annual payment 4 days out should be due")
	}
	if DueWithinWeek(models.OccurrenceAnnual, date(2020, time.March, 20), today) {
		t.Fatal("annual payment 10 days out should not be due")
	}
	// Already passed this year: no wrap-forward, not due until next year.
	if DueWithinWeek(models.OccurrenceAnnual, date(2020, time.February, 1), today) {
		t.Fatal("annual payment that passed this year should not be due")
	}
}

func TestUnknownOccurrenceIgnored(t *testing.T) {
	t.Parallel()

	today := date(2025, time.March, 10)
	if DueWithinWeek(models.Occurrence("daily"), today, today) {
		t.Fatal("unknown occurrence tags must never be due")
	}
}

func TestDaysUntil(t *testing.T) {
	t.Parallel()

	today := date(2025, time.March, 10) // a Monday

	if d, ok := DaysUntil(models.OccurrenceMonthly, date(2025, time.January, 13), today); !ok || d != 3 {
		t.Fatalf("monthly days-until = %d (ok=%v), want 3", d, ok)
	}
	// Wednesday first date against a Monday today.
	if d, ok := DaysUntil(models.OccurrenceWeekly, date(2025, time.March, 12), today); !ok || d != 2 {
		t.Fatalf("weekly days-until = %d (ok=%v), want 2", d, ok)
	}
	if _, ok := DaysUntil(models.OccurrenceAnnual, today, today); ok {
		t.Fatal("annual occurrences are skipped by reminders")
	}
}
