package analytics

import (
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/models"
)

// NextN returns up to n holidays on or after today, ascending by date.
func NextN(holidays []models.Holiday, today time.Time, n int) []models.UpcomingHoliday {
	upcoming := upcoming(holidays, today, time.Time{})
	if n >= 0 && len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming
}

// WithinDays returns holidays in [today, today+days], ascending by date.
func WithinDays(holidays []models.Holiday, today time.Time, days int) []models.UpcomingHoliday {
	return upcoming(holidays, today, truncateDay(today).AddDate(0, 0, days))
}

func upcoming(holidays []models.Holiday, today, until time.Time) []models.UpcomingHoliday {
	start := truncateDay(today)
	var selected []models.Holiday
	for _, h := range holidays {
		d := h.Day()
		if d.IsZero() || d.Before(start) {
			continue
		}
		if !until.IsZero() && d.After(until) {
			continue
		}
		selected = append(selected, h)
	}

	sorted := SortByDate(selected)
	out := make([]models.UpcomingHoliday, 0, len(sorted))
	for _, h := range sorted {
		out = append(out, models.UpcomingHoliday{Holiday: h, DaysUntil: DaysBetween(start, h.Day())})
	}
	return out
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(truncateDay(b).Sub(truncateDay(a)).Hours() / 24)
}

// truncateDay drops the time of day, keeping the calendar date in UTC.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
