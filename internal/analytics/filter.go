package analytics

import (
	"sort"
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/models"
)

// ByYear keeps holidays in year.
func ByYear(holidays []models.Holiday, year int) []models.Holiday {
	return ByYearRange(holidays, year, year)
}

// ByYearRange keeps holidays with start <= year <= end.
func ByYearRange(holidays []models.Holiday, start, end int) []models.Holiday {
	var out []models.Holiday
	for _, h := range holidays {
		if h.Year >= start && h.Year <= end {
			out = append(out, h)
		}
	}
	return out
}

// InRange keeps holidays dated within [start, end], both inclusive.
func InRange(holidays []models.Holiday, start, end time.Time) []models.Holiday {
	var out []models.Holiday
	for _, h := range holidays {
		d := h.Day()
		if d.IsZero() {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			out = append(out, h)
		}
	}
	return out
}

// OnDate keeps holidays on date (YYYY-MM-DD), optionally for one region.
func OnDate(holidays []models.Holiday, date, region string) []models.Holiday {
	var out []models.Holiday
	for _, h := range holidays {
		if h.Date == date && (region == "" || h.Region == region) {
			out = append(out, h)
		}
	}
	return out
}

// SortByDate sorts holidays ascending by date. Equal dates keep their input
// order.
func SortByDate(holidays []models.Holiday) []models.Holiday {
	out := make([]models.Holiday, len(holidays))
	copy(out, holidays)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// Years returns the distinct years covered, ascending.
func Years(holidays []models.Holiday) []int {
	seen := make(map[int]bool)
	var years []int
	for _, h := range holidays {
		if h.Year != 0 && !seen[h.Year] {
			seen[h.Year] = true
			years = append(years, h.Year)
		}
	}
	sort.Ints(years)
	return years
}

// RegionsOf returns the distinct regions present, in first-seen order.
func RegionsOf(holidays []models.Holiday) []string {
	seen := make(map[string]bool)
	var regions []string
	for _, h := range holidays {
		if !seen[h.Region] {
			seen[h.Region] = true
			regions = append(regions, h.Region)
		}
	}
	return regions
}
