package analytics

import (
	"sort"
	"strings"

	"github.com/bobmcallan/ukdata-mcp/internal/models"
)

// RegionHolidays is one region's holidays within a comparison.
type RegionHolidays struct {
	Holidays       []models.Holiday `json:"holidays"`
	Count          int              `json:"count"`
	UniqueHolidays []models.Holiday `json:"unique_holidays"`
	UniqueDates    []string         `json:"unique_dates"`
}

// ComparisonSummary aggregates a regional comparison.
type ComparisonSummary struct {
	TotalUniqueDates int              `json:"total_unique_dates"`
	CommonHolidays   int              `json:"common_holidays"`
	RegionCounts     *Counter[string] `json:"region_counts"`
	MostHolidays     string           `json:"most_holidays,omitempty"`
	FewestHolidays   string           `json:"fewest_holidays,omitempty"`
}

// RegionalComparison partitions holidays by region and isolates dates that
// only one region observes.
type RegionalComparison struct {
	Order   []string                   `json:"-"`
	Regions map[string]*RegionHolidays `json:"regions"`
	Summary ComparisonSummary          `json:"summary"`
}

// CompareRegions builds a comparison over holidays for the given regions, in
// that order. For every input,
// sum(len(UniqueDates)) + CommonHolidays == TotalUniqueDates.
func CompareRegions(holidays []models.Holiday, regions []string) RegionalComparison {
	cmp := RegionalComparison{
		Order:   regions,
		Regions: make(map[string]*RegionHolidays, len(regions)),
	}

	dates := make(map[string]map[string]bool, len(regions))
	all := make(map[string]bool)
	for _, r := range regions {
		cmp.Regions[r] = &RegionHolidays{Holidays: []models.Holiday{}, UniqueHolidays: []models.Holiday{}, UniqueDates: []string{}}
		dates[r] = make(map[string]bool)
	}
	for _, h := range holidays {
		rh, ok := cmp.Regions[h.Region]
		if !ok {
			continue
		}
		rh.Holidays = append(rh.Holidays, h)
		dates[h.Region][h.Date] = true
		all[h.Date] = true
	}

	uniqueTotal := 0
	counts := NewCounter[string]()
	for _, r := range regions {
		rh := cmp.Regions[r]
		rh.Count = len(rh.Holidays)
		counts.AddN(r, rh.Count)

		unique := make(map[string]bool)
		for d := range dates[r] {
			if !observedElsewhere(dates, r, d) {
				unique[d] = true
			}
		}
		for _, h := range rh.Holidays {
			if unique[h.Date] {
				rh.UniqueHolidays = append(rh.UniqueHolidays, h)
			}
		}
		for d := range unique {
			rh.UniqueDates = append(rh.UniqueDates, d)
		}
		sort.Strings(rh.UniqueDates)
		uniqueTotal += len(unique)
	}

	cmp.Summary = ComparisonSummary{
		TotalUniqueDates: len(all),
		CommonHolidays:   len(all) - uniqueTotal,
		RegionCounts:     counts,
	}
	cmp.Summary.MostHolidays, _ = counts.Max()
	cmp.Summary.FewestHolidays, _ = counts.Min()
	return cmp
}

func observedElsewhere(dates map[string]map[string]bool, region, date string) bool {
	for other, set := range dates {
		if other != region && set[date] {
			return true
		}
	}
	return false
}

// RegionDifference describes what sets one region apart.
type RegionDifference struct {
	UniqueCount        int              `json:"unique_count"`
	UniqueHolidays     []models.Holiday `json:"unique_holidays"`
	NotableDifferences []string         `json:"notable_differences"`
}

// CommonDates lists dates observed by every compared region.
type CommonDates struct {
	Count int      `json:"count"`
	Dates []string `json:"dates"`
}

// RegionalDifferences is the per-region breakdown of a comparison.
type RegionalDifferences struct {
	Analysis       map[string]RegionDifference `json:"analysis"`
	CommonHolidays CommonDates                 `json:"common_holidays"`
}

var notableTitles = []struct {
	match string
	note  string
}{
	{"St Patrick's Day", "Has St Patrick's Day"},
	{"St Andrew's Day", "Has St Andrew's Day"},
	{"2nd January", "Has 2nd January holiday"},
	{"Battle of the Boyne", "Has Battle of the Boyne (Orangemen's Day)"},
}

// Differences explains each region's unique holidays and finds the dates
// all regions share.
func Differences(cmp RegionalComparison) RegionalDifferences {
	out := RegionalDifferences{
		Analysis:       make(map[string]RegionDifference, len(cmp.Order)),
		CommonHolidays: CommonDates{Dates: []string{}},
	}

	for _, r := range cmp.Order {
		rh := cmp.Regions[r]
		diff := RegionDifference{
			UniqueCount:        len(rh.UniqueHolidays),
			UniqueHolidays:     rh.UniqueHolidays,
			NotableDifferences: []string{},
		}
		for _, h := range rh.UniqueHolidays {
			if note, ok := notableDifference(h.Title); ok {
				diff.NotableDifferences = append(diff.NotableDifferences, note)
			}
		}
		out.Analysis[r] = diff
	}

	var common map[string]bool
	for _, r := range cmp.Order {
		set := make(map[string]bool)
		for _, h := range cmp.Regions[r].Holidays {
			if common == nil || common[h.Date] {
				set[h.Date] = true
			}
		}
		common = set
	}
	for d := range common {
		out.CommonHolidays.Dates = append(out.CommonHolidays.Dates, d)
	}
	sort.Strings(out.CommonHolidays.Dates)
	out.CommonHolidays.Count = len(out.CommonHolidays.Dates)
	return out
}

func notableDifference(title string) (string, bool) {
	// The feed uses typographic apostrophes.
	normalized := strings.ReplaceAll(title, "’", "'")
	for _, n := range notableTitles {
		if strings.Contains(normalized, n.match) {
			return n.note, true
		}
	}
	return "", false
}
