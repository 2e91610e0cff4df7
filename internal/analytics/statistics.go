package analytics

import "github.com/bobmcallan/ukdata-mcp/internal/models"

// BasicCounts summarises a holiday set.
type BasicCounts struct {
	Total          int `json:"total"`
	WithBunting    int `json:"with_bunting"`
	SubstituteDays int `json:"substitute_days"`
	YearsCovered   int `json:"years_covered"`
}

// Statistics is the output of Stats.
type Statistics struct {
	BasicCounts          BasicCounts      `json:"basic_counts"`
	MonthlyDistribution  *Counter[string] `json:"monthly_distribution"`
	WeekdayDistribution  *Counter[string] `json:"weekday_distribution"`
	YearlyCounts         *Counter[int]    `json:"yearly_counts,omitempty"`
	MostCommonHolidays   *Counter[string] `json:"most_common_holidays"`
	RegionalDistribution *Counter[string] `json:"regional_distribution,omitempty"`
}

// Stats computes distribution statistics. Yearly counts appear only when more
// than one year is covered; the regional distribution only when requested.
func Stats(holidays []models.Holiday, byRegion bool) Statistics {
	monthly := NewCounter[string]()
	weekdays := NewCounter[string]()
	yearly := NewCounter[int]()
	titles := NewCounter[string]()
	regions := NewCounter[string]()
	var counts BasicCounts

	for _, h := range holidays {
		counts.Total++
		if h.Bunting {
			counts.WithBunting++
		}
		if h.IsSubstitute {
			counts.SubstituteDays++
		}
		if m := h.Month(); m != 0 {
			monthly.Add(m.String()[:3])
		}
		if h.Weekday != "" {
			weekdays.Add(h.Weekday)
		}
		if h.Year != 0 {
			yearly.Add(h.Year)
		}
		titles.Add(h.Title)
		regions.Add(h.Region)
	}
	counts.YearsCovered = yearly.Len()

	stats := Statistics{
		BasicCounts:         counts,
		MonthlyDistribution: monthly,
		WeekdayDistribution: weekdays,
		MostCommonHolidays:  titles.MostCommon(10),
	}
	if yearly.Len() > 1 {
		stats.YearlyCounts = yearly
	}
	if byRegion {
		stats.RegionalDistribution = regions
	}
	return stats
}
