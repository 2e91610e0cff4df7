package analytics

import (
	"strings"

	"github.com/bobmcallan/ukdata-mcp/internal/models"
)

// MonthPattern is the month histogram, keyed by month number.
type MonthPattern struct {
	Data          *Counter[int] `json:"data"`
	BusiestMonth  *int          `json:"busiest_month"`
	QuietestMonth *int          `json:"quietest_month"`
}

// WeekdayPattern is the weekday histogram.
type WeekdayPattern struct {
	Data          *Counter[string] `json:"data"`
	MostCommonDay *string          `json:"most_common_day"`
}

// FlagShare is how many holidays carry a flag, and what share of the total.
type FlagShare struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PatternReport is the output of Patterns.
type PatternReport struct {
	Total              int              `json:"total_holidays"`
	ByMonth            MonthPattern     `json:"by_month"`
	ByWeekday          WeekdayPattern   `json:"by_weekday"`
	SubstituteDays     FlagShare        `json:"substitute_days"`
	Bunting            FlagShare        `json:"bunting"`
	CommonHolidayTypes *Counter[string] `json:"common_holiday_types"`
}

// Patterns builds month, weekday, substitute and bunting histograms, plus the
// five most common holiday types (first word of the title).
func Patterns(holidays []models.Holiday) PatternReport {
	months := NewCounter[int]()
	weekdays := NewCounter[string]()
	types := NewCounter[string]()
	substitutes, bunting := 0, 0

	for _, h := range holidays {
		if m := h.Month(); m != 0 {
			months.Add(int(m))
		}
		if h.Weekday != "" {
			weekdays.Add(h.Weekday)
		}
		if words := strings.Fields(h.Title); len(words) > 0 {
			types.Add(words[0])
		}
		if h.IsSubstitute {
			substitutes++
		}
		if h.Bunting {
			bunting++
		}
	}

	report := PatternReport{
		Total:              len(holidays),
		ByMonth:            MonthPattern{Data: months},
		ByWeekday:          WeekdayPattern{Data: weekdays},
		SubstituteDays:     flagShare(substitutes, len(holidays)),
		Bunting:            flagShare(bunting, len(holidays)),
		CommonHolidayTypes: types.MostCommon(5),
	}
	if m, ok := months.Max(); ok {
		report.ByMonth.BusiestMonth = &m
	}
	if m, ok := months.Min(); ok {
		report.ByMonth.QuietestMonth = &m
	}
	if d, ok := weekdays.Max(); ok {
		report.ByWeekday.MostCommonDay = &d
	}
	return report
}

// flagShare splits total into flagged and unflagged so the two percentages
// always sum to 100.
func flagShare(flagged, total int) FlagShare {
	return FlagShare{Count: flagged, Percentage: ExclusivePercentages([]int{flagged, total - flagged})[0]}
}
