package analytics

import (
	"fmt"
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/models"
)

// ClusterWindow is the largest gap between consecutive holidays that still
// counts as a cluster.
const ClusterWindow = 7 * 24 * time.Hour

const (
	adviceSpreadDeadlines = "Consider spreading project deadlines around bank holiday periods"
	adviceCluster         = "Holiday cluster detected - plan for extended reduced productivity period"
)

// ImpactHoliday tags a holiday as landing on a weekday or weekend.
type ImpactHoliday struct {
	models.Holiday
	WeekdayImpact string `json:"weekday_impact"`
}

// Impact counts business days lost within a period.
type Impact struct {
	TotalHolidays                  int     `json:"total_holidays"`
	WeekdayHolidays                int     `json:"weekday_holidays"`
	WeekendHolidays                int     `json:"weekend_holidays"`
	TotalWeekdays                  int     `json:"total_weekdays"`
	BusinessDaysLost               int     `json:"business_days_lost"`
	BusinessDayReductionPercentage float64 `json:"business_day_reduction_percentage"`
}

// ImpactReport is the output of BusinessImpact.
type ImpactReport struct {
	TotalDays       int             `json:"total_days"`
	Impact          Impact          `json:"business_impact"`
	Holidays        []ImpactHoliday `json:"holidays"`
	Recommendations []string        `json:"recommendations"`
}

// BusinessImpact analyses holidays within [start, end] inclusive. Holidays
// are taken in date order; a cluster is any two consecutive holidays no more
// than ClusterWindow apart, reported once.
func BusinessImpact(holidays []models.Holiday, start, end time.Time) ImpactReport {
	start, end = truncateDay(start), truncateDay(end)
	inRange := SortByDate(InRange(holidays, start, end))

	report := ImpactReport{
		TotalDays:       DaysBetween(start, end) + 1,
		Holidays:        make([]ImpactHoliday, 0, len(inRange)),
		Recommendations: []string{},
	}

	weekdayHolidays := 0
	for _, h := range inRange {
		impact := "weekend"
		if h.IsWeekday() {
			impact = "weekday"
			weekdayHolidays++
		}
		report.Holidays = append(report.Holidays, ImpactHoliday{Holiday: h, WeekdayImpact: impact})
	}

	totalWeekdays := WeekdaysBetween(start, end)
	report.Impact = Impact{
		TotalHolidays:                  len(inRange),
		WeekdayHolidays:                weekdayHolidays,
		WeekendHolidays:                len(inRange) - weekdayHolidays,
		TotalWeekdays:                  totalWeekdays,
		BusinessDaysLost:               weekdayHolidays,
		BusinessDayReductionPercentage: Percent(weekdayHolidays, totalWeekdays),
	}

	if weekdayHolidays > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Plan for %d business day(s) lost to bank holidays", weekdayHolidays))
	}
	if weekdayHolidays > 2 {
		report.Recommendations = append(report.Recommendations, adviceSpreadDeadlines)
	}
	for i := 1; i < len(inRange); i++ {
		if inRange[i].Day().Sub(inRange[i-1].Day()) <= ClusterWindow {
			report.Recommendations = append(report.Recommendations, adviceCluster)
			break
		}
	}
	return report
}

// WeekdaysBetween counts Monday to Friday dates in [start, end] inclusive.
func WeekdaysBetween(start, end time.Time) int {
	count := 0
	for d := truncateDay(start); !d.After(truncateDay(end)); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}
