package analytics

import "github.com/bobmcallan/ukdata-mcp/internal/models"

// Activity thresholds for AreaSummary.AreaAssessment, in crimes per month.
const (
	HighActivityThreshold   = 50
	MediumActivityThreshold = 20
)

// AreaSummary condenses an area report.
type AreaSummary struct {
	TotalCrimes       int              `json:"total_crimes"`
	TotalOutcomes     int              `json:"total_outcomes"`
	TotalStopSearches int              `json:"total_stop_searches"`
	CrimeCategories   *Counter[string] `json:"crime_categories"`
	MostCommonCrime   *string          `json:"most_common_crime"`
	AreaAssessment    string           `json:"area_assessment"`
}

// SummarizeArea tallies crime categories and grades the area by crime count.
// crimeCount is the upstream count, which may differ from len(crimes) when
// records could not be parsed.
func SummarizeArea(crimeCount int, crimes []models.Crime, outcomes, stopSearches int) AreaSummary {
	categories := NewCounter[string]()
	for _, c := range crimes {
		categories.Add(c.Category)
	}

	summary := AreaSummary{
		TotalCrimes:       crimeCount,
		TotalOutcomes:     outcomes,
		TotalStopSearches: stopSearches,
		CrimeCategories:   categories,
		AreaAssessment:    AssessActivity(crimeCount),
	}
	if top, ok := categories.Max(); ok {
		summary.MostCommonCrime = &top
	}
	return summary
}

// AssessActivity grades a crime count as high, medium or low activity.
func AssessActivity(crimes int) string {
	switch {
	case crimes > HighActivityThreshold:
		return "high activity"
	case crimes > MediumActivityThreshold:
		return "medium activity"
	default:
		return "low activity"
	}
}

// Share is one histogram bucket with its percentage of the total.
type Share struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StopSearchReport is the output of StopSearchPatterns.
type StopSearchReport struct {
	Total            int              `json:"total"`
	ByObject         []Share          `json:"by_object_of_search"`
	ByOutcome        []Share          `json:"by_outcome"`
	ByWeekday        *Counter[string] `json:"by_weekday"`
	ByType           *Counter[string] `json:"by_type"`
	MostCommonObject *string          `json:"most_common_object"`
	MostCommonDay    *string          `json:"most_common_day"`
}

// StopSearchPatterns histograms stop-and-search records by object, outcome,
// weekday and type. Object and outcome shares each sum to 100.
func StopSearchPatterns(records []models.StopSearch) StopSearchReport {
	objects := NewCounter[string]()
	outcomes := NewCounter[string]()
	weekdays := NewCounter[string]()
	types := NewCounter[string]()

	for _, r := range records {
		objects.Add(orUnknown(r.ObjectOfSearch))
		outcomes.Add(orUnknown(r.Outcome))
		if r.Weekday != "" {
			weekdays.Add(r.Weekday)
		}
		types.Add(orUnknown(r.Type))
	}

	report := StopSearchReport{
		Total:     len(records),
		ByObject:  shares(objects.MostCommon(0)),
		ByOutcome: shares(outcomes.MostCommon(0)),
		ByWeekday: weekdays,
		ByType:    types,
	}
	if top, ok := objects.Max(); ok {
		report.MostCommonObject = &top
	}
	if day, ok := weekdays.Max(); ok {
		report.MostCommonDay = &day
	}
	return report
}

func shares(c *Counter[string]) []Share {
	keys := c.Keys()
	counts := make([]int, len(keys))
	for i, k := range keys {
		counts[i] = c.Get(k)
	}
	pcts := ExclusivePercentages(counts)

	out := make([]Share, len(keys))
	for i, k := range keys {
		out[i] = Share{Key: k, Count: counts[i], Percentage: pcts[i]}
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
