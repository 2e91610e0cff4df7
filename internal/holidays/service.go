// Package holidays serves the gov.uk bank holidays feed: validation, one
// cached fetch of the whole feed, then analytics over the normalized records.
package holidays

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/analytics"
	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/fetch"
	"github.com/bobmcallan/ukdata-mcp/internal/models"
)

// Supported year window for year-scoped queries.
const (
	MinYear = 2019
	MaxYear = 2030
)

const (
	upstreamName  = "holidays"
	feedOperation = "bank_holidays_all_data"
	dataSource    = "Official UK Government data"
)

// Service answers bank holiday queries.
type Service struct {
	fetcher *fetch.Fetcher
	url     string
	logger  *common.Logger
	now     func() time.Time
}

// NewService creates a Service reading the feed at url.
func NewService(fetcher *fetch.Fetcher, url string, logger *common.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		url:     url,
		logger:  logger,
		now:     time.Now,
	}
}

// SetClock overrides the time source used for "today".
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// URL returns the feed address.
func (s *Service) URL() string {
	return s.url
}

// dataset is one fetch of the feed, normalized.
type dataset struct {
	feed      models.HolidayFeed
	fetchedAt time.Time
	cached    bool
	empty     bool // built from a 404; every region is empty
}

func (s *Service) load(ctx context.Context, policy fetch.CachePolicy) (*dataset, error) {
	result := s.fetcher.Get(ctx, fetch.Request{
		Upstream:  upstreamName,
		Operation: feedOperation,
		URL:       s.url,
		UseCache:  policy.Use,
		MaxAge:    policy.MaxAge,
	})
	if !result.OK() {
		return nil, result.Err
	}

	ds := &dataset{feed: models.HolidayFeed{}, fetchedAt: result.FetchedAt, cached: result.Cached}
	// An upstream 404 arrives as an empty list: treat it as an empty feed.
	if result.Count == 0 && strings.HasPrefix(strings.TrimSpace(string(result.Data)), "[") {
		ds.empty = true
		return ds, nil
	}
	if err := result.Decode(&ds.feed); err != nil {
		return nil, &fetch.Error{Kind: fetch.KindUpstream, Message: "Unexpected bank holidays feed format", Err: err}
	}
	return ds, nil
}

// holidays loads the feed and normalizes region, where "" means all.
func (s *Service) holidays(ctx context.Context, region string, policy fetch.CachePolicy) ([]models.Holiday, *dataset, error) {
	ds, err := s.load(ctx, policy)
	if err != nil {
		return nil, nil, err
	}
	if ds.empty {
		return []models.Holiday{}, ds, nil
	}
	hs, ok := ds.feed.Holidays(region)
	if !ok {
		return nil, nil, &fetch.Error{Kind: fetch.KindUpstream, Message: fmt.Sprintf("Region '%s' not found in data", region)}
	}
	return hs, ds, nil
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func invalid(format string, args ...any) error {
	return &fetch.Error{Kind: fetch.KindValidation, Message: fmt.Sprintf(format, args...)}
}

// normalizeRegion maps "all" to "" and validates anything else.
func normalizeRegion(region string, allowAll bool) (string, error) {
	if region == "" || (allowAll && region == "all") {
		return "", nil
	}
	if !models.ValidRegion(region) {
		if allowAll {
			return "", invalid("Invalid region. Must be 'all' or one of: %s", strings.Join(models.Regions, ", "))
		}
		return "", invalid("Invalid region. Must be one of: %s", strings.Join(models.Regions, ", "))
	}
	return region, nil
}

func regionLabel(region string) string {
	if region == "" {
		return "all"
	}
	return region
}

func parseDate(value string) (time.Time, bool) {
	d, err := time.Parse(models.DateLayout, value)
	return d, err == nil
}

func validYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// Status probes the feed without the cache.
func (s *Service) Status(ctx context.Context) StatusResponse {
	_, err := s.load(ctx, fetch.CachePolicy{})
	resp := StatusResponse{
		Status:           "ok",
		APIAvailable:     err == nil,
		Message:          "UK Bank Holidays API is accessible",
		BaseURL:          s.url,
		RegionsSupported: models.Regions,
		DataSource:       dataSource,
	}
	if err != nil {
		resp.Status = "error"
		resp.Message = fetch.AsError(err).Message
	}
	return resp
}

// All returns every holiday for region ("" or "all" for every region).
func (s *Service) All(ctx context.Context, region string, policy fetch.CachePolicy) (*HolidaysResponse, error) {
	region, err := normalizeRegion(region, true)
	if err != nil {
		return nil, err
	}
	hs, ds, err := s.holidays(ctx, region, policy)
	if err != nil {
		return nil, err
	}

	resp := &HolidaysResponse{
		Status:       fetch.StatusSuccess,
		Region:       regionLabel(region),
		Data:         nonNil(hs),
		Count:        len(hs),
		YearsCovered: nonNilInts(analytics.Years(hs)),
		FetchedAt:    ds.fetchedAt,
		Cached:       ds.cached,
	}
	if region == "" {
		resp.RegionsIncluded = ds.feed.RegionNames()
	}
	return resp, nil
}

// ByYear returns the holidays in year, sorted by date.
func (s *Service) ByYear(ctx context.Context, year int, region string, policy fetch.CachePolicy) (*YearResponse, error) {
	if !validYear(year) {
		return nil, invalid("Year must be between %d and %d (based on available data)", MinYear, MaxYear)
	}
	region, err := normalizeRegion(region, true)
	if err != nil {
		return nil, err
	}
	hs, ds, err := s.holidays(ctx, region, policy)
	if err != nil {
		return nil, err
	}

	inYear := analytics.SortByDate(analytics.ByYear(hs, year))
	return &YearResponse{
		Status:          fetch.StatusSuccess,
		Year:            year,
		Region:          regionLabel(region),
		Data:            inYear,
		Count:           len(inYear),
		RegionsIncluded: nonNilStrings(analytics.RegionsOf(inYear)),
		FetchedAt:       ds.fetchedAt,
	}, nil
}

// IsHoliday reports whether date is a bank holiday in region.
func (s *Service) IsHoliday(ctx context.Context, date, region string, policy fetch.CachePolicy) (*DateCheckResponse, error) {
	day, ok := parseDate(date)
	if !ok {
		return nil, invalid("Invalid date format. Use YYYY-MM-DD format (e.g., '2024-12-25')")
	}
	region, err := normalizeRegion(region, true)
	if err != nil {
		return nil, err
	}
	hs, _, err := s.holidays(ctx, region, policy)
	if err != nil {
		return nil, err
	}

	matches := nonNil(analytics.OnDate(hs, date, region))
	return &DateCheckResponse{
		Status:        fetch.StatusSuccess,
		Date:          date,
		Region:        regionLabel(region),
		IsBankHoliday: len(matches) > 0,
		Holidays:      matches,
		Count:         len(matches),
		Weekday:       day.Weekday().String(),
	}, nil
}

// Next returns the next limit holidays from today.
func (s *Service) Next(ctx context.Context, region string, limit int, policy fetch.CachePolicy) (*NextResponse, error) {
	if limit < 1 || limit > 50 {
		return nil, invalid("Limit must be between 1 and 50")
	}
	region, err := normalizeRegion(region, true)
	if err != nil {
		return nil, err
	}
	hs, _, err := s.holidays(ctx, region, policy)
	if err != nil {
		return nil, err
	}

	today := s.today()
	next := analytics.NextN(hs, today, limit)
	resp := &NextResponse{
		Status: fetch.StatusSuccess,
		Region: regionLabel(region),
		Data:   next,
		Count:  len(next),
		Today:  today.Format(models.DateLayout),
	}
	if len(next) > 0 {
		resp.NextHoliday = &next[0]
	}
	return resp, nil
}

// Upcoming returns holidays within daysAhead days of today.
func (s *Service) Upcoming(ctx context.Context, daysAhead int, region string, policy fetch.CachePolicy) (*UpcomingResponse, error) {
	if daysAhead < 1 || daysAhead > 365 {
		return nil, invalid("days_ahead must be between 1 and 365")
	}
	region, err := normalizeRegion(region, true)
	if err != nil {
		return nil, err
	}
	hs, _, err := s.holidays(ctx, region, policy)
	if err != nil {
		return nil, err
	}

	today := s.today()
	within := analytics.WithinDays(hs, today, daysAhead)
	return &UpcomingResponse{
		Status:        fetch.StatusSuccess,
		Region:        regionLabel(region),
		TimeframeDays: daysAhead,
		Data:          within,
		Count:         len(within),
		Period: Period{
			Start: today.Format(models.DateLayout),
			End:   today.AddDate(0, 0, daysAhead).Format(models.DateLayout),
		},
	}, nil
}

// ByDate describes the holidays on date in detail.
func (s *Service) ByDate(ctx context.Context, date, region string, policy fetch.CachePolicy) (*DateDetailResponse, error) {
	if _, ok := parseDate(date); !ok {
		return nil, invalid("Invalid date format. Use YYYY-MM-DD format")
	}
	check, err := s.IsHoliday(ctx, date, region, policy)
	if err != nil {
		return nil, err
	}

	resp := &DateDetailResponse{
		Status:          fetch.StatusSuccess,
		Date:            date,
		Region:          check.Region,
		IsBankHoliday:   check.IsBankHoliday,
		Weekday:         check.Weekday,
		Holidays:        check.Holidays,
		Count:           check.Count,
		RegionsAffected: []string{},
		Titles:          []string{},
		SubstituteDays:  []models.Holiday{},
	}
	if !check.IsBankHoliday {
		resp.Message = fmt.Sprintf("No bank holidays found on %s", date)
		return resp, nil
	}
	resp.RegionsAffected = analytics.RegionsOf(check.Holidays)
	for _, h := range check.Holidays {
		resp.Titles = append(resp.Titles, h.Title)
		resp.HasBunting = resp.HasBunting || h.Bunting
		if h.IsSubstitute {
			resp.SubstituteDays = append(resp.SubstituteDays, h)
		}
	}
	return resp, nil
}

// CompareRegions compares every region's holidays in year.
func (s *Service) CompareRegions(ctx context.Context, year int, policy fetch.CachePolicy) (*ComparisonResponse, error) {
	if !validYear(year) {
		return nil, invalid("Year must be between %d and %d", MinYear, MaxYear)
	}
	hs, _, err := s.holidays(ctx, "", policy)
	if err != nil {
		return nil, err
	}

	cmp := analytics.CompareRegions(analytics.SortByDate(analytics.ByYear(hs, year)), models.Regions)
	return &ComparisonResponse{
		Status:             fetch.StatusSuccess,
		Year:               year,
		RegionalComparison: cmp,
	}, nil
}

// RegionalDifferences explains what is unique to each region in year.
func (s *Service) RegionalDifferences(ctx context.Context, year int, policy fetch.CachePolicy) (*DifferencesResponse, error) {
	cmp, err := s.CompareRegions(ctx, year, policy)
	if err != nil {
		return nil, err
	}
	return &DifferencesResponse{
		Status:              fetch.StatusSuccess,
		Year:                year,
		RegionalDifferences: analytics.Differences(cmp.RegionalComparison),
	}, nil
}

// Patterns analyses holidays between startYear and endYear inclusive. Zero
// years take the defaults: MinYear and the current year plus two.
func (s *Service) Patterns(ctx context.Context, startYear, endYear int, region string, policy fetch.CachePolicy) (*PatternsResponse, error) {
	if startYear == 0 {
		startYear = MinYear
	}
	if endYear == 0 {
		endYear = s.now().Year() + 2
	}
	if startYear < MinYear || endYear > MaxYear || startYear >= endYear {
		return nil, invalid("Invalid year range. Must be between %d-%d and start_year < end_year", MinYear, MaxYear)
	}
	region, err := normalizeRegion(region, true)
	if err != nil {
		return nil, err
	}
	hs, _, err := s.holidays(ctx, region, policy)
	if err != nil {
		return nil, err
	}

	selected := analytics.ByYearRange(hs, startYear, endYear)
	return &PatternsResponse{
		Status:        fetch.StatusSuccess,
		Period:        YearPeriod{StartYear: startYear, EndYear: endYear},
		Region:        regionLabel(region),
		TotalHolidays: len(selected),
		Patterns:      analytics.Patterns(selected),
	}, nil
}

// Statistics summarises holidays for region, optionally restricted to year
// (zero means every year).
func (s *Service) Statistics(ctx context.Context, region string, year int, policy fetch.CachePolicy) (*StatisticsResponse, error) {
	region, err := normalizeRegion(region, true)
	if err != nil {
		return nil, err
	}
	hs, _, err := s.holidays(ctx, region, policy)
	if err != nil {
		return nil, err
	}

	resp := &StatisticsResponse{
		Status: fetch.StatusSuccess,
		Region: regionLabel(region),
		Year:   "all",
	}
	if year != 0 {
		resp.Year = year
		hs = analytics.ByYear(hs, year)
		if len(hs) == 0 {
			resp.Message = fmt.Sprintf("No holidays found for year %d", year)
			return resp, nil
		}
	}
	resp.TotalHolidays = len(hs)
	if len(hs) > 0 {
		stats := analytics.Stats(hs, region == "")
		resp.Statistics = &stats
	}
	return resp, nil
}

// BusinessImpact reports working days lost to holidays between start and end.
func (s *Service) BusinessImpact(ctx context.Context, start, end, region string, policy fetch.CachePolicy) (*ImpactResponse, error) {
	startDay, okStart := parseDate(start)
	endDay, okEnd := parseDate(end)
	if !okStart || !okEnd {
		return nil, invalid("Invalid date format. Use YYYY-MM-DD format")
	}
	if !startDay.Before(endDay) {
		return nil, invalid("Start date must be before end date")
	}
	region, err := normalizeRegion(region, true)
	if err != nil {
		return nil, err
	}
	hs, _, err := s.holidays(ctx, region, policy)
	if err != nil {
		return nil, err
	}

	report := analytics.BusinessImpact(hs, startDay, endDay)
	return &ImpactResponse{
		Status:          fetch.StatusSuccess,
		Period:          ImpactPeriod{Start: start, End: end, TotalDays: report.TotalDays},
		Region:          regionLabel(region),
		Impact:          report.Impact,
		Count:           len(report.Holidays),
		Holidays:        report.Holidays,
		Recommendations: report.Recommendations,
	}, nil
}

func nonNil(hs []models.Holiday) []models.Holiday {
	if hs == nil {
		return []models.Holiday{}
	}
	return hs
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
