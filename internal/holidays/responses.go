package holidays

import (
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/analytics"
	"github.com/bobmcallan/ukdata-mcp/internal/models"
)

// StatusResponse reports whether the feed is reachable.
type StatusResponse struct {
	Status           string   `json:"status"`
	APIAvailable     bool     `json:"api_available"`
	Message          string   `json:"message"`
	BaseURL          string   `json:"base_url"`
	RegionsSupported []string `json:"regions_supported"`
	DataSource       string   `json:"data_source"`
}

type HolidaysResponse struct {
	Status          string           `json:"status"`
	Region          string           `json:"region"`
	Data            []models.Holiday `json:"data"`
	Count           int              `json:"count"`
	RegionsIncluded []string         `json:"regions_included,omitempty"`
	YearsCovered    []int            `json:"years_covered"`
	FetchedAt       time.Time        `json:"fetched_at"`
	Cached          bool             `json:"cached"`
}

type YearResponse struct {
	Status          string           `json:"status"`
	Year            int              `json:"year"`
	Region          string           `json:"region"`
	Data            []models.Holiday `json:"data"`
	Count           int              `json:"count"`
	RegionsIncluded []string         `json:"regions_included"`
	FetchedAt       time.Time        `json:"fetched_at"`
}

type DateCheckResponse struct {
	Status        string           `json:"status"`
	Date          string           `json:"date"`
	Region        string           `json:"region"`
	IsBankHoliday bool             `json:"is_bank_holiday"`
	Holidays      []models.Holiday `json:"holidays"`
	Count         int              `json:"count"`
	Weekday       string           `json:"weekday"`
}

type NextResponse struct {
	Status      string                   `json:"status"`
	Region      string                   `json:"region"`
	Data        []models.UpcomingHoliday `json:"data"`
	Count       int                      `json:"count"`
	NextHoliday *models.UpcomingHoliday  `json:"next_holiday"`
	Today       string                   `json:"today"`
}

type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type UpcomingResponse struct {
	Status        string                   `json:"status"`
	Region        string                   `json:"region"`
	TimeframeDays int                      `json:"timeframe_days"`
	Data          []models.UpcomingHoliday `json:"data"`
	Count         int                      `json:"count"`
	Period        Period                   `json:"period"`
}

type DateDetailResponse struct {
	Status          string           `json:"status"`
	Date            string           `json:"date"`
	Region          string           `json:"region"`
	IsBankHoliday   bool             `json:"is_bank_holiday"`
	Weekday         string           `json:"weekday"`
	Holidays        []models.Holiday `json:"holidays"`
	Count           int              `json:"count"`
	RegionsAffected []string         `json:"regions_affected"`
	Titles          []string         `json:"titles"`
	HasBunting      bool             `json:"has_bunting"`
	SubstituteDays  []models.Holiday `json:"substitute_days"`
	Message         string           `json:"message,omitempty"`
}

type ComparisonResponse struct {
	Status string `json:"status"`
	Year   int    `json:"year"`
	analytics.RegionalComparison
}

type DifferencesResponse struct {
	Status string `json:"status"`
	Year   int    `json:"year"`
	analytics.RegionalDifferences
}

type YearPeriod struct {
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`
}

type PatternsResponse struct {
	Status        string                  `json:"status"`
	Period        YearPeriod              `json:"period"`
	Region        string                  `json:"region"`
	TotalHolidays int                     `json:"total_holidays"`
	Patterns      analytics.PatternReport `json:"patterns"`
}

// StatisticsResponse carries Year as either an int or "all".
type StatisticsResponse struct {
	Status        string                `json:"status"`
	Region        string                `json:"region"`
	Year          any                   `json:"year"`
	TotalHolidays int                   `json:"total_holidays"`
	Statistics    *analytics.Statistics `json:"statistics"`
	Message       string                `json:"message,omitempty"`
}

type ImpactPeriod struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	TotalDays int    `json:"total_days"`
}

type ImpactResponse struct {
	Status          string                    `json:"status"`
	Period          ImpactPeriod              `json:"period"`
	Region          string                    `json:"region"`
	Impact          analytics.Impact          `json:"business_impact"`
	Count           int                       `json:"count"`
	Holidays        []analytics.ImpactHoliday `json:"holidays"`
	Recommendations []string                  `json:"recommendations"`
}
