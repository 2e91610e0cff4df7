package models

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the holiday feed's date format.
const DateLayout = "2006-01-02"

// Region identifiers used by the gov.uk bank holidays feed.
const (
	RegionEnglandAndWales = "england-and-wales"
	RegionScotland        = "scotland"
	RegionNorthernIreland = "northern-ireland"
)

// Regions lists the supported regions in feed order.
var Regions = []string{RegionEnglandAndWales, RegionScotland, RegionNorthernIreland}

// ValidRegion reports whether r is a supported region.
func ValidRegion(r string) bool {
	for _, region := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

// RawHoliday is one event as published in the feed.
type RawHoliday struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Notes   string `json:"notes"`
	Bunting bool   `json:"bunting"`
}

// RegionEvents is one region's block in the feed.
type RegionEvents struct {
	Division string       `json:"division"`
	Events   []RawHoliday `json:"events"`
}

// HolidayFeed is the decoded bank-holidays.json document, keyed by region.
type HolidayFeed map[string]RegionEvents

// RegionNames returns the regions present in the feed, known regions first
// in feed order, then anything else alphabetically.
func (f HolidayFeed) RegionNames() []string {
	names := make([]string, 0, len(f))
	for _, r := range Regions {
		if _, ok := f[r]; ok {
			names = append(names, r)
		}
	}
	var extra []string
	for r := range f {
		if !ValidRegion(r) {
			extra = append(extra, r)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Holidays normalizes the feed. An empty region selects every region.
// The second return is false when a specific region is absent.
func (f HolidayFeed) Holidays(region string) ([]Holiday, bool) {
	if region != "" {
		block, ok := f[region]
		if !ok {
			return nil, false
		}
		return normalizeEvents(block.Events, region), true
	}

	var all []Holiday
	for _, name := range f.RegionNames() {
		all = append(all, normalizeEvents(f[name].Events, name)...)
	}
	return all, true
}

func normalizeEvents(events []RawHoliday, region string) []Holiday {
	out := make([]Holiday, 0, len(events))
	for _, e := range events {
		out = append(out, NewHoliday(e, region))
	}
	return out
}

// Holiday is a normalized bank holiday. Weekday, Year and IsSubstitute are
// derived from the raw fields by NewHoliday and nowhere else.
type Holiday struct {
	Title        string `json:"title"`
	Date         string `json:"date"`
	Region       string `json:"region"`
	Notes        string `json:"notes"`
	Bunting      bool   `json:"bunting"`
	IsSubstitute bool   `json:"is_substitute"`
	Weekday      string `json:"weekday,omitempty"`
	Year         int    `json:"year,omitempty"`

	day time.Time
}

// NewHoliday normalizes a raw feed event for region.
func NewHoliday(raw RawHoliday, region string) Holiday {
	h := Holiday{
		Title:        raw.Title,
		Date:         raw.Date,
		Region:       region,
		Notes:        raw.Notes,
		Bunting:      raw.Bunting,
		IsSubstitute: strings.Contains(strings.ToLower(raw.Notes), "substitute"),
	}
	if day, err := time.Parse(DateLayout, raw.Date); err == nil {
		h.day = day
		h.Weekday = day.Weekday().String()
		h.Year = day.Year()
	}
	return h
}

// Day returns the parsed date, or the zero time when the raw date was invalid.
func (h Holiday) Day() time.Time {
	return h.day
}

// Month returns the calendar month, or 0 when the date was invalid.
func (h Holiday) Month() time.Month {
	if h.day.IsZero() {
		return 0
	}
	return h.day.Month()
}

// IsWeekday reports whether the holiday falls Monday to Friday.
func (h Holiday) IsWeekday() bool {
	if h.day.IsZero() {
		return false
	}
	wd := h.day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// UpcomingHoliday annotates a holiday with its distance from a reference day.
type UpcomingHoliday struct {
	Holiday
	DaysUntil int `json:"days_until"`
}
