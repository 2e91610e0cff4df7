package mcp

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
)

// Upstream groups for the catalog.
const (
	GroupHolidays = "holidays"
	GroupPolice   = "police"
	GroupServer   = "server"
)

// CatalogTool describes one MCP tool: its schema and its default cache age.
type CatalogTool struct {
	Name        string         `json:"name"`
	Group       string         `json:"group"`
	Description string         `json:"description"`
	Params      []CatalogParam `json:"params"`
	MaxAge      time.Duration  `json:"-"`
	Cached      bool           `json:"cached"`
}

// CatalogParam describes one parameter for a catalog tool.
type CatalogParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // string, number, integer, boolean
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
}

// DefaultMaxAgeSeconds is MaxAge in whole seconds, as the cache_max_age
// parameter takes it.
func (ct CatalogTool) DefaultMaxAgeSeconds() int {
	return int(ct.MaxAge / time.Second)
}

func str(name, description string) CatalogParam {
	return CatalogParam{Name: name, Type: "string", Description: description}
}

func required(p CatalogParam) CatalogParam {
	p.Required = true
	return p
}

func withDefault(p CatalogParam, v any) CatalogParam {
	p.Default = v
	return p
}

func number(name, description string) CatalogParam {
	return CatalogParam{Name: name, Type: "number", Description: description}
}

func integer(name, description string) CatalogParam {
	return CatalogParam{Name: name, Type: "integer", Description: description}
}

func boolean(name, description string) CatalogParam {
	return CatalogParam{Name: name, Type: "boolean", Description: description}
}

var (
	paramRegion    = str("region", "england-and-wales, scotland or northern-ireland; omit for all regions")
	paramYear      = required(integer("year", "Year between 2019 and 2030"))
	paramLat       = required(number("lat", "Latitude (-90 to 90)"))
	paramLng       = required(number("lng", "Longitude (-180 to 180)"))
	paramMonth     = str("date", "Month in YYYY-MM format; omit for the latest month")
	paramForceID   = required(str("force_id", "Force identifier, e.g. 'leicestershire'"))
	paramCategory  = str("category", "Crime category slug; omit for all crime")
	paramHolidayOn = required(str("date", "Date in YYYY-MM-DD format"))
)

// Catalog returns every tool the server exposes, in registration order.
func Catalog() []CatalogTool {
	h := func(name, description string, params ...CatalogParam) CatalogTool {
		return CatalogTool{Name: name, Group: GroupHolidays, Description: description,
			Params: params, MaxAge: common.FreshnessHolidays, Cached: true}
	}
	p := func(name string, maxAge time.Duration, description string, params ...CatalogParam) CatalogTool {
		return CatalogTool{Name: name, Group: GroupPolice, Description: description,
			Params: params, MaxAge: maxAge, Cached: true}
	}

	return []CatalogTool{
		{Name: "get_version", Group: GroupServer, Description: "Get the ukdata-mcp server version. Use this to verify connectivity."},

		{Name: "check_bank_holidays_api_status", Group: GroupHolidays,
			Description: "Check that the gov.uk bank holidays feed is reachable."},
		h("get_all_bank_holidays", "List every bank holiday in the feed, optionally for one region.", paramRegion),
		h("get_bank_holidays_by_year", "List bank holidays in one year.", paramYear, paramRegion),
		h("is_bank_holiday", "Check whether a date is a bank holiday.", paramHolidayOn, paramRegion),
		h("get_next_bank_holidays", "List the next bank holidays from today.",
			paramRegion, withDefault(integer("limit", "Number of holidays to return (1-50)"), 5)),
		h("get_upcoming_bank_holidays", "List bank holidays within a number of days from today.",
			withDefault(integer("days_ahead", "Days to look ahead (1-365)"), 30), paramRegion),
		h("get_bank_holiday_by_date", "Describe the holidays on a date across regions.", paramHolidayOn, paramRegion),
		h("compare_regions_by_year", "Compare bank holidays between regions for a year.", paramYear),
		h("get_regional_differences", "Show holidays unique to each region and those common to all.", paramYear),
		h("analyze_bank_holiday_patterns", "Analyse monthly, weekday and substitute-day patterns across years.",
			integer("start_year", "First year (default 2019)"),
			integer("end_year", "Last year (default two years from now)"),
			paramRegion),
		h("get_bank_holiday_statistics", "Summary statistics for bank holidays.",
			paramRegion, integer("year", "Restrict to one year; omit for all years")),
		h("bank_holiday_business_impact", "Count business days lost to bank holidays in a date range.",
			required(str("start_date", "Start date (YYYY-MM-DD)")),
			required(str("end_date", "End date (YYYY-MM-DD)")),
			paramRegion),

		{Name: "check_police_api_status", Group: GroupPolice,
			Description: "Check that data.police.uk is reachable."},
		p("get_police_forces", common.FreshnessForces, "List all police forces in England, Wales and Northern Ireland."),
		p("get_specific_force", common.FreshnessForces, "Get details for one police force.", paramForceID),
		p("get_force_senior_officers", common.FreshnessForces, "List a force's senior officers.", paramForceID),
		p("get_neighbourhoods", common.FreshnessNeighbourhood, "List a force's neighbourhoods.", paramForceID),
		p("get_specific_neighbourhood", common.FreshnessNeighbourhood, "Get details for one neighbourhood.",
			paramForceID, required(str("neighbourhood_id", "Neighbourhood identifier"))),
		p("get_crimes_street_point", common.FreshnessStreet, "Street-level crimes within one mile of a point.",
			paramLat, paramLng, paramMonth, paramCategory),
		p("get_crimes_street_area", common.FreshnessStreet, "Street-level crimes inside a custom polygon.",
			required(str("poly", "Polygon as lat,lng:lat,lng:lat,lng (at least 3 pairs)")), paramMonth, paramCategory),
		p("get_crimes_no_location", common.FreshnessStreet, "Crimes a force could not map to a location.",
			paramForceID, paramMonth, paramCategory),
		p("get_crime_outcomes", common.FreshnessOutcomes, "Outcome history for one crime.",
			required(str("crime_id", "Persistent crime identifier"))),
		p("get_outcomes_at_location", common.FreshnessStreet, "Outcomes within one mile of a point.",
			paramLat, paramLng, paramMonth),
		p("get_stop_search_force", common.FreshnessStreet, "Stop and search records for a force.",
			paramForceID, paramMonth),
		p("get_stop_search_location", common.FreshnessStreet, "Stop and search records within one mile of a point.",
			paramLat, paramLng, paramMonth),
		p("get_crime_categories", common.FreshnessCategories, "List crime categories.",
			str("date", "Month in YYYY-MM format; omit for the latest categories")),
		p("locate_neighbourhood", common.FreshnessNeighbourhood, "Find the neighbourhood policing team for a point.",
			paramLat, paramLng),
		p("get_available_dates", common.FreshnessDates, "List months with street-level crime data."),
		p("comprehensive_area_report", common.FreshnessStreet, "Neighbourhood, crime, outcome and stop-search data for a point, with a summary.",
			paramLat, paramLng, paramMonth,
			withDefault(boolean("include_outcomes", "Include outcomes at the location"), true),
			withDefault(boolean("include_stop_search", "Include stop and search records"), true)),
		p("analyze_stop_search_patterns", common.FreshnessStreet, "Histogram stop and search records by object, outcome and weekday.",
			str("force_id", "Force identifier; takes precedence over lat/lng"),
			number("lat", "Latitude when no force_id is given"),
			number("lng", "Longitude when no force_id is given"),
			paramMonth),
	}
}

// ValidateCatalog checks tool names are present and unique.
func ValidateCatalog(catalog []CatalogTool) error {
	seen := make(map[string]bool, len(catalog))
	for _, ct := range catalog {
		if ct.Name == "" {
			return fmt.Errorf("tool has empty name")
		}
		if seen[ct.Name] {
			return fmt.Errorf("duplicate tool %q", ct.Name)
		}
		seen[ct.Name] = true
	}
	return nil
}

// BuildMCPTool converts a CatalogTool into an mcp.Tool. Cached tools also
// take use_cache and cache_max_age.
func BuildMCPTool(ct CatalogTool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ct.Description)}
	for _, p := range ct.Params {
		opts = append(opts, buildParamOption(p))
	}
	if ct.Cached {
		opts = append(opts,
			mcp.WithBoolean("use_cache",
				mcp.Description("Serve from the local cache when fresh (default true)"),
				mcp.DefaultBool(true)),
			mcp.WithNumber("cache_max_age",
				mcp.Description(fmt.Sprintf("Maximum cache age in seconds (default %d)", ct.DefaultMaxAgeSeconds())),
				mcp.DefaultNumber(float64(ct.DefaultMaxAgeSeconds()))),
		)
	}
	return mcp.NewTool(ct.Name, opts...)
}

// buildParamOption maps a CatalogParam to the appropriate mcp-go tool option.
func buildParamOption(p CatalogParam) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case "number", "integer":
		if v, ok := p.Default.(int); ok {
			opts = append(opts, mcp.DefaultNumber(float64(v)))
		}
		return mcp.WithNumber(p.Name, opts...)
	case "boolean":
		if v, ok := p.Default.(bool); ok {
			opts = append(opts, mcp.DefaultBool(v))
		}
		return mcp.WithBoolean(p.Name, opts...)
	default:
		if v, ok := p.Default.(string); ok {
			opts = append(opts, mcp.DefaultString(v))
		}
		return mcp.WithString(p.Name, opts...)
	}
}
