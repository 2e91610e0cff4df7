package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/holidays"
	"github.com/bobmcallan/ukdata-mcp/internal/metrics"
	"github.com/bobmcallan/ukdata-mcp/internal/police"
)

// toolFunc handles one tool call given its catalog entry.
type toolFunc func(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult

// Tools binds the catalog to the holiday and police services.
type Tools struct {
	holidays *holidays.Service
	police   *police.Service
	logger   *common.Logger
	metrics  *metrics.Metrics
	catalog  []CatalogTool
	funcs    map[string]toolFunc
}

// NewTools creates the tool set.
func NewTools(h *holidays.Service, p *police.Service, logger *common.Logger) *Tools {
	t := &Tools{
		holidays: h,
		police:   p,
		logger:   logger,
		catalog:  Catalog(),
	}
	t.funcs = map[string]toolFunc{
		"get_version": handleGetVersion,

		"check_bank_holidays_api_status": t.holidayStatus,
		"get_all_bank_holidays":          t.allHolidays,
		"get_bank_holidays_by_year":      t.holidaysByYear,
		"is_bank_holiday":                t.isHoliday,
		"get_next_bank_holidays":         t.nextHolidays,
		"get_upcoming_bank_holidays":     t.upcomingHolidays,
		"get_bank_holiday_by_date":       t.holidayByDate,
		"compare_regions_by_year":        t.compareRegions,
		"get_regional_differences":       t.regionalDifferences,
		"analyze_bank_holiday_patterns":  t.holidayPatterns,
		"get_bank_holiday_statistics":    t.holidayStatistics,
		"bank_holiday_business_impact":   t.businessImpact,

		"check_police_api_status":      t.policeStatus,
		"get_police_forces":            t.forces,
		"get_specific_force":           t.force,
		"get_force_senior_officers":    t.seniorOfficers,
		"get_neighbourhoods":           t.neighbourhoods,
		"get_specific_neighbourhood":   t.neighbourhood,
		"get_crimes_street_point":      t.crimesAtPoint,
		"get_crimes_street_area":       t.crimesInArea,
		"get_crimes_no_location":       t.crimesNoLocation,
		"get_crime_outcomes":           t.crimeOutcomes,
		"get_outcomes_at_location":     t.outcomesAtLocation,
		"get_stop_search_force":        t.stopSearchByForce,
		"get_stop_search_location":     t.stopSearchAtLocation,
		"get_crime_categories":         t.crimeCategories,
		"locate_neighbourhood":         t.locateNeighbourhood,
		"get_available_dates":          t.availableDates,
		"comprehensive_area_report":    t.areaReport,
		"analyze_stop_search_patterns": t.stopSearchPatterns,
	}
	return t
}

// SetMetrics enables per-tool call counters. Nil disables them.
func (t *Tools) SetMetrics(m *metrics.Metrics) {
	t.metrics = m
}

// Catalog returns a copy of the tool catalog.
func (t *Tools) Catalog() []CatalogTool {
	result := make([]CatalogTool, len(t.catalog))
	copy(result, t.catalog)
	return result
}

// Lookup finds a catalog entry by name.
func (t *Tools) Lookup(name string) (CatalogTool, bool) {
	for _, ct := range t.catalog {
		if ct.Name == name {
			return ct, true
		}
	}
	return CatalogTool{}, false
}

// Handler returns the mcp-go handler for a catalog entry. Each call gets a
// correlation ID carried on its context and logger.
func (t *Tools) Handler(ct CatalogTool) server.ToolHandlerFunc {
	fn, ok := t.funcs[ct.Name]
	if !ok {
		return func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return errorResult(fmt.Sprintf("tool %s is not implemented", ct.Name)), nil
		}
	}
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, id := WithCorrelationID(ctx)
		logger := t.logger.WithCorrelationId(id)
		logger.Debug().Str("tool", ct.Name).Msg("tool call")

		result := fn(ctx, request, ct)
		t.metrics.ToolCall(ct.Name, result.IsError)
		if result.IsError {
			logger.Warn().Str("tool", ct.Name).Msg("tool call failed")
		}
		return result, nil
	}
}

// Call invokes a tool by name with the given arguments, outside any MCP
// transport.
func (t *Tools) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	ct, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	return t.Handler(ct)(ctx, request)
}

// RegisterTools registers every catalog tool on s and returns the count.
func RegisterTools(s *server.MCPServer, t *Tools) int {
	for _, ct := range t.catalog {
		s.AddTool(BuildMCPTool(ct), t.Handler(ct))
	}
	return len(t.catalog)
}

// NewServer creates an MCP server with every tool registered.
func NewServer(name string, t *Tools) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)
	count := RegisterTools(s, t)
	t.logger.Info().Int("tools", count).Str("name", name).Msg("MCP server initialized")
	return s
}
