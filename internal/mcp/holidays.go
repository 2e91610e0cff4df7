package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Tools) holidayStatus(ctx context.Context, _ mcp.CallToolRequest, _ CatalogTool) *mcp.CallToolResult {
	return jsonResult(t.holidays.Status(ctx))
}

func (t *Tools) allHolidays(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respond(t.holidays.All(ctx, request.GetString("region", ""), cachePolicy(request, ct)))
}

func (t *Tools) holidaysByYear(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	year, err := requireInt(request, "year")
	if err != nil {
		return errorResult(err.Error())
	}
	return respond(t.holidays.ByYear(ctx, year, request.GetString("region", ""), cachePolicy(request, ct)))
}

func (t *Tools) isHoliday(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	date, err := requireString(request, "date")
	if err != nil {
		return errorResult(err.Error())
	}
	return respond(t.holidays.IsHoliday(ctx, date, request.GetString("region", ""), cachePolicy(request, ct)))
}

func (t *Tools) nextHolidays(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	limit := request.GetInt("limit", 5)
	return respond(t.holidays.Next(ctx, request.GetString("region", ""), limit, cachePolicy(request, ct)))
}

func (t *Tools) upcomingHolidays(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	days := request.GetInt("days_ahead", 30)
	return respond(t.holidays.Upcoming(ctx, days, request.GetString("region", ""), cachePolicy(request, ct)))
}

func (t *Tools) holidayByDate(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	date, err := requireString(request, "date")
	if err != nil {
		return errorResult(err.Error())
	}
	return respond(t.holidays.ByDate(ctx, date, request.GetString("region", ""), cachePolicy(request, ct)))
}

func (t *Tools) compareRegions(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	year, err := requireInt(request, "year")
	if err != nil {
		return errorResult(err.Error())
	}
	return respond(t.holidays.CompareRegions(ctx, year, cachePolicy(request, ct)))
}

func (t *Tools) regionalDifferences(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	year, err := requireInt(request, "year")
	if err != nil {
		return errorResult(err.Error())
	}
	return respond(t.holidays.RegionalDifferences(ctx, year, cachePolicy(request, ct)))
}

func (t *Tools) holidayPatterns(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	start := request.GetInt("start_year", 0)
	end := request.GetInt("end_year", 0)
	return respond(t.holidays.Patterns(ctx, start, end, request.GetString("region", ""), cachePolicy(request, ct)))
}

func (t *Tools) holidayStatistics(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	year := request.GetInt("year", 0)
	return respond(t.holidays.Statistics(ctx, request.GetString("region", ""), year, cachePolicy(request, ct)))
}

func (t *Tools) businessImpact(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	start, err := requireString(request, "start_date")
	if err != nil {
		return errorResult(err.Error())
	}
	end, err := requireString(request, "end_date")
	if err != nil {
		return errorResult(err.Error())
	}
	return respond(t.holidays.BusinessImpact(ctx, start, end, request.GetString("region", ""), cachePolicy(request, ct)))
}
