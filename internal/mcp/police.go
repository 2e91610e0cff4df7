package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/ukdata-mcp/internal/fetch"
	"github.com/bobmcallan/ukdata-mcp/internal/police"
)

func (t *Tools) policeStatus(ctx context.Context, _ mcp.CallToolRequest, _ CatalogTool) *mcp.CallToolResult {
	return jsonResult(t.police.Status(ctx))
}

func (t *Tools) forces(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respondResult(t.police.Forces(ctx, cachePolicy(request, ct)))
}

func (t *Tools) force(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respondResult(t.police.Force(ctx, request.GetString("force_id", ""), cachePolicy(request, ct)))
}

func (t *Tools) seniorOfficers(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respond(t.police.SeniorOfficers(ctx, request.GetString("force_id", ""), cachePolicy(request, ct)))
}

func (t *Tools) neighbourhoods(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respondResult(t.police.Neighbourhoods(ctx, request.GetString("force_id", ""), cachePolicy(request, ct)))
}

func (t *Tools) neighbourhood(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respondResult(t.police.Neighbourhood(ctx,
		request.GetString("force_id", ""),
		request.GetString("neighbourhood_id", ""),
		cachePolicy(request, ct)))
}

func (t *Tools) crimesAtPoint(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	lat, lng, err := point(request)
	if err != nil {
		return errorResult(err.Error())
	}
	return respondResult(t.police.CrimesAtPoint(ctx, lat, lng,
		request.GetString("date", ""),
		request.GetString("category", ""),
		cachePolicy(request, ct)))
}

func (t *Tools) crimesInArea(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respondResult(t.police.CrimesInArea(ctx,
		request.GetString("poly", ""),
		request.GetString("date", ""),
		request.GetString("category", ""),
		cachePolicy(request, ct)))
}

func (t *Tools) crimesNoLocation(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respondResult(t.police.CrimesNoLocation(ctx,
		request.GetString("force_id", ""),
		request.GetString("date", ""),
		request.GetString("category", ""),
		cachePolicy(request, ct)))
}

func (t *Tools) crimeOutcomes(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respondResult(t.police.CrimeOutcomes(ctx, request.GetString("crime_id", ""), cachePolicy(request, ct)))
}

func (t *Tools) outcomesAtLocation(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	lat, lng, err := point(request)
	if err != nil {
		return errorResult(err.Error())
	}
	return respondResult(t.police.OutcomesAtLocation(ctx, lat, lng, request.GetString("date", ""), cachePolicy(request, ct)))
}

func (t *Tools) stopSearchByForce(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respondResult(t.police.StopSearchByForce(ctx,
		request.GetString("force_id", ""),
		request.GetString("date", ""),
		cachePolicy(request, ct)))
}

func (t *Tools) stopSearchAtLocation(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	lat, lng, err := point(request)
	if err != nil {
		return errorResult(err.Error())
	}
	return respondResult(t.police.StopSearchAtLocation(ctx, lat, lng, request.GetString("date", ""), cachePolicy(request, ct)))
}

func (t *Tools) crimeCategories(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respondResult(t.police.CrimeCategories(ctx, request.GetString("date", ""), cachePolicy(request, ct)))
}

func (t *Tools) locateNeighbourhood(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	lat, lng, err := point(request)
	if err != nil {
		return errorResult(err.Error())
	}
	return respondResult(t.police.LocateNeighbourhood(ctx, lat, lng, cachePolicy(request, ct)))
}

func (t *Tools) availableDates(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	return respondResult(t.police.AvailableDates(ctx, cachePolicy(request, ct)))
}

func (t *Tools) areaReport(ctx context.Context, request mcp.CallToolRequest, _ CatalogTool) *mcp.CallToolResult {
	lat, lng, err := point(request)
	if err != nil {
		return errorResult(err.Error())
	}
	return respond(t.police.AreaReport(ctx, lat, lng,
		request.GetString("date", ""),
		request.GetBool("include_outcomes", true),
		request.GetBool("include_stop_search", true),
		t.areaPolicies(request)))
}

// areaPolicies gives each area report request the default max age of the
// tool that serves the same endpoint; cache_max_age overrides all of them.
func (t *Tools) areaPolicies(request mcp.CallToolRequest) police.AreaPolicies {
	sub := func(name string) fetch.CachePolicy {
		ct, _ := t.Lookup(name)
		return cachePolicy(request, ct)
	}
	return police.AreaPolicies{
		Locate:     sub("locate_neighbourhood"),
		Crimes:     sub("get_crimes_street_point"),
		Outcomes:   sub("get_outcomes_at_location"),
		StopSearch: sub("get_stop_search_location"),
	}
}

func (t *Tools) stopSearchPatterns(ctx context.Context, request mcp.CallToolRequest, ct CatalogTool) *mcp.CallToolResult {
	forceID := request.GetString("force_id", "")
	var lat, lng float64
	if forceID == "" {
		var err error
		if lat, lng, err = point(request); err != nil {
			return errorResult("Provide force_id, or both lat and lng")
		}
	}
	return respond(t.police.StopSearchPatterns(ctx, forceID, lat, lng, request.GetString("date", ""), cachePolicy(request, ct)))
}
