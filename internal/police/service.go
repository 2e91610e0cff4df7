// Package police serves data.police.uk: parameter validation, cached reads
// through the shared fetch pipeline, and area and stop-search summaries.
package police

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bobmcallan/ukdata-mcp/internal/analytics"
	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/fetch"
	"github.com/bobmcallan/ukdata-mcp/internal/models"
)

const upstreamName = "police"

// Service answers police data queries.
type Service struct {
	fetcher *fetch.Fetcher
	baseURL string
	logger  *common.Logger
}

// NewService creates a Service against baseURL (e.g. https://data.police.uk/api).
func NewService(fetcher *fetch.Fetcher, baseURL string, logger *common.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// BaseURL returns the API root.
func (s *Service) BaseURL() string {
	return s.baseURL
}

func invalid(format string, args ...any) *fetch.Error {
	return &fetch.Error{Kind: fetch.KindValidation, Message: fmt.Sprintf(format, args...)}
}

// query is an endpoint's parameters, used both on the wire and in the cache
// fingerprint. Empty values are dropped.
type query map[string]string

func (q query) values() url.Values {
	v := url.Values{}
	for k, val := range q {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

func (q query) params() map[string]any {
	p := make(map[string]any, len(q))
	for k, val := range q {
		if val != "" {
			p[k] = val
		}
	}
	return p
}

// get runs one endpoint through the fetcher. Errors come back both in the
// Result and as err.
func (s *Service) get(ctx context.Context, operation, endpoint string, q query, policy fetch.CachePolicy) (fetch.Result, error) {
	result := s.fetcher.Get(ctx, fetch.Request{
		Upstream:  upstreamName,
		Operation: operation,
		URL:       s.baseURL + "/" + endpoint,
		Query:     q.values(),
		Params:    q.params(),
		UseCache:  policy.Use,
		MaxAge:    policy.MaxAge,
	})
	if !result.OK() {
		return result, result.Err
	}
	return result, nil
}

func pathID(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}

// Status probes the forces endpoint without the cache.
func (s *Service) Status(ctx context.Context) StatusResponse {
	result, err := s.get(ctx, "forces", "forces", nil, fetch.CachePolicy{})
	resp := StatusResponse{
		Status:       "ok",
		APIAvailable: err == nil,
		Message:      "UK Police API is accessible",
		BaseURL:      s.baseURL,
	}
	if err != nil {
		resp.Status = "error"
		resp.Message = result.Message
	}
	return resp
}

// Forces lists every police force.
func (s *Service) Forces(ctx context.Context, policy fetch.CachePolicy) (fetch.Result, error) {
	return s.get(ctx, "forces", "forces", nil, policy)
}

// Force returns one force's details.
func (s *Service) Force(ctx context.Context, forceID string, policy fetch.CachePolicy) (fetch.Result, error) {
	if err := requireID("force_id", forceID); err != nil {
		return fetch.Failure(err), err
	}
	return s.get(ctx, "force", "forces/"+pathID(forceID), query{"force_id": forceID}, policy)
}

// SeniorOfficers lists a force's senior officers with plain-text bios.
func (s *Service) SeniorOfficers(ctx context.Context, forceID string, policy fetch.CachePolicy) (*OfficersResponse, error) {
	if err := requireID("force_id", forceID); err != nil {
		return nil, err
	}
	result, err := s.get(ctx, "force_people", "forces/"+pathID(forceID)+"/people", query{"force_id": forceID}, policy)
	if err != nil {
		return nil, err
	}
	officers := models.ParseOfficers(result.Data)
	if officers == nil {
		officers = []models.Officer{}
	}
	return &OfficersResponse{
		Status:  fetch.StatusSuccess,
		ForceID: forceID,
		Data:    officers,
		Count:   len(officers),
		Message: result.Message,
	}, nil
}

// Neighbourhoods lists a force's neighbourhoods.
func (s *Service) Neighbourhoods(ctx context.Context, forceID string, policy fetch.CachePolicy) (fetch.Result, error) {
	if err := requireID("force_id", forceID); err != nil {
		return fetch.Failure(err), err
	}
	return s.get(ctx, "neighbourhoods", pathID(forceID)+"/neighbourhoods", query{"force_id": forceID}, policy)
}

// Neighbourhood returns one neighbourhood's details.
func (s *Service) Neighbourhood(ctx context.Context, forceID, neighbourhoodID string, policy fetch.CachePolicy) (fetch.Result, error) {
	if strings.TrimSpace(forceID) == "" || strings.TrimSpace(neighbourhoodID) == "" {
		err := invalid("Both force_id and neighbourhood_id must be provided")
		return fetch.Failure(err), err
	}
	return s.get(ctx, "neighbourhood", pathID(forceID)+"/"+pathID(neighbourhoodID),
		query{"force_id": forceID, "neighbourhood_id": neighbourhoodID}, policy)
}

// CrimesAtPoint returns street-level crimes within a mile of a point.
func (s *Service) CrimesAtPoint(ctx context.Context, lat, lng float64, date, category string, policy fetch.CachePolicy) (fetch.Result, error) {
	if err := checkPointAndDate(lat, lng, date); err != nil {
		return fetch.Failure(err), err
	}
	return s.get(ctx, "crimes_street_point", "crimes-street/all-crime", query{
		"lat":      formatCoordinate(lat),
		"lng":      formatCoordinate(lng),
		"date":     date,
		"category": category,
	}, policy)
}

// CrimesInArea returns street-level crimes inside a polygon.
func (s *Service) CrimesInArea(ctx context.Context, poly, date, category string, policy fetch.CachePolicy) (fetch.Result, error) {
	err := validatePoly(poly)
	if err == nil && !validMonth(date) {
		err = invalid(msgInvalidDate)
	}
	if err != nil {
		return fetch.Failure(err), err
	}
	return s.get(ctx, "crimes_street_area", "crimes-street/all-crime", query{
		"poly":     poly,
		"date":     date,
		"category": category,
	}, policy)
}

// CrimesNoLocation returns a force's crimes that could not be mapped.
func (s *Service) CrimesNoLocation(ctx context.Context, forceID, date, category string, policy fetch.CachePolicy) (fetch.Result, error) {
	if err := checkForceAndDate(forceID, date); err != nil {
		return fetch.Failure(err), err
	}
	return s.get(ctx, "crimes_no_location", "crimes-no-location", query{
		"force":    forceID,
		"date":     date,
		"category": category,
	}, policy)
}

// CrimeOutcomes returns the outcome history of one crime.
func (s *Service) CrimeOutcomes(ctx context.Context, crimeID string, policy fetch.CachePolicy) (fetch.Result, error) {
	if err := requireID("crime_id", crimeID); err != nil {
		return fetch.Failure(err), err
	}
	return s.get(ctx, "crime_outcomes", "outcomes-for-crime/"+pathID(crimeID), query{"crime_id": crimeID}, policy)
}

// OutcomesAtLocation returns outcomes within a mile of a point.
func (s *Service) OutcomesAtLocation(ctx context.Context, lat, lng float64, date string, policy fetch.CachePolicy) (fetch.Result, error) {
	if err := checkPointAndDate(lat, lng, date); err != nil {
		return fetch.Failure(err), err
	}
	return s.get(ctx, "outcomes_at_location", "outcomes-at-location", query{
		"lat":  formatCoordinate(lat),
		"lng":  formatCoordinate(lng),
		"date": date,
	}, policy)
}

// StopSearchByForce returns a force's stop-and-search records.
func (s *Service) StopSearchByForce(ctx context.Context, forceID, date string, policy fetch.CachePolicy) (fetch.Result, error) {
	if err := checkForceAndDate(forceID, date); err != nil {
		return fetch.Failure(err), err
	}
	return s.get(ctx, "stop_search_force", "stops-force", query{"force": forceID, "date": date}, policy)
}

// StopSearchAtLocation returns stop-and-search records within a mile of a point.
func (s *Service) StopSearchAtLocation(ctx context.Context, lat, lng float64, date string, policy fetch.CachePolicy) (fetch.Result, error) {
	if err := checkPointAndDate(lat, lng, date); err != nil {
		return fetch.Failure(err), err
	}
	return s.get(ctx, "stop_search_location", "stops-street", query{
		"lat":  formatCoordinate(lat),
		"lng":  formatCoordinate(lng),
		"date": date,
	}, policy)
}

// CrimeCategories lists crime categories, optionally as of date.
func (s *Service) CrimeCategories(ctx context.Context, date string, policy fetch.CachePolicy) (fetch.Result, error) {
	if !validMonth(date) {
		err := invalid(msgInvalidDate)
		return fetch.Failure(err), err
	}
	return s.get(ctx, "crime_categories", "crime-categories", query{"date": date}, policy)
}

// LocateNeighbourhood finds the neighbourhood team covering a point.
func (s *Service) LocateNeighbourhood(ctx context.Context, lat, lng float64, policy fetch.CachePolicy) (fetch.Result, error) {
	if !validCoordinates(lat, lng) {
		err := invalid(msgInvalidCoordinates)
		return fetch.Failure(err), err
	}
	q := formatCoordinate(lat) + "," + formatCoordinate(lng)
	return s.get(ctx, "locate_neighbourhood", "locate-neighbourhood", query{"q": q}, policy)
}

// AvailableDates lists the months for which street-level data exists.
func (s *Service) AvailableDates(ctx context.Context, policy fetch.CachePolicy) (fetch.Result, error) {
	return s.get(ctx, "available_dates", "crimes-street-dates", nil, policy)
}

// AreaPolicies holds the cache policy of each request an area report makes.
type AreaPolicies struct {
	Locate     fetch.CachePolicy
	Crimes     fetch.CachePolicy
	Outcomes   fetch.CachePolicy
	StopSearch fetch.CachePolicy
}

// UniformAreaPolicies applies one policy to every area report request.
func UniformAreaPolicies(policy fetch.CachePolicy) AreaPolicies {
	return AreaPolicies{Locate: policy, Crimes: policy, Outcomes: policy, StopSearch: policy}
}

// AreaReport combines neighbourhood, crime, outcome and stop-search data for
// a point. Sub-request failures are embedded rather than failing the report.
func (s *Service) AreaReport(ctx context.Context, lat, lng float64, date string, includeOutcomes, includeStopSearch bool, policies AreaPolicies) (*AreaReport, error) {
	if err := checkPointAndDate(lat, lng, date); err != nil {
		return nil, err
	}

	report := &AreaReport{
		Status:   fetch.StatusSuccess,
		Location: Location{Lat: lat, Lng: lng},
		Date:     date,
	}
	if report.Date == "" {
		report.Date = "latest"
	}

	s.logger.Info().Float64("lat", lat).Float64("lng", lng).Msg("building area report")

	report.NeighbourhoodInfo, _ = s.LocateNeighbourhood(ctx, lat, lng, policies.Locate)

	crimes, _ := s.CrimesAtPoint(ctx, lat, lng, date, "", policies.Crimes)
	report.CrimeData = crimes

	outcomes, stops := 0, 0
	if includeOutcomes {
		r, _ := s.OutcomesAtLocation(ctx, lat, lng, date, policies.Outcomes)
		report.OutcomesData = &r
		if r.OK() {
			outcomes = r.Count
		}
	}
	if includeStopSearch {
		r, _ := s.StopSearchAtLocation(ctx, lat, lng, date, policies.StopSearch)
		report.StopSearchData = &r
		if r.OK() {
			stops = r.Count
		}
	}

	crimeCount := 0
	var parsed []models.Crime
	if crimes.OK() {
		crimeCount = crimes.Count
		parsed = models.ParseCrimes(crimes.Data)
	}
	report.Summary = analytics.SummarizeArea(crimeCount, parsed, outcomes, stops)
	return report, nil
}

// StopSearchPatterns fetches stop-and-search records by force or by point
// and histograms them. A non-empty forceID takes precedence.
func (s *Service) StopSearchPatterns(ctx context.Context, forceID string, lat, lng float64, date string, policy fetch.CachePolicy) (*StopSearchPatternsResponse, error) {
	var (
		result fetch.Result
		err    error
		scope  string
	)
	if strings.TrimSpace(forceID) != "" {
		scope = "force:" + forceID
		result, err = s.StopSearchByForce(ctx, forceID, date, policy)
	} else {
		scope = fmt.Sprintf("point:%s,%s", formatCoordinate(lat), formatCoordinate(lng))
		result, err = s.StopSearchAtLocation(ctx, lat, lng, date, policy)
	}
	if err != nil {
		return nil, err
	}

	return &StopSearchPatternsResponse{
		Status:   fetch.StatusSuccess,
		Scope:    scope,
		Date:     date,
		Count:    result.Count,
		Patterns: analytics.StopSearchPatterns(models.ParseStopSearches(result.Data)),
		Message:  result.Message,
	}, nil
}

func checkPointAndDate(lat, lng float64, date string) *fetch.Error {
	if !validCoordinates(lat, lng) {
		return invalid(msgInvalidCoordinates)
	}
	if !validMonth(date) {
		return invalid(msgInvalidDate)
	}
	return nil
}

func checkForceAndDate(forceID, date string) *fetch.Error {
	if err := requireID("force_id", forceID); err != nil {
		return err
	}
	if !validMonth(date) {
		return invalid(msgInvalidDate)
	}
	return nil
}
