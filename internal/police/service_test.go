package police

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/ukdata-mcp/internal/cache"
	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/fetch"
	"github.com/bobmcallan/ukdata-mcp/internal/storage/memory"
)

var policy = fetch.CachePolicy{Use: true, MaxAge: 30 * time.Minute}

// fakeAPI records every request path and serves canned bodies by path.
type fakeAPI struct {
	mu       sync.Mutex
	requests []string
	queries  []string
	routes   map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.Path)
	f.queries = append(f.queries, r.URL.RawQuery)
	f.mu.Unlock()

	body, ok := f.routes[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newService(t *testing.T, routes map[string]string) (*Service, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{routes: routes}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	logger := common.NewSilentLogger()
	f := fetch.New(fetch.Options{
		Client: srv.Client(),
		Cache:  cache.New(memory.New(50), logger),
		Logger: logger,
	})
	return NewService(f, srv.URL+"/api/", logger), api
}

func TestCrimesAtPoint_InvalidLatitudeMakesNoCalls(t *testing.T) {
	svc, api := newService(t, nil)

	for _, lng := range []float64{-0.1, 0, 179.9} {
		result, err := svc.CrimesAtPoint(context.Background(), 200, lng, "", "", policy)
		require.Error(t, err)
		assert.Equal(t, fetch.KindValidation, result.Kind)
		assert.Contains(t, result.Message, "Latitude must be between -90 and 90")
	}
	assert.Equal(t, 0, api.calls())
}

func TestForce_NotFoundIsEmptySuccess(t *testing.T) {
	svc, _ := newService(t, nil)

	result, err := svc.Force(context.Background(), "no-such-force", policy)
	require.NoError(t, err)
	assert.Equal(t, fetch.StatusSuccess, result.Status)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, fetch.MessageNoData, result.Message)
}

func TestForces_Cached(t *testing.T) {
	svc, api := newService(t, map[string]string{
		"/api/forces": `[{"id":"kent","name":"Kent Police"},{"id":"essex","name":"Essex Police"}]`,
	})
	ctx := context.Background()

	first, err := svc.Forces(ctx, policy)
	require.NoError(t, err)
	second, err := svc.Forces(ctx, policy)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Count)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, api.calls())
}

func TestCrimesAtPoint_QueryAndFingerprint(t *testing.T) {
	svc, api := newService(t, map[string]string{
		"/api/crimes-street/all-crime": `[{"category":"burglary"}]`,
	})
	ctx := context.Background()

	_, err := svc.CrimesAtPoint(ctx, 52.629729, -1.131592, "2024-01", "", policy)
	require.NoError(t, err)
	_, err = svc.CrimesAtPoint(ctx, 52.629729, -1.131592, "2024-02", "", policy)
	require.NoError(t, err)

	assert.Equal(t, 2, api.calls())
	assert.Equal(t, "date=2024-01&lat=52.629729&lng=-1.131592", api.queries[0])
}

func TestCrimesAtPoint_InvalidDate(t *testing.T) {
	svc, api := newService(t, nil)

	_, err := svc.CrimesAtPoint(context.Background(), 51.5, -0.1, "2024-1", "", policy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM")
	assert.Equal(t, 0, api.calls())
}

func TestCrimesInArea_Validation(t *testing.T) {
	svc, api := newService(t, nil)
	ctx := context.Background()

	cases := map[string]string{
		"":                                  "non-empty",
		"52.2,0.5:52.7,0.2":                 "at least 3",
		"52.2;0.5:52.7,0.2:52.1,0.4":        "lat,lng:lat,lng",
		"52.2,abc:52.7,0.2:52.1,0.4":        "Invalid numeric coordinates",
		"95.0,0.5:52.7,0.2:52.1,0.4":        "Invalid coordinates in pair",
		"52.268,0.543:52.794,0.238:52.13,x": "Invalid numeric coordinates",
	}
	for poly, want := range cases {
		_, err := svc.CrimesInArea(ctx, poly, "", "", policy)
		require.Error(t, err, poly)
		assert.Contains(t, err.Error(), want, poly)
	}
	assert.Equal(t, 0, api.calls())
}

func TestCrimesInArea_OnlyFirstThreePairsChecked(t *testing.T) {
	svc, api := newService(t, map[string]string{"/api/crimes-street/all-crime": `[]`})

	_, err := svc.CrimesInArea(context.Background(), "52.2,0.5:52.7,0.2:52.1,0.4:bogus", "", "", policy)
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls())
}

func TestIDsRequired(t *testing.T) {
	svc, api := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Force(ctx, " ", policy)
	assert.Error(t, err)
	_, err = svc.Neighbourhood(ctx, "kent", "", policy)
	assert.Error(t, err)
	_, err = svc.CrimeOutcomes(ctx, "", policy)
	assert.Error(t, err)
	_, err = svc.StopSearchByForce(ctx, "", "", policy)
	assert.Error(t, err)
	_, err = svc.SeniorOfficers(ctx, "", policy)
	assert.Error(t, err)
	assert.Equal(t, 0, api.calls())
}

func TestEndpointPaths(t *testing.T) {
	svc, api := newService(t, nil)
	ctx := context.Background()

	svc.Neighbourhoods(ctx, "leicestershire", policy)
	svc.Neighbourhood(ctx, "leicestershire", "NC04", policy)
	svc.CrimeOutcomes(ctx, "abc123", policy)
	svc.CrimesNoLocation(ctx, "kent", "2024-01", "", policy)
	svc.StopSearchByForce(ctx, "kent", "", policy)
	svc.StopSearchAtLocation(ctx, 51.5, -0.1, "", policy)
	svc.OutcomesAtLocation(ctx, 51.5, -0.1, "", policy)
	svc.CrimeCategories(ctx, "", policy)
	svc.LocateNeighbourhood(ctx, 51.5, -0.1, policy)
	svc.AvailableDates(ctx, policy)

	assert.Equal(t, []string{
		"/api/leicestershire/neighbourhoods",
		"/api/leicestershire/NC04",
		"/api/outcomes-for-crime/abc123",
		"/api/crimes-no-location",
		"/api/stops-force",
		"/api/stops-street",
		"/api/outcomes-at-location",
		"/api/crime-categories",
		"/api/locate-neighbourhood",
		"/api/crimes-street-dates",
	}, api.requests)
	assert.Equal(t, "date=2024-01&force=kent", api.queries[3])
	assert.Equal(t, "q=51.5%2C-0.1", api.queries[8])
}

func TestSeniorOfficers(t *testing.T) {
	svc, _ := newService(t, map[string]string{
		"/api/forces/kent/people": `[{"name":"Jane Doe","rank":"Chief Constable","bio":"<p>Joined 1995.</p>"}]`,
	})

	resp, err := svc.SeniorOfficers(context.Background(), "kent", policy)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Joined 1995.", resp.Data[0].Bio)
}

func TestAreaReport(t *testing.T) {
	crimes := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		category := "anti-social-behaviour"
		if i%5 == 0 {
			category = "burglary"
		}
		crimes = append(crimes, `{"category":"`+category+`"}`)
	}
	svc, api := newService(t, map[string]string{
		"/api/locate-neighbourhood":    `{"force":"metropolitan","neighbourhood":"E05000138"}`,
		"/api/crimes-street/all-crime": "[" + strings.Join(crimes, ",") + "]",
		"/api/stops-street":            `[{"type":"Person search"}]`,
	})

	report, err := svc.AreaReport(context.Background(), 51.5, -0.1, "", true, true, UniformAreaPolicies(policy))
	require.NoError(t, err)

	assert.Equal(t, "latest", report.Date)
	assert.Equal(t, 25, report.Summary.TotalCrimes)
	assert.Equal(t, 0, report.Summary.TotalOutcomes)
	assert.Equal(t, 1, report.Summary.TotalStopSearches)
	require.NotNil(t, report.Summary.MostCommonCrime)
	assert.Equal(t, "anti-social-behaviour", *report.Summary.MostCommonCrime)
	assert.Equal(t, "medium activity", report.Summary.AreaAssessment)
	assert.Equal(t, 1, report.NeighbourhoodInfo.Count)
	assert.Equal(t, 4, api.calls())
}

func TestAreaReport_InvalidCoordinates(t *testing.T) {
	svc, api := newService(t, nil)

	_, err := svc.AreaReport(context.Background(), 0, 181, "", true, true, UniformAreaPolicies(policy))
	require.Error(t, err)
	assert.Equal(t, 0, api.calls())
}

func TestStopSearchPatterns(t *testing.T) {
	svc, _ := newService(t, map[string]string{
		"/api/stops-force": `[
			{"type":"Person search","datetime":"2024-01-05T10:00:00+00:00","object_of_search":"Controlled drugs","outcome":"Arrest"},
			{"type":"Person search","datetime":"2024-01-06T10:00:00+00:00","object_of_search":"Offensive weapons","outcome":"Arrest"}
		]`,
	})

	resp, err := svc.StopSearchPatterns(context.Background(), "kent", 0, 0, "2024-01", policy)
	require.NoError(t, err)
	assert.Equal(t, "force:kent", resp.Scope)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 2, resp.Patterns.Total)
	assert.Equal(t, 100.0, resp.Patterns.ByOutcome[0].Percentage)
}

func TestStatus(t *testing.T) {
	svc, _ := newService(t, map[string]string{"/api/forces": `[]`})
	assert.True(t, svc.Status(context.Background()).APIAvailable)
}
