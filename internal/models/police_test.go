package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCrimes(t *testing.T) {
	body := []byte(`[
	  {"id": 116208998, "persistent_id": "abc", "category": "burglary", "month": "2024-01",
	   "location_type": "Force", "location": {"latitude": "52.63", "longitude": "-1.13", "street": {"name": "On or near High Street"}},
	   "outcome_status": {"category": "Under investigation", "date": "2024-01"}},
	  {"id": 2, "category": "", "month": "2024-01", "location": null, "outcome_status": null}
	]`)

	crimes := ParseCrimes(body)
	require.Len(t, crimes, 2)
	assert.Equal(t, "burglary", crimes[0].Category)
	assert.Equal(t, "On or near High Street", crimes[0].Street)
	assert.InDelta(t, 52.63, crimes[0].Latitude, 1e-9)
	assert.Equal(t, "Under investigation", crimes[0].OutcomeCategory)
	assert.Equal(t, "unknown", crimes[1].Category)
}

func TestParseCrimes_EmptyAndNonArray(t *testing.T) {
	assert.Empty(t, ParseCrimes([]byte(`[]`)))
	assert.Empty(t, ParseCrimes(nil))
}

func TestParseStopSearches(t *testing.T) {
	body := []byte(`[
	  {"type": "Person search", "datetime": "2024-01-05T14:30:00+00:00", "object_of_search": "Controlled drugs",
	   "outcome": "A no further action disposal", "location": {"latitude": "51.5", "longitude": "-0.1"}},
	  {"type": "Vehicle search", "datetime": "bad", "outcome": {"id": "arrest", "name": "Arrest"}},
	  {"type": "Person search", "datetime": "2024-01-06T10:00:00+00:00", "outcome": false}
	]`)

	stops := ParseStopSearches(body)
	require.Len(t, stops, 3)
	assert.Equal(t, "Friday", stops[0].Weekday)
	assert.Equal(t, "Controlled drugs", stops[0].ObjectOfSearch)
	assert.Equal(t, "Arrest", stops[1].Outcome)
	assert.Empty(t, stops[1].Weekday)
	assert.Empty(t, stops[2].Outcome)
}

func TestParseForces(t *testing.T) {
	forces := ParseForces([]byte(`[{"id":"avon-and-somerset","name":"Avon and Somerset Constabulary"}]`))
	require.Len(t, forces, 1)
	assert.Equal(t, Force{ID: "avon-and-somerset", Name: "Avon and Somerset Constabulary"}, forces[0])
}

func TestParseOfficers(t *testing.T) {
	body := []byte(`[{"name": "Jane Doe", "rank": "Chief Constable",
	  "bio": "<p>Joined in 1995.</p><p>Served in CID.<br />Promoted 2020.</p>",
	  "contact_details": {"twitter": "http://twitter.com/example"}},
	  {"name": "John Roe", "rank": "Deputy Chief Constable", "bio": null}]`)

	officers := ParseOfficers(body)
	require.Len(t, officers, 2)
	assert.Equal(t, "Joined in 1995.\nServed in CID.\nPromoted 2020.", officers[0].Bio)
	assert.Equal(t, "http://twitter.com/example", officers[0].ContactDetails["twitter"])
	assert.Equal(t, NoBio, officers[1].Bio)
	assert.Nil(t, officers[1].ContactDetails)
}
