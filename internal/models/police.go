package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Crime is a normalized street-level crime record.
type Crime struct {
	ID              int64   `json:"id"`
	PersistentID    string  `json:"persistent_id,omitempty"`
	Category        string  `json:"category"`
	Month           string  `json:"month"`
	LocationType    string  `json:"location_type,omitempty"`
	Street          string  `json:"street,omitempty"`
	Latitude        float64 `json:"latitude,omitempty"`
	Longitude       float64 `json:"longitude,omitempty"`
	OutcomeCategory string  `json:"outcome_category,omitempty"`
	OutcomeDate     string  `json:"outcome_date,omitempty"`
}

// ParseCrimes extracts crimes from a crimes-street or crimes-no-location body.
// Missing categories are reported as "unknown".
func ParseCrimes(body []byte) []Crime {
	var crimes []Crime
	gjson.ParseBytes(body).ForEach(func(_, v gjson.Result) bool {
		category := v.Get("category").String()
		if category == "" {
			category = "unknown"
		}
		crimes = append(crimes, Crime{
			ID:              v.Get("id").Int(),
			PersistentID:    v.Get("persistent_id").String(),
			Category:        category,
			Month:           v.Get("month").String(),
			LocationType:    v.Get("location_type").String(),
			Street:          v.Get("location.street.name").String(),
			Latitude:        v.Get("location.latitude").Float(),
			Longitude:       v.Get("location.longitude").Float(),
			OutcomeCategory: v.Get("outcome_status.category").String(),
			OutcomeDate:     v.Get("outcome_status.date").String(),
		})
		return true
	})
	return crimes
}

// StopSearch is a normalized stop-and-search record.
type StopSearch struct {
	Type           string  `json:"type"`
	DateTime       string  `json:"datetime"`
	Gender         string  `json:"gender,omitempty"`
	AgeRange       string  `json:"age_range,omitempty"`
	ObjectOfSearch string  `json:"object_of_search,omitempty"`
	Legislation    string  `json:"legislation,omitempty"`
	Outcome        string  `json:"outcome,omitempty"`
	Latitude       float64 `json:"latitude,omitempty"`
	Longitude      float64 `json:"longitude,omitempty"`
	Weekday        string  `json:"weekday,omitempty"`
}

// ParseStopSearches extracts stop-and-search records. Weekday is derived
// from the RFC 3339 datetime when it parses.
func ParseStopSearches(body []byte) []StopSearch {
	var out []StopSearch
	gjson.ParseBytes(body).ForEach(func(_, v gjson.Result) bool {
		s := StopSearch{
			Type:           v.Get("type").String(),
			DateTime:       v.Get("datetime").String(),
			Gender:         v.Get("gender").String(),
			AgeRange:       v.Get("age_range").String(),
			ObjectOfSearch: v.Get("object_of_search").String(),
			Legislation:    v.Get("legislation").String(),
			Latitude:       v.Get("location.latitude").Float(),
			Longitude:      v.Get("location.longitude").Float(),
		}
		// outcome is a string in current data and an object in older months.
		outcome := v.Get("outcome")
		if outcome.IsObject() {
			s.Outcome = outcome.Get("name").String()
		} else if outcome.Type == gjson.String {
			s.Outcome = outcome.String()
		}
		if t, err := time.Parse(time.RFC3339, s.DateTime); err == nil {
			s.Weekday = t.Weekday().String()
		}
		out = append(out, s)
		return true
	})
	return out
}

// Force is a police force summary.
type Force struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParseForces extracts the force list.
func ParseForces(body []byte) []Force {
	var forces []Force
	gjson.ParseBytes(body).ForEach(func(_, v gjson.Result) bool {
		forces = append(forces, Force{ID: v.Get("id").String(), Name: v.Get("name").String()})
		return true
	})
	return forces
}

// Officer is a senior officer listed under forces/{id}/people.
type Officer struct {
	Name           string            `json:"name"`
	Rank           string            `json:"rank"`
	Bio            string            `json:"bio"`
	ContactDetails map[string]string `json:"contact_details,omitempty"`
}

// NoBio is reported when an officer has no biography.
const NoBio = "No bio available"

// ParseOfficers extracts officers with their biographies reduced to plain text.
func ParseOfficers(body []byte) []Officer {
	var officers []Officer
	gjson.ParseBytes(body).ForEach(func(_, v gjson.Result) bool {
		o := Officer{
			Name: v.Get("name").String(),
			Rank: v.Get("rank").String(),
			Bio:  PlainBio(v.Get("bio").String()),
		}
		if contact := v.Get("contact_details"); contact.IsObject() {
			o.ContactDetails = make(map[string]string)
			contact.ForEach(func(k, val gjson.Result) bool {
				o.ContactDetails[k.String()] = val.String()
				return true
			})
		}
		officers = append(officers, o)
		return true
	})
	return officers
}

var (
	breakTag   = regexp.MustCompile(`(?i)<br\s*/?>|</p>`)
	anyTag     = regexp.MustCompile(`<[^>]+>`)
	blankLines = regexp.MustCompile(`\n{2,}`)
)

// PlainBio converts a bio's HTML fragment to plain text, one paragraph per line.
func PlainBio(bio string) string {
	if strings.TrimSpace(bio) == "" {
		return NoBio
	}
	text := breakTag.ReplaceAllString(bio, "\n")
	text = anyTag.ReplaceAllString(text, "")
	text = blankLines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
