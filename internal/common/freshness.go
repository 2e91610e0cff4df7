package common

import "time"

// Default cache max ages per upstream resource. Reference data (force lists,
// crime categories, the holiday calendar) changes rarely; street-level crime
// and stop-and-search data is republished monthly but queried often.
const (
	FreshnessHolidays      = 24 * time.Hour
	FreshnessForces        = 24 * time.Hour
	FreshnessCategories    = 24 * time.Hour
	FreshnessDates         = 24 * time.Hour
	FreshnessNeighbourhood = 1 * time.Hour
	FreshnessOutcomes      = 1 * time.Hour
	FreshnessStreet        = 30 * time.Minute
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated, now time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return now.Sub(updated) < ttl
}
