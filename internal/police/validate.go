package police

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bobmcallan/ukdata-mcp/internal/fetch"
)

const (
	msgInvalidCoordinates = "Invalid coordinates. Latitude must be between -90 and 90, longitude between -180 and 180"
	msgInvalidDate        = "Invalid date format. Use YYYY-MM format (e.g., '2024-01')"
	msgInvalidPolyFormat  = "Invalid coordinate format. Use lat,lng:lat,lng format"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// validCoordinates reports whether lat/lng are finite and in range.
func validCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// validMonth accepts an empty date (latest) or YYYY-MM.
func validMonth(date string) bool {
	return date == "" || monthPattern.MatchString(date)
}

// validatePoly checks the polygon has at least three pairs and that the first
// three are well formed and in range.
func validatePoly(poly string) *fetch.Error {
	if strings.TrimSpace(poly) == "" {
		return invalid("poly parameter must be a non-empty string of lat/lng coordinates")
	}
	pairs := strings.Split(poly, ":")
	if len(pairs) < 3 {
		return invalid("Polygon must have at least 3 coordinate pairs")
	}
	for _, pair := range pairs[:3] {
		coords := strings.Split(pair, ",")
		if len(coords) != 2 {
			return invalid(msgInvalidPolyFormat)
		}
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if errLat != nil || errLng != nil {
			return invalid("Invalid numeric coordinates in pair %s", pair)
		}
		if !validCoordinates(lat, lng) {
			return invalid("Invalid coordinates in pair %s", pair)
		}
	}
	return nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func requireID(name, value string) *fetch.Error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s must be provided", name)
	}
	return nil
}
