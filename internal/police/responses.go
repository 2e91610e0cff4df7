package police

import (
	"github.com/bobmcallan/ukdata-mcp/internal/analytics"
	"github.com/bobmcallan/ukdata-mcp/internal/fetch"
	"github.com/bobmcallan/ukdata-mcp/internal/models"
)

// StatusResponse reports whether the API is reachable.
type StatusResponse struct {
	Status       string `json:"status"`
	APIAvailable bool   `json:"api_available"`
	Message      string `json:"message"`
	BaseURL      string `json:"base_url"`
}

type OfficersResponse struct {
	Status  string           `json:"status"`
	ForceID string           `json:"force_id"`
	Data    []models.Officer `json:"data"`
	Count   int              `json:"count"`
	Message string           `json:"message,omitempty"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AreaReport is the combined view returned by Service.AreaReport.
type AreaReport struct {
	Status            string                `json:"status"`
	Location          Location              `json:"location"`
	Date              string                `json:"date"`
	NeighbourhoodInfo fetch.Result          `json:"neighbourhood_info"`
	CrimeData         fetch.Result          `json:"crime_data"`
	OutcomesData      *fetch.Result         `json:"outcomes_data,omitempty"`
	StopSearchData    *fetch.Result         `json:"stop_search_data,omitempty"`
	Summary           analytics.AreaSummary `json:"summary"`
}

type StopSearchPatternsResponse struct {
	Status   string                     `json:"status"`
	Scope    string                     `json:"scope"`
	Date     string                     `json:"date,omitempty"`
	Count    int                        `json:"count"`
	Patterns analytics.StopSearchReport `json:"patterns"`
	Message  string                     `json:"message,omitempty"`
}
