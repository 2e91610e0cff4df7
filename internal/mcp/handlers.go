package mcp

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/ukdata-mcp/internal/fetch"
)

// errorEnvelope is the body of every failed tool call.
type errorEnvelope struct {
	Status     string     `json:"status"`
	Message    string     `json:"message"`
	Kind       fetch.Kind `json:"kind"`
	Details    string     `json:"details,omitempty"`
	StatusCode int        `json:"status_code,omitempty"`
}

// errorResult creates an MCP error result for a bad argument.
func errorResult(message string) *mcp.CallToolResult {
	return failureResult(&fetch.Error{Kind: fetch.KindValidation, Message: message})
}

// failureResult renders a fetch.Error as an error envelope.
func failureResult(fe *fetch.Error) *mcp.CallToolResult {
	body, _ := json.Marshal(errorEnvelope{
		Status:     fetch.StatusError,
		Message:    fe.Message,
		Kind:       fe.Kind,
		Details:    fe.Details,
		StatusCode: fe.StatusCode,
	})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(body))},
		IsError: true,
	}
}

// jsonResult renders v as the tool's JSON text content.
func jsonResult(v any) *mcp.CallToolResult {
	body, err := json.Marshal(v)
	if err != nil {
		return failureResult(&fetch.Error{Kind: fetch.KindTransport, Message: fmt.Sprintf("failed to encode response: %v", err)})
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(body))},
	}
}

// respond renders a service response, or its error as an envelope.
func respond(v any, err error) *mcp.CallToolResult {
	if err != nil {
		return failureResult(fetch.AsError(err))
	}
	return jsonResult(v)
}

// respondResult renders a fetch.Result, which is already an envelope.
func respondResult(result fetch.Result, err error) *mcp.CallToolResult {
	if err != nil {
		return failureResult(fetch.AsError(err))
	}
	return jsonResult(result)
}

// cachePolicy reads use_cache and cache_max_age, defaulting to the tool's
// catalog max age.
func cachePolicy(request mcp.CallToolRequest, ct CatalogTool) fetch.CachePolicy {
	return fetch.CachePolicy{
		Use:    request.GetBool("use_cache", true),
		MaxAge: secondsToDuration(request.GetFloat("cache_max_age", float64(ct.DefaultMaxAgeSeconds()))),
	}
}

// maxDurationSeconds is the largest whole-second count a time.Duration holds.
const maxDurationSeconds = float64(math.MaxInt64 / int64(time.Second))

// secondsToDuration converts seconds, clamping negatives and NaN to zero and
// values past the time.Duration range to its maximum.
func secondsToDuration(seconds float64) time.Duration {
	switch {
	case !(seconds > 0):
		return 0
	case seconds >= maxDurationSeconds:
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}

// requireFloat reads a required numeric argument.
func requireFloat(request mcp.CallToolRequest, key string) (float64, error) {
	if _, ok := request.GetArguments()[key]; !ok {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	v, err := request.RequireFloat(key)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}

// requireInt reads a required integer argument.
func requireInt(request mcp.CallToolRequest, key string) (int, error) {
	if _, ok := request.GetArguments()[key]; !ok {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	v, err := request.RequireInt(key)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// requireString reads a required string argument.
func requireString(request mcp.CallToolRequest, key string) (string, error) {
	v, err := request.RequireString(key)
	if err != nil || v == "" {
		return "", fmt.Errorf("%s parameter is required", key)
	}
	return v, nil
}

// point reads the lat and lng arguments.
func point(request mcp.CallToolRequest) (float64, float64, error) {
	lat, err := requireFloat(request, "lat")
	if err != nil {
		return 0, 0, err
	}
	lng, err := requireFloat(request, "lng")
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}
