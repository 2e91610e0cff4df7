package fetch

import (
	"encoding/json"
	"time"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MessageNoData accompanies an empty success produced by an upstream 404.
const MessageNoData = "No data found for the specified parameters"

// Result is the classified outcome of one fetch. A success carries Data and
// Count; an error carries Message, Kind and Err. Results are what the cache
// persists, so only exported JSON fields survive a round trip.
type Result struct {
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data,omitempty"`
	Count      int             `json:"count"`
	Message    string          `json:"message,omitempty"`
	Details    string          `json:"details,omitempty"`
	Kind       Kind            `json:"kind,omitempty"`
	StatusCode int             `json:"status_code,omitempty"`
	Source     string          `json:"source,omitempty"`
	FetchedAt  time.Time       `json:"fetched_at"`

	// Cached is set when the result was served from the cache.
	Cached bool   `json:"-"`
	Err    *Error `json:"-"`
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Decode unmarshals Data into v. An empty success decodes as a no-op.
func (r Result) Decode(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// CachePolicy is the per-call cache control every tool exposes.
type CachePolicy struct {
	Use    bool
	MaxAge time.Duration
}
