package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/holidays"
	"github.com/bobmcallan/ukdata-mcp/internal/police"
)

// upstreamProbeTimeout bounds each upstream status check.
const upstreamProbeTimeout = 5 * time.Second

// UpstreamStatus is one upstream's reachability.
type UpstreamStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Probe checks one upstream.
type Probe struct {
	Name  string
	Check func(ctx context.Context) (bool, string)
}

// UpstreamHandler reports whether the public APIs are reachable.
type UpstreamHandler struct {
	logger *common.Logger
	probes []Probe
}

// NewUpstreamHandler probes the holidays feed and the police API.
func NewUpstreamHandler(logger *common.Logger, h *holidays.Service, p *police.Service) *UpstreamHandler {
	return NewUpstreamHandlerWithProbes(logger,
		Probe{Name: "bank_holidays", Check: func(ctx context.Context) (bool, string) {
			s := h.Status(ctx)
			return s.APIAvailable, s.Message
		}},
		Probe{Name: "police", Check: func(ctx context.Context) (bool, string) {
			s := p.Status(ctx)
			return s.APIAvailable, s.Message
		}},
	)
}

// NewUpstreamHandlerWithProbes creates a handler over arbitrary probes.
func NewUpstreamHandlerWithProbes(logger *common.Logger, probes ...Probe) *UpstreamHandler {
	return &UpstreamHandler{logger: logger, probes: probes}
}

// ServeHTTP handles GET /api/upstreams. Responds 503 when any upstream is down.
func (h *UpstreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), upstreamProbeTimeout)
	defer cancel()

	code := http.StatusOK
	statuses := make([]UpstreamStatus, 0, len(h.probes))
	for _, p := range h.probes {
		ok, msg := p.Check(ctx)
		if !ok {
			code = http.StatusServiceUnavailable
			if h.logger != nil {
				h.logger.Warn().Str("upstream", p.Name).Str("message", msg).Msg("upstream unavailable")
			}
		}
		statuses = append(statuses, UpstreamStatus{Name: p.Name, Available: ok, Message: msg})
	}

	status := "ok"
	if code != http.StatusOK {
		status = "degraded"
	}
	WriteJSON(w, code, map[string]any{
		"status":    status,
		"upstreams": statuses,
	})
}
