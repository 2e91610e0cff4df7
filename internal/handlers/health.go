package handlers

import (
	"net/http"
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/config"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Transport     string  `json:"transport"`
	CacheBackend  string  `json:"cache_backend"`
	ThrottleRate  float64 `json:"throttle_rate"`
	UptimeSeconds int64   `json:"uptime_seconds"`
}

// HealthHandler reports liveness plus the cache and throttle settings in use.
// It never calls an upstream; see UpstreamHandler for that.
type HealthHandler struct {
	logger    *common.Logger
	transport string
	backend   string
	rate      float64
	started   time.Time
	now       func() time.Time
}

// NewHealthHandler creates a health handler for cfg.
func NewHealthHandler(logger *common.Logger, cfg *config.Config) *HealthHandler {
	now := time.Now
	return &HealthHandler{
		logger:    logger,
		transport: cfg.Server.Transport,
		backend:   cfg.Cache.Backend,
		rate:      cfg.Throttle.Rate,
		started:   now(),
		now:       now,
	}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Transport:     h.transport,
		CacheBackend:  h.backend,
		ThrottleRate:  h.rate,
		UptimeSeconds: int64(h.now().Sub(h.started).Seconds()),
	})
}
