package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/ukdata-mcp/internal/app"
	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/config"
)

func newTestApp(t *testing.T, metricsEnabled bool) *app.App {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.Cache.Backend = "memory"
	cfg.Cache.PruneAfter = ""
	cfg.Metrics.Enabled = metricsEnabled
	cfg.Throttle.Rate = 0
	cfg.Upstream.HolidaysURL = "http://127.0.0.1:1/bank-holidays.json"
	cfg.Upstream.PoliceURL = "http://127.0.0.1:1/api"

	application, err := app.New(cfg, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}

	t.Cleanup(func() {
		application.Close()
	})

	return application
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	srv := New(newTestApp(t, false))

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if body["cache_backend"] != "memory" {
		t.Errorf("expected cache_backend memory, got %v", body["cache_backend"])
	}
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected X-Correlation-ID header")
	}
}

func TestRoutes_VersionEndpoint(t *testing.T) {
	srv := New(newTestApp(t, false))

	req := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := body["version"]; !ok {
		t.Error("expected version field in response")
	}
}

func TestRoutes_APINotFound(t *testing.T) {
	srv := New(newTestApp(t, false))

	req := httptest.NewRequest("GET", "/api/nonexistent", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"error"`) {
		t.Errorf("expected error envelope, got %s", w.Body.String())
	}
}

func TestRoutes_Metrics(t *testing.T) {
	srv := New(newTestApp(t, true))

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ukdata_") {
		t.Error("expected ukdata metrics in exposition")
	}
}

func TestRoutes_MetricsDisabled(t *testing.T) {
	srv := New(newTestApp(t, false))

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRoutes_UpstreamsUnavailable(t *testing.T) {
	srv := New(newTestApp(t, false))

	req := httptest.NewRequest("GET", "/api/upstreams", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}
