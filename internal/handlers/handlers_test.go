package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bobmcallan/ukdata-mcp/internal/config"
)

func newHealthHandler() *HealthHandler {
	cfg := config.NewDefaultConfig()
	cfg.Cache.Backend = "sqlite"
	cfg.Throttle.Rate = 2
	return NewHealthHandler(nil, cfg)
}

func TestHealthHandler_ReturnsOK(t *testing.T) {
	handler := newHealthHandler()

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if body.Status != "ok" {
		t.Errorf("expected status ok, got %s", body.Status)
	}
	if body.CacheBackend != "sqlite" {
		t.Errorf("expected cache_backend sqlite, got %s", body.CacheBackend)
	}
	if body.ThrottleRate != 2 {
		t.Errorf("expected throttle_rate 2, got %v", body.ThrottleRate)
	}
	if body.Transport != "stdio" {
		t.Errorf("expected transport stdio, got %s", body.Transport)
	}
}

func TestHealthHandler_RejectsNonGET(t *testing.T) {
	handler := newHealthHandler()

	req := httptest.NewRequest("POST", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "GET" {
		t.Errorf("expected Allow GET, got %q", allow)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body["status"] != "error" || body["message"] == "" {
		t.Errorf("expected error envelope, got %v", body)
	}
}

func TestVersionHandler_ReturnsJSON(t *testing.T) {
	handler := NewVersionHandler(nil)

	req := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	for _, key := range []string{"version", "build", "git_commit"} {
		if _, ok := body[key]; !ok {
			t.Errorf("expected %s field in response", key)
		}
	}
}

func probe(name string, ok bool) Probe {
	return Probe{Name: name, Check: func(context.Context) (bool, string) {
		if ok {
			return true, name + " reachable"
		}
		return false, "Request failed"
	}}
}

func TestUpstreamHandler_AllAvailable(t *testing.T) {
	handler := NewUpstreamHandlerWithProbes(nil, probe("bank_holidays", true), probe("police", true))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/upstreams", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body struct {
		Status    string           `json:"status"`
		Upstreams []UpstreamStatus `json:"upstreams"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Status != "ok" || len(body.Upstreams) != 2 {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestUpstreamHandler_Degraded(t *testing.T) {
	handler := NewUpstreamHandlerWithProbes(nil, probe("bank_holidays", true), probe("police", false))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/upstreams", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusBadRequest, "bad input")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "error" || body["message"] != "bad input" {
		t.Errorf("unexpected body %v", body)
	}
	if _, ok := body["error"]; ok {
		t.Errorf("unexpected error key in %v", body)
	}
}
