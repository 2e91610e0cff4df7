package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/cache"
	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/storage/memory"
	"github.com/bobmcallan/ukdata-mcp/internal/throttle"
)

type countingServer struct {
	*httptest.Server
	calls atomic.Int32
}

func newServer(t *testing.T, handler http.HandlerFunc) *countingServer {
	t.Helper()
	cs := &countingServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func newFetcher(client *http.Client, c *cache.Cache) *Fetcher {
	return New(Options{
		Client:    client,
		Cache:     c,
		Throttle:  throttle.New(nil),
		Rate:      0,
		UserAgent: "ukdata-mcp-test/1.0",
		Logger:    common.NewSilentLogger(),
	})
}

func newCache() *cache.Cache {
	return cache.New(memory.New(100), common.NewSilentLogger())
}

func request(url string) Request {
	return Request{
		Upstream:  "police",
		Operation: "forces",
		URL:       url,
		UseCache:  true,
		MaxAge:    time.Hour,
	}
}

func TestGet_SuccessArray(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Expected Accept application/json, got %q", r.Header.Get("Accept"))
		}
		if r.Header.Get("User-Agent") != "ukdata-mcp-test/1.0" {
			t.Errorf("Unexpected User-Agent %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`[{"id":"leicestershire"},{"id":"kent"}]`))
	})

	f := newFetcher(srv.Client(), nil)
	result := f.Get(context.Background(), request(srv.URL+"/forces"))

	if !result.OK() {
		t.Fatalf("Expected success, got %+v", result)
	}
	if result.Count != 2 {
		t.Errorf("Expected count 2, got %d", result.Count)
	}
	if result.FetchedAt.IsZero() {
		t.Error("Expected FetchedAt to be set")
	}
	var forces []map[string]string
	if err := result.Decode(&forces); err != nil || forces[1]["id"] != "kent" {
		t.Errorf("Unexpected decode: %v %v", forces, err)
	}
}

func TestGet_SuccessObjectCountsOne(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"kent","name":"Kent Police"}`))
	})

	result := newFetcher(srv.Client(), nil).Get(context.Background(), request(srv.URL))
	if !result.OK() || result.Count != 1 {
		t.Errorf("Expected success with count 1, got %+v", result)
	}
}

func TestGet_QueryEncoded(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") != "52.6" || r.URL.Query().Get("date") != "2024-01" {
			t.Errorf("Unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[]`))
	})

	req := request(srv.URL + "/crimes-street/all-crime")
	req.Query = url.Values{"lat": {"52.6"}, "date": {"2024-01"}}
	if result := newFetcher(srv.Client(), nil).Get(context.Background(), req); !result.OK() {
		t.Errorf("Expected success, got %+v", result)
	}
}

func TestGet_NotFoundIsEmptySuccess(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	result := newFetcher(srv.Client(), nil).Get(context.Background(), request(srv.URL+"/forces/nope"))

	if !result.OK() {
		t.Fatalf("Expected success for 404, got %+v", result)
	}
	if result.Count != 0 || string(result.Data) != "[]" {
		t.Errorf("Expected empty data, got count=%d data=%s", result.Count, result.Data)
	}
	if result.Message != MessageNoData {
		t.Errorf("Expected no-data message, got %q", result.Message)
	}
}

func TestGet_ServiceUnavailable(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	c := newCache()
	f := newFetcher(srv.Client(), c)

	result := f.Get(context.Background(), request(srv.URL))
	if result.OK() || result.Kind != KindUpstream {
		t.Fatalf("Expected upstream error, got %+v", result)
	}
	if !strings.Contains(result.Message, ">10,000 results") {
		t.Errorf("Unexpected message %q", result.Message)
	}

	f.Get(context.Background(), request(srv.URL))
	if srv.calls.Load() != 2 {
		t.Errorf("Expected errors never cached (2 calls), got %d", srv.calls.Load())
	}
}

func TestGet_OtherStatusTruncatesDetails(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(strings.Repeat("x", 500)))
	})

	result := newFetcher(srv.Client(), nil).Get(context.Background(), request(srv.URL))

	if result.Message != "API error: HTTP 500" {
		t.Errorf("Unexpected message %q", result.Message)
	}
	if len(result.Details) != 200 {
		t.Errorf("Expected details truncated to 200, got %d", len(result.Details))
	}
	if result.StatusCode != 500 {
		t.Errorf("Expected status 500, got %d", result.StatusCode)
	}
	var fe *Error
	if !errors.As(result.Err, &fe) || fe.Kind != KindUpstream {
		t.Errorf("Expected *Error with upstream kind, got %v", result.Err)
	}
}

func TestGet_InvalidJSON(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	})

	result := newFetcher(srv.Client(), nil).Get(context.Background(), request(srv.URL))
	if result.OK() || result.Kind != KindUpstream {
		t.Errorf("Expected upstream error for invalid JSON, got %+v", result)
	}
}

func TestGet_Timeout(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	f := New(Options{Client: srv.Client(), Timeout: 50 * time.Millisecond, Logger: common.NewSilentLogger()})
	result := f.Get(context.Background(), request(srv.URL))

	if result.Kind != KindTimeout {
		t.Fatalf("Expected timeout kind, got %+v", result)
	}
	if !strings.HasPrefix(result.Message, "Request timed out after") {
		t.Errorf("Unexpected message %q", result.Message)
	}
}

func TestGet_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	result := newFetcher(http.DefaultClient, nil).Get(context.Background(), request(addr))

	if result.Kind != KindTransport {
		t.Fatalf("Expected transport kind, got %+v", result)
	}
	if !strings.HasPrefix(result.Message, "Request failed: ") {
		t.Errorf("Unexpected message %q", result.Message)
	}
}

func TestGet_NilClient(t *testing.T) {
	result := newFetcher(nil, nil).Get(context.Background(), request("http://127.0.0.1:1"))
	if result.Kind != KindDependencyUnavailable {
		t.Errorf("Expected dependency_unavailable, got %+v", result)
	}
}

func TestGet_CacheHitSkipsNetwork(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"kent"}]`))
	})
	f := newFetcher(srv.Client(), newCache())
	req := request(srv.URL)
	req.Params = map[string]any{"force": "kent"}

	first := f.Get(context.Background(), req)
	second := f.Get(context.Background(), req)

	if srv.calls.Load() != 1 {
		t.Errorf("Expected 1 upstream call, got %d", srv.calls.Load())
	}
	if first.Cached || !second.Cached {
		t.Errorf("Expected only second result cached, got %v/%v", first.Cached, second.Cached)
	}
	if second.Count != 1 || string(second.Data) != `[{"id":"kent"}]` {
		t.Errorf("Unexpected cached payload %+v", second)
	}
}

func TestGet_CacheHitBypassesThrottle(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"kent"}]`))
	})
	th := throttle.New(nil)
	f := New(Options{
		Client:   srv.Client(),
		Cache:    newCache(),
		Throttle: th,
		Rate:     1,
		Logger:   common.NewSilentLogger(),
	})
	req := request(srv.URL)

	if first := f.Get(context.Background(), req); !first.OK() {
		t.Fatalf("Expected success, got %+v", first.Err)
	}
	lastCall := th.LastCall()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if r := f.Get(context.Background(), req); !r.Cached {
			t.Fatalf("Expected cache hit on call %d", i+2)
		}
	}
	elapsed := time.Since(start)

	if elapsed >= 500*time.Millisecond {
		t.Errorf("Expected cache hits to skip the 1s throttle interval, took %v", elapsed)
	}
	if !th.LastCall().Equal(lastCall) {
		t.Errorf("Expected throttle untouched by cache hits, last call moved from %v to %v", lastCall, th.LastCall())
	}
	if srv.calls.Load() != 1 {
		t.Errorf("Expected 1 upstream call, got %d", srv.calls.Load())
	}
}

func TestGet_CacheDisabled(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	f := newFetcher(srv.Client(), newCache())
	req := request(srv.URL)
	req.UseCache = false

	f.Get(context.Background(), req)
	f.Get(context.Background(), req)

	if srv.calls.Load() != 2 {
		t.Errorf("Expected 2 upstream calls with caching off, got %d", srv.calls.Load())
	}
}

func TestGet_CoalesceConcurrentMisses(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`[1,2,3]`))
	})
	f := New(Options{Client: srv.Client(), Coalesce: true, Logger: common.NewSilentLogger()})
	req := request(srv.URL)
	req.UseCache = false

	var wg sync.WaitGroup
	results := make([]Result, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.Get(context.Background(), req)
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		if !r.OK() || r.Count != 3 {
			t.Errorf("Expected shared success, got %+v", r)
		}
	}
	if srv.calls.Load() != 1 {
		t.Errorf("Expected coalesced single call, got %d", srv.calls.Load())
	}
}

func TestInvalid(t *testing.T) {
	result := Invalid("bad %s", "input")
	if result.OK() || result.Kind != KindValidation || result.Message != "bad input" {
		t.Errorf("Unexpected validation result %+v", result)
	}
}
