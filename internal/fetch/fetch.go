// Package fetch is the read-through pipeline shared by every upstream feed:
// cache lookup, throttle, HTTP GET, response classification, write-through.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/bobmcallan/ukdata-mcp/internal/cache"
	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/metrics"
	"github.com/bobmcallan/ukdata-mcp/internal/throttle"
)

// maxResponseSize caps upstream bodies.
const maxResponseSize = 50 << 20 // 50MB

// maxDetails is how much of an unexpected error body is kept.
const maxDetails = 200

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 30 * time.Second

// Request describes one cacheable upstream read.
type Request struct {
	Upstream  string         // metrics label, e.g. "holidays" or "police"
	Operation string         // cache fingerprint operation name
	URL       string         // absolute URL, without query
	Query     url.Values     // appended to URL
	Params    map[string]any // fingerprint parameters
	UseCache  bool
	MaxAge    time.Duration
}

// Options configures a Fetcher.
type Options struct {
	Client    *http.Client
	Cache     *cache.Cache
	Throttle  *throttle.Throttle
	Rate      float64
	UserAgent string
	Timeout   time.Duration
	Coalesce  bool
	Logger    *common.Logger
	Metrics   *metrics.Metrics
}

// Fetcher executes Requests. It never retries and never panics on upstream
// misbehaviour; every failure is returned as an error Result.
type Fetcher struct {
	client    *http.Client
	cache     *cache.Cache
	throttle  *throttle.Throttle
	rate      float64
	userAgent string
	timeout   time.Duration
	logger    *common.Logger
	metrics   *metrics.Metrics
	group     *singleflight.Group
	now       func() time.Time
}

// New creates a Fetcher. A nil Client yields dependency_unavailable errors on
// every cache miss; a nil Cache disables caching.
func New(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	f := &Fetcher{
		client:    opts.Client,
		cache:     opts.Cache,
		throttle:  opts.Throttle,
		rate:      opts.Rate,
		userAgent: opts.UserAgent,
		timeout:   timeout,
		logger:    logger,
		metrics:   opts.Metrics,
		now:       time.Now,
	}
	if opts.Coalesce {
		f.group = &singleflight.Group{}
	}
	return f
}

// NewHTTPClient returns the client used for upstream calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Get runs req through the cache and, on a miss, the network.
func (f *Fetcher) Get(ctx context.Context, req Request) Result {
	key := cache.Fingerprint(req.Operation, req.Params)

	if req.UseCache && f.cache != nil {
		var cached Result
		if f.cache.Lookup(ctx, key, req.MaxAge, &cached) && cached.OK() {
			cached.Cached = true
			f.logger.Debug().Str("operation", req.Operation).Str("key", key).Msg("cache hit")
			return cached
		}
	}

	if f.group == nil {
		return f.fetchAndStore(ctx, req, key)
	}

	v, _, _ := f.group.Do(key+"|"+requestURL(req), func() (any, error) {
		return f.fetchAndStore(ctx, req, key), nil
	})
	return v.(Result)
}

func (f *Fetcher) fetchAndStore(ctx context.Context, req Request, key string) Result {
	result := f.do(ctx, req)
	if result.OK() && req.UseCache && f.cache != nil {
		f.cache.Write(ctx, key, result)
	}
	return result
}

func requestURL(req Request) string {
	if len(req.Query) == 0 {
		return req.URL
	}
	return req.URL + "?" + req.Query.Encode()
}

// do performs the throttled GET and classifies the response.
func (f *Fetcher) do(ctx context.Context, req Request) Result {
	if f.client == nil {
		return Failure(&Error{Kind: KindDependencyUnavailable, Message: "HTTP client not available"})
	}

	target := requestURL(req)

	if f.throttle != nil {
		if err := f.throttle.Acquire(ctx, f.rate); err != nil {
			return Failure(&Error{Kind: KindTransport, Message: fmt.Sprintf("Request failed: %v", err), Err: err})
		}
	}

	f.logger.Debug().Str("method", "GET").Str("upstream", req.Upstream).Str("url", target).Msg("upstream request")

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Failure(&Error{Kind: KindTransport, Message: fmt.Sprintf("Request failed: %v", err), Err: err})
	}
	if f.userAgent != "" {
		httpReq.Header.Set("User-Agent", f.userAgent)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := f.now()
	resp, err := f.client.Do(httpReq)
	duration := f.now().Sub(start)
	if err != nil {
		result := f.transportFailure(err)
		f.metrics.UpstreamRequest(req.Upstream, string(result.Kind), duration)
		f.logger.Error().Str("method", "GET").Str("url", target).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("upstream request failed")
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		result := f.transportFailure(err)
		f.metrics.UpstreamRequest(req.Upstream, string(result.Kind), duration)
		return result
	}

	f.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("upstream response")

	result := f.classify(resp.StatusCode, body)
	result.Source = target
	if result.OK() {
		result.FetchedAt = f.now().UTC()
	}

	outcome := string(result.Kind)
	if result.OK() {
		outcome = "success"
		if resp.StatusCode == http.StatusNotFound {
			outcome = "not_found"
		}
	}
	f.metrics.UpstreamRequest(req.Upstream, outcome, duration)
	return result
}

func (f *Fetcher) classify(status int, body []byte) Result {
	switch {
	case status >= 200 && status < 300:
		if !gjson.ValidBytes(body) {
			return Failure(&Error{
				Kind:       KindUpstream,
				Message:    "Invalid JSON in upstream response",
				Details:    truncate(string(body), maxDetails),
				StatusCode: status,
			})
		}
		parsed := gjson.ParseBytes(body)
		count := 1
		if parsed.IsArray() {
			count = int(parsed.Get("#").Int())
		}
		return Result{Status: StatusSuccess, Data: body, Count: count}

	case status == http.StatusNotFound:
		return Result{Status: StatusSuccess, Data: []byte("[]"), Count: 0, Message: MessageNoData}

	case status == http.StatusServiceUnavailable:
		return Failure(&Error{
			Kind:       KindUpstream,
			Message:    "Service temporarily unavailable or request too large (>10,000 results)",
			StatusCode: status,
		})

	default:
		return Failure(&Error{
			Kind:       KindUpstream,
			Message:    fmt.Sprintf("API error: HTTP %d", status),
			Details:    truncate(string(body), maxDetails),
			StatusCode: status,
		})
	}
}

func (f *Fetcher) transportFailure(err error) Result {
	if isTimeout(err) {
		return Failure(&Error{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("Request timed out after %d seconds", int(f.timeout.Seconds())),
			Err:     err,
		})
	}
	return Failure(&Error{Kind: KindTransport, Message: fmt.Sprintf("Request failed: %v", err), Err: err})
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
