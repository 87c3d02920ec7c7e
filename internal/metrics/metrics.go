// Package metrics exposes prometheus collectors for actions, inbound HTTP
// and outbound API calls.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"resty.dev/v3"

	"Hearth/internal/core/revalidate"
)

var (
	actionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hearth_action_duration_seconds",
			Help:    "Histogram of user action latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action", "outcome"},
	)

	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hearth_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status_code"},
	)

	apiLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hearth_upstream_request_latency",
			Help:    "Histogram of upstream API request latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"upstream", "method", "host", "status_code"},
	)

	revalidateSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hearth_revalidate_signals_total",
			Help: "Revalidate signals sent, by path and outcome",
		},
		[]string{"path", "outcome"},
	)
)

// Outcome labels.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// ObserveAction records how long an action took.
func ObserveAction(action, outcome string, start time.Time) {
	actionLatency.WithLabelValues(action, outcome).Observe(time.Since(start).Seconds())
}

// CountRevalidate records one revalidate signal.
func CountRevalidate(path string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	revalidateSignals.WithLabelValues(path, outcome).Inc()
}

// CountedSignaler counts every signal passed to Next.
type CountedSignaler struct {
	Next revalidate.Signaler
}

func (s CountedSignaler) Revalidate(ctx context.Context, path string) error {
	err := s.Next.Revalidate(ctx, path)
	CountRevalidate(path, err)
	return err
}

// UpstreamMiddleware returns a resty response middleware that records
// latency for calls to the named upstream.
func UpstreamMiddleware(upstream string) resty.ResponseMiddleware {
	return func(_ *resty.Client, response *resty.Response) error {
		reqURL, err := url.Parse(response.Request.URL)
		if err != nil {
			return err
		}

		apiLatency.WithLabelValues(
			upstream,
			response.Request.Method,
			reqURL.Host,
			fmt.Sprintf("%d", response.StatusCode()),
		).Observe(response.Duration().Seconds())

		return nil
	}
}

// Middleware records latency per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		requestLatency.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
