package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardd_http_requests_total",
			Help: "Total number of HTTP requests by method, route, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boardd_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "boardd_http_requests_in_flight",
		Help: "Current number of HTTP requests being processed.",
	})
)

// BoardStore is the subset of store.Store needed to collect board metrics.
type BoardStore interface {
	CountByFormFactor(ctx context.Context) (map[string]int, error)
}

// boardCollector queries the database on each scrape to report registered
// board counts broken down by form factor.
type boardCollector struct {
	store      BoardStore
	boardsDesc *prometheus.Desc
}

func (c *boardCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.boardsDesc
}

func (c *boardCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.store.CountByFormFactor(context.Background())
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.boardsDesc, err)
		return
	}
	for ff, n := range counts {
		ch <- prometheus.MustNewConstMetric(
			c.boardsDesc,
			prometheus.GaugeValue,
			float64(n),
			ff,
		)
	}
}

// Register registers all metrics with the default Prometheus registry.
// Call once at startup after the store is initialised.
func Register(s BoardStore) {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		httpRequestsInFlight,
		&boardCollector{
			store: s,
			boardsDesc: prometheus.NewDesc(
				"boardd_boards_registered",
				"Number of registered boards, partitioned by form factor.",
				[]string{"form_factor"},
				nil,
			),
		},
	)
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Server returns a Kratos middleware that records request metrics. The path
// label uses the route template so cardinality stays bounded.
func Server() middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req any) (any, error) {
			method, path := "unknown", "unknown"
			if tr, ok := transport.FromServerContext(ctx); ok {
				if ht, ok := tr.(kratoshttp.Transporter); ok {
					method = ht.Request().Method
					path = ht.PathTemplate()
				}
			}

			httpRequestsInFlight.Inc()
			start := time.Now()
			reply, err := handler(ctx, req)
			httpRequestsInFlight.Dec()

			code := http.StatusOK
			if err != nil {
				code = int(kerrors.FromError(err).Code)
			}
			httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return reply, err
		}
	}
}
