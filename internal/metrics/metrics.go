// Package metrics registers the service's prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Nodal/internal/calc/calcerr"
)

const namespace = "nodal"

// DefaultHTTPDurationBuckets spans fast calc calls up to PDF rendering.
var DefaultHTTPDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   DefaultHTTPDurationBuckets,
	}, []string{"route", "method"})

	CalcErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calc_errors_total",
		Help:      "Calculation failures by error kind.",
	}, []string{"kind"})
)

// ObserveRequest records one finished request.
func ObserveRequest(route, method string, status int, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveCalcError counts err under its calcerr kind.
func ObserveCalcError(err error) {
	CalcErrors.WithLabelValues(calcerr.Kind(err)).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
