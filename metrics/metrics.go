package metrics // import "github.com/storyworld/storyworld/metrics"

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/storyworld/storyworld/store"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storyworld",
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests handled, by method and status.",
		},
		[]string{"method", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storyworld",
			Name:      "http_request_duration_seconds",
			Help:      "Time spent handling HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// Register wires the HTTP series and the catalog collector into the
// default registry. Call once at startup when metrics are enabled.
func Register(s *store.Store) {
	prometheus.MustRegister(requestsTotal, requestDuration, NewStoreCollector(s))
}

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestMetrics records a counter and duration sample per request.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		t1 := time.Now()
		next.ServeHTTP(recorder, r)

		requestsTotal.WithLabelValues(r.Method, strconv.Itoa(recorder.status)).Inc()
		requestDuration.WithLabelValues(r.Method).Observe(time.Since(t1).Seconds())
	})
}
