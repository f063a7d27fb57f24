package swagger

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Endpoint labels of the request metrics. Requests that no documentation
// endpoint served are counted under EndpointOther.
const (
	EndpointJSON  = "json"
	EndpointYAML  = "yaml"
	EndpointDocs  = "docs"
	EndpointOther = "other"
)

type endpointKey struct{}

// Metrics counts requests to the documentation endpoints and document
// builds.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	builds   *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "routedoc_http_requests_total",
			Help: "Requests served, by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routedoc_http_request_duration_seconds",
			Help:    "Time spent serving requests, by endpoint.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "routedoc_document_builds_total",
			Help: "Document builds, by result.",
		}, []string{"result"}),
	}
}

// ObserveBuild records the outcome of a document build.
func (m *Metrics) ObserveBuild(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.builds.WithLabelValues(result).Inc()
}

// Middleware records the status code and latency of each request under the
// endpoint that served it.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		endpoint := EndpointOther

		next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), endpointKey{}, &endpoint)))

		m.requests.WithLabelValues(endpoint, strconv.Itoa(sw.statusCode)).Inc()
		m.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	})
}

// labelEndpoint names the endpoint served by next for Middleware.
func labelEndpoint(name string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slot, ok := r.Context().Value(endpointKey{}).(*string); ok {
			*slot = name
		}
		next.ServeHTTP(w, r)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (sw *statusResponseWriter) WriteHeader(statusCode int) {
	if !sw.wroteHeader {
		sw.statusCode = statusCode
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(statusCode)
}
