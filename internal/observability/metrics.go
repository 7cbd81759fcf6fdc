package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offers_requests_total",
			Help: "Total offer requests",
		}, []string{"code"},
	)
	Latency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "offers_request_duration_seconds",
		Help:    "Request latency seconds",
		Buckets: prometheus.DefBuckets,
	})
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "offers_in_flight",
		Help: "In-flight HTTP requests",
	})
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "offers_cache_hits_total",
		Help: "Offer cache hits",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "offers_cache_misses_total",
		Help: "Offer cache misses",
	})
	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offers_upstream_errors_total",
			Help: "Offer feed failures by kind",
		}, []string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, Latency, InFlight, CacheHits, CacheMisses, UpstreamErrors)
}

func MetricsHandler() http.Handler { return promhttp.Handler() }

type rec struct {
	http.ResponseWriter
	code int
}

func (r *rec) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func Measure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		InFlight.Inc()
		defer InFlight.Dec()

		rr := &rec{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rr, r)

		Latency.Observe(time.Since(start).Seconds())
		RequestsTotal.WithLabelValues(strconv.Itoa(rr.code)).Inc()
	})
}
