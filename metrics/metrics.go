package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the console's collectors. A nil *Registry is valid and records nothing.
type Registry struct {
	reg *prometheus.Registry

	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
	HTTPLatency     *prometheus.HistogramVec
	Checkouts       *prometheus.CounterVec
	CartRejections  prometheus.Counter
	CacheLookups    *prometheus.CounterVec
	OpenDrafts      prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	backendRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_backend_requests_total",
		Help: "Calls made to the inventory API.",
	}, []string{"operation", "status"})
	backendLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "estoque_backend_request_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_http_requests_total",
	}, []string{"method", "route", "status"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "estoque_http_request_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_checkouts_total",
		Help: "Sale submissions by outcome.",
	}, []string{"outcome"})
	cartRejections := prometheus.NewCounter(prometheus.CounterOpts{Name: "estoque_cart_rejections_total"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_catalog_cache_lookups_total",
	}, []string{"result"})
	openDrafts := prometheus.NewGauge(prometheus.GaugeOpts{Name: "estoque_open_sale_drafts"})

	r.MustRegister(backendRequests, backendLatency, httpRequests, httpLatency, checkouts, cartRejections, cacheLookups, openDrafts)
	return &Registry{
		reg:             r,
		BackendRequests: backendRequests,
		BackendLatency:  backendLatency,
		HTTPRequests:    httpRequests,
		HTTPLatency:     httpLatency,
		Checkouts:       checkouts,
		CartRejections:  cartRejections,
		CacheLookups:    cacheLookups,
		OpenDrafts:      openDrafts,
	}
}

func (r *Registry) Handler() http.Handler {
	if r == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveBackend records one outbound call. status is 0 for transport failures.
func (r *Registry) ObserveBackend(operation string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.BackendRequests.WithLabelValues(operation, label).Inc()
	r.BackendLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Registry) Checkout(outcome string) {
	if r == nil {
		return
	}
	r.Checkouts.WithLabelValues(outcome).Inc()
}

func (r *Registry) CartRejected() {
	if r == nil {
		return
	}
	r.CartRejections.Inc()
}

func (r *Registry) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.CacheLookups.WithLabelValues(result).Inc()
}

func (r *Registry) SetOpenDrafts(n int) {
	if r == nil {
		return
	}
	r.OpenDrafts.Set(float64(n))
}
