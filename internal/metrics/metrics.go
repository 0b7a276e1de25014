package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"strconv"
	"time"
)

// Collector owns a registry so that several collectors can live in one
// process (tests create one per server).
type Collector struct {
	registry *prometheus.Registry

	OriginFetches       *prometheus.CounterVec
	OriginFetchDuration *prometheus.HistogramVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	DocumentsIndexed    *prometheus.CounterVec
}

func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		OriginFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "origin_fetches_total",
			Help:      "Requests made to the content origin",
		}, []string{"origin", "outcome"}),
		OriginFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "origin_fetch_duration_seconds",
			Help:      "Content origin request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"origin"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DocumentsIndexed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_documents_indexed_total",
			Help:      "Posts written to the search index",
		}, []string{"language"}),
	}
	c.registry.MustRegister(
		c.OriginFetches,
		c.OriginFetchDuration,
		c.HTTPRequests,
		c.HTTPDuration,
		c.DocumentsIndexed,
		collectors.NewGoCollector(),
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveFetch(origin string, outcome string, elapsed time.Duration) {
	c.OriginFetches.WithLabelValues(origin, outcome).Inc()
	c.OriginFetchDuration.WithLabelValues(origin).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveIndexed(language string) {
	c.DocumentsIndexed.WithLabelValues(language).Inc()
}
