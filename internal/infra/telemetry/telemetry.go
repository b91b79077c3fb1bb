package telemetry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velora/storefront/internal/infra/config"
)

// Provider holds the service metrics.
type Provider struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	ordersPlaced    prometheus.Counter
}

// Attach registers the service metrics and returns a provider handle.
func Attach(_ context.Context, cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	return &Provider{
		requestCounter: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storefront",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ordersPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "orders_placed_total",
			Help:      "Total number of orders placed",
		}),
	}, nil
}

// ObserveRequest records one completed HTTP request.
func (p *Provider) ObserveRequest(method, path, status string, seconds float64) {
	if p == nil {
		return
	}
	p.requestCounter.WithLabelValues(method, path, status).Inc()
	p.requestDuration.WithLabelValues(method, path).Observe(seconds)
}

// OrderPlaced increments the checkout counter.
func (p *Provider) OrderPlaced() {
	if p == nil {
		return
	}
	p.ordersPlaced.Inc()
}

// Handler exposes the Prometheus scrape endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}
