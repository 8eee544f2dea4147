package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	QuotesCreated   *prometheus.CounterVec
	QuotesActivated *prometheus.CounterVec
	QuotesDeleted   *prometheus.CounterVec
	PaymentsTotal   *prometheus.CounterVec
	RequestLatency  *prometheus.HistogramVec
	PremiumTotals   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		QuotesCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bima_quotes_created_total",
			Help: "Total number of quotes created, by product line",
		}, []string{"product"}),
		QuotesActivated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bima_quotes_activated_total",
			Help: "Total number of quotes activated into policies, by product line",
		}, []string{"product"}),
		QuotesDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bima_quotes_deleted_total",
			Help: "Total number of quotes deleted, by product line",
		}, []string{"product"}),
		PaymentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bima_payments_total",
			Help: "Simulated payment attempts, by method and outcome",
		}, []string{"method", "outcome"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bima_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		PremiumTotals: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bima_premium_total_payable",
			Help:    "Distribution of computed premium totals in the product's home currency",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		}, []string{"product"}),
	}
}
