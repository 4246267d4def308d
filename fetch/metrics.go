package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for a scrape run. All methods are
// nil-safe so instrumentation can be omitted in tests.
type Metrics struct {
	registry *prometheus.Registry

	fetchesTotal   *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	recordsTotal   *prometheus.CounterVec
	storageRetries prometheus.Counter
	itemsTotal     prometheus.Counter
}

// NewMetrics creates collectors on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		fetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricewatch_fetches_total",
			Help: "Page fetches by result.",
		}, []string{"result"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pricewatch_fetch_duration_seconds",
			Help:    "Page fetch latency, pacing delay excluded.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		recordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricewatch_records_total",
			Help: "Assembled records by outcome.",
		}, []string{"outcome"}),
		storageRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricewatch_storage_retries_total",
			Help: "Storage operations retried after transient failures.",
		}),
		itemsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricewatch_items_total",
			Help: "Work items accepted for processing.",
		}),
	}

	registry.MustRegister(m.fetchesTotal, m.fetchDuration, m.recordsTotal, m.storageRetries, m.itemsTotal)
	return m
}

// Registry exposes the private registry for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveFetch records one completed fetch attempt.
func (m *Metrics) ObserveFetch(seconds float64, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = errorTypeLabel(err)
	}
	m.fetchesTotal.WithLabelValues(result).Inc()
	m.fetchDuration.Observe(seconds)
}

// CountRecord records one assembled record by outcome.
func (m *Metrics) CountRecord(outcome string) {
	if m == nil {
		return
	}
	m.recordsTotal.WithLabelValues(outcome).Inc()
}

// CountStorageRetry records one retried storage operation.
func (m *Metrics) CountStorageRetry() {
	if m == nil {
		return
	}
	m.storageRetries.Inc()
}

// CountItems records work items accepted for processing.
func (m *Metrics) CountItems(n int) {
	if m == nil {
		return
	}
	m.itemsTotal.Add(float64(n))
}
