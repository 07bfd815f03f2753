// Package metrics holds the Prometheus collectors for quoting and the HTTP
// surface. A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors recorded by the engine and the API
type Metrics struct {
	QuotesTotal     *prometheus.CounterVec
	QuoteDuration   *prometheus.HistogramVec
	QuoteAmount     *prometheus.HistogramVec
	IneligibleTotal *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers and returns the collectors. A nil registerer uses the
// Prometheus default registry. Registering twice on the same registry reuses
// the existing collectors.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		QuotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Quote computations by operation and result (ok or error type).",
		}, []string{"operation", "result"}),
		QuoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_duration_ms",
			Help:      "Quote computation latency in milliseconds.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		}, []string{"operation"}),
		QuoteAmount: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_total_amount",
			Help:      "Distribution of quoted totals by currency and tier.",
			Buckets:   []float64{50, 100, 150, 250, 500, 1000, 2500, 5000},
		}, []string{"currency", "tier"}),
		IneligibleTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ineligible_selections_total",
			Help:      "Turnaround selections rejected as ineligible, by tier and reason.",
		}, []string{"tier", "reason"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"method", "route"}),
	}

	m.QuotesTotal = registerCounter(reg, m.QuotesTotal)
	m.QuoteDuration = registerHistogram(reg, m.QuoteDuration)
	m.QuoteAmount = registerHistogram(reg, m.QuoteAmount)
	m.IneligibleTotal = registerCounter(reg, m.IneligibleTotal)
	m.HTTPRequestsTotal = registerCounter(reg, m.HTTPRequestsTotal)
	m.HTTPRequestDuration = registerHistogram(reg, m.HTTPRequestDuration)
	return m
}

// ObserveQuote records one engine operation. result is "ok" or an error type.
func (m *Metrics) ObserveQuote(operation, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.QuotesTotal.WithLabelValues(operation, result).Inc()
	m.QuoteDuration.WithLabelValues(operation).Observe(DurationMillis(d))
}

// ObserveAmount records a quoted total.
func (m *Metrics) ObserveAmount(currency, tier string, total float64) {
	if m == nil {
		return
	}
	m.QuoteAmount.WithLabelValues(currency, tier).Observe(total)
}

// ObserveIneligible records a rejected turnaround selection.
func (m *Metrics) ObserveIneligible(tier, reason string) {
	if m == nil {
		return
	}
	m.IneligibleTotal.WithLabelValues(tier, reason).Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(DurationMillis(d))
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func registerCounter(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register counter: %w", err))
	}
	return c
}

func registerHistogram(reg prometheus.Registerer, h *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register histogram: %w", err))
	}
	return h
}
