// Package metrics counts downloads and encoding fallbacks with Prometheus collectors.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dlhelper"

// Download results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Fallback reasons.
const (
	ReasonSecurity    = "security"
	ReasonUnsupported = "unsupported"
)

type Metrics struct {
	downloads *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	sizes     prometheus.Histogram
	pending   prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Downloads started, by result.",
		}, []string{"result"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encode_fallbacks_total",
			Help:      "Surface encodes retried as JPEG, by reason.",
		}, []string{"reason"}),
		sizes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "download_size_bytes",
			Help:      "Size of downloads backed by object references.",
			Buckets:   prometheus.ExponentialBuckets(1024, 10, 6),
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "object_references_pending",
			Help:      "Object references waiting to be released.",
		}),
	}
	for _, c := range []prometheus.Collector{m.downloads, m.fallbacks, m.sizes, m.pending} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Download(success bool) {
	if m == nil {
		return
	}
	result := ResultFailure
	if success {
		result = ResultSuccess
	}
	m.downloads.WithLabelValues(result).Inc()
}

func (m *Metrics) Fallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(reason).Inc()
}

func (m *Metrics) Size(bytes int) {
	if m == nil {
		return
	}
	m.sizes.Observe(float64(bytes))
}

func (m *Metrics) SetPending(n int64) {
	if m == nil {
		return
	}
	m.pending.Set(float64(n))
}
