package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports protocol counters and latencies under the
// "get402" namespace.
type PrometheusRecorder struct {
	events    *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the collectors on the default registry.
func NewPrometheusRecorder() Recorder {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "get402",
			Name:      "events_total",
			Help:      "protocol event counters",
		},
		[]string{"type", "operation"},
	)

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "get402",
			Name:      "latency_seconds",
			Help:      "API call latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	prometheus.MustRegister(events, histogram)

	return &PrometheusRecorder{
		events:    events,
		histogram: histogram,
	}
}

func (p *PrometheusRecorder) IncCounter(name string, labels map[string]string) {
	p.events.With(prometheus.Labels{
		"type":      name,
		"operation": labels["operation"],
	}).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(name string, d time.Duration, labels map[string]string) {
	p.histogram.With(prometheus.Labels{
		"operation": name,
	}).Observe(d.Seconds())
}
