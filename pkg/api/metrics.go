package api

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

func newMetrics(variant string) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "speck_operations_total",
			Help:        "Block and identifier operations by result.",
			ConstLabels: prometheus.Labels{"variant": variant},
		}, []string{"op", "result"}),
	}
	m.registry.MustRegister(m.operations)
	return m
}

func (m *metrics) observe(op, result string) {
	m.operations.WithLabelValues(op, result).Inc()
}
