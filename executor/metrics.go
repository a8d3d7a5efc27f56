package executor

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments LEDGER applications: a handful of prometheus
// collectors registered once under a namespace, exposed as plain
// struct fields rather than a package-global registry.
type Metrics struct {
	txsAccepted  prometheus.Counter
	txsRejected  *prometheus.CounterVec
	applyLatency prometheus.Histogram
}

// NewMetrics registers m's collectors under namespace and returns it.
func NewMetrics(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		txsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_accepted",
			Help:      "Number of transactions accepted by ApplyLEDGER",
		}),
		txsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_rejected",
			Help:      "Number of transactions rejected by ApplyLEDGER, by rule",
		}, []string{"rule"}),
		applyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "apply_ledger_seconds",
			Help:      "Time spent evaluating a single ApplyLEDGER call",
		}),
	}
	for _, c := range []prometheus.Collector{m.txsAccepted, m.txsRejected, m.applyLatency} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeAccepted() {
	if m == nil {
		return
	}
	m.txsAccepted.Inc()
}

func (m *Metrics) observeRejected(rule string) {
	if m == nil {
		return
	}
	m.txsRejected.WithLabelValues(rule).Inc()
}

func (m *Metrics) observeLatency(seconds float64) {
	if m == nil {
		return
	}
	m.applyLatency.Observe(seconds)
}
