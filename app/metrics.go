package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

type MetricName string

const (
	MetricNameInstantiations MetricName = "instantiations"
	MetricNameExecutions     MetricName = "executions"
	MetricNameSubMessages    MetricName = "dispatched_submessages"
	MetricNameFailedTxs      MetricName = "failed_transactions"
	MetricNameQueries        MetricName = "queries"
)

func (m MetricName) String() string {
	return string(m)
}

const (
	NamespaceQVault = "qvault"
	SubsystemHost   = "host"
)

var metricHelp = map[MetricName]string{
	MetricNameInstantiations: "Number of contracts instantiated",
	MetricNameExecutions:     "Number of contract executions, including dispatched submessages",
	MetricNameSubMessages:    "Number of submessages dispatched on behalf of contracts",
	MetricNameFailedTxs:      "Number of transactions rolled back",
	MetricNameQueries:        "Number of smart queries served",
}

// Metrics holds the host counters on a registry of its own, so several hosts
// can live in one process. Counters are read in process through Counter; the
// host serves no /metrics endpoint.
type Metrics struct {
	registry *prometheus.Registry
	counters map[MetricName]prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		counters: make(map[MetricName]prometheus.Counter, len(metricHelp)),
	}
	for name, help := range metricHelp {
		counter := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: NamespaceQVault,
			Subsystem: SubsystemHost,
			Name:      name.String(),
			Help:      help,
		})
		m.registry.MustRegister(counter)
		m.counters[name] = counter
	}
	return m
}

func (m *Metrics) IncrCounter(name MetricName) {
	if counter, ok := m.counters[name]; ok {
		counter.Inc()
	}
}

// Counter returns the counter registered as name, or nil.
func (m *Metrics) Counter(name MetricName) prometheus.Counter {
	return m.counters[name]
}

