package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Command outcome labels.
const (
	OutcomeOK          = "ok"
	OutcomeRecoverable = "recoverable"
	OutcomeFatal       = "fatal"
)

// Metrics collects session-level counters. A nil *Metrics is valid and
// records nothing, so the shell can run unmetered.
type Metrics struct {
	LinesRead     prometheus.Counter
	CommandsTotal *prometheus.CounterVec
	TasksInFlight prometheus.Gauge
}

// New builds the metric set and registers it with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "conch",
			Name:      "lines_read_total",
			Help:      "Input lines consumed by the read loop.",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "conch",
			Name:      "commands_total",
			Help:      "Commands finalized, by outcome.",
		}, []string{"outcome"}),
		TasksInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "conch",
			Name:      "tasks_in_flight",
			Help:      "Scheduled command tasks not yet finalized.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.LinesRead, m.CommandsTotal, m.TasksInFlight)
	}
	return m
}

// ObserveLine records one consumed input line.
func (m *Metrics) ObserveLine() {
	if m == nil {
		return
	}
	m.LinesRead.Inc()
}

// ObserveScheduled records a task entering the scheduler.
func (m *Metrics) ObserveScheduled() {
	if m == nil {
		return
	}
	m.TasksInFlight.Inc()
}

// ObserveFinalized records a task leaving the scheduler with an outcome.
func (m *Metrics) ObserveFinalized(outcome string) {
	if m == nil {
		return
	}
	m.TasksInFlight.Dec()
	m.CommandsTotal.WithLabelValues(outcome).Inc()
}
