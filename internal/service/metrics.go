package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Transition outcomes recorded on claim_transitions_total.
const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)

// Metrics holds the domain counters. A nil *Metrics records nothing.
type Metrics struct {
	transitions *prometheus.CounterVec
}

// NewMetrics registers the claim counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "claim_transitions_total",
				Help: "Claim workflow actions by outcome.",
			},
			[]string{"action", "result"},
		),
	}
	if err := reg.Register(m.transitions); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(action, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, result).Inc()
}
