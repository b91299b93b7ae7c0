package automation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the engine's Prometheus collectors.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	strategies *prometheus.CounterVec
	tiers      *prometheus.CounterVec
	session    prometheus.Gauge
}

// NewMetrics registers the engine collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// Labels: op, result (ok or a Kind)
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "desktop_mcp",
			Subsystem: "automation",
			Name:      "operations_total",
			Help:      "Automation operations by outcome",
		}, []string{"op", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "desktop_mcp",
			Subsystem: "automation",
			Name:      "operation_duration_seconds",
			Help:      "Automation operation latency in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"op"}),
		// Labels: action, strategy, outcome
		strategies: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "desktop_mcp",
			Subsystem: "interact",
			Name:      "strategy_attempts_total",
			Help:      "Interaction strategy attempts by outcome",
		}, []string{"action", "strategy", "outcome"}),
		tiers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "desktop_mcp",
			Subsystem: "resolve",
			Name:      "element_tier_matches_total",
			Help:      "Element resolutions by winning tier",
		}, []string{"tier"}),
		session: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "desktop_mcp",
			Subsystem: "automation",
			Name:      "session_active",
			Help:      "1 while an application session is current",
		}),
	}
}

func (m *Metrics) observeOp(op string, kind Kind, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if kind != "" {
		result = string(kind)
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) observeAttempt(action, strategy, outcome string) {
	if m == nil {
		return
	}
	m.strategies.WithLabelValues(action, strategy, outcome).Inc()
}

func (m *Metrics) observeTier(tier string) {
	if m == nil || tier == "" {
		return
	}
	m.tiers.WithLabelValues(tier).Inc()
}

func (m *Metrics) setSession(active bool) {
	if m == nil {
		return
	}
	if active {
		m.session.Set(1)
	} else {
		m.session.Set(0)
	}
}
