// Package metrics exposes scenario outcomes as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/mockautomation/storefront-e2e/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Scenarios collects per-scenario counters and durations on its own registry
type Scenarios struct {
	Registry *prometheus.Registry
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewScenarios registers the scenario metrics on a fresh registry
func NewScenarios() *Scenarios {
	m := &Scenarios{
		Registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront_e2e",
			Name:      "scenarios_total",
			Help:      "Scenario executions by outcome.",
		}, []string{"scenario", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storefront_e2e",
			Name:      "scenario_duration_seconds",
			Help:      "Wall time of scenario executions, setup hook included.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}, []string{"scenario"}),
	}
	m.Registry.MustRegister(m.total, m.duration)
	return m
}

// Observe records one finished scenario
func (m *Scenarios) Observe(result *models.Result) {
	m.total.WithLabelValues(result.ScenarioID, string(result.Status)).Inc()
	if result.Status != models.ResultSkipped {
		m.duration.WithLabelValues(result.ScenarioID).Observe(result.Duration.Seconds())
	}
}

// WriteTextfile writes the current values in the node exporter textfile format
func (m *Scenarios) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
