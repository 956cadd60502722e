package session

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"lifepanel/pkg/life"
)

// Metrics are the Prometheus collectors updated by a Controller. A nil
// *Metrics records nothing.
type Metrics struct {
	Generations  prometheus.Counter
	Population   prometheus.Gauge
	Running      prometheus.Gauge
	StepDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lifepanel",
			Name:      "generations_total",
			Help:      "Number of generations stepped.",
		}),
		Population: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lifepanel",
			Name:      "population",
			Help:      "Live cells in the current generation.",
		}),
		Running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lifepanel",
			Name:      "running",
			Help:      "1 while the board is running, 0 while paused.",
		}),
		StepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lifepanel",
			Name:      "step_duration_seconds",
			Help:      "Time spent computing one generation.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Generations, m.Population, m.Running, m.StepDuration)
	}
	return m
}

func (m *Metrics) observeStep(g *life.Grid, d time.Duration) {
	if m == nil {
		return
	}
	m.Generations.Inc()
	m.StepDuration.Observe(d.Seconds())
	m.Population.Set(float64(g.Population()))
}

func (m *Metrics) observeGrid(g *life.Grid) {
	if m == nil || g == nil {
		return
	}
	m.Population.Set(float64(g.Population()))
}

func (m *Metrics) setRunning(running bool) {
	if m == nil {
		return
	}
	if running {
		m.Running.Set(1)
		return
	}
	m.Running.Set(0)
}
