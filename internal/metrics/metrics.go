package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"shootingrange/internal/events"
)

type Metrics struct {
	Sessions      prometheus.Gauge
	Spawned       prometheus.Counter
	Clicks        prometheus.Counter
	TargetsHit    prometheus.Counter
	ScoringClicks prometheus.Counter
	SessionScores prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Sessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "shootingrange_sessions",
			Help: "Mounted game sessions.",
		}),
		Spawned: f.NewCounter(prometheus.CounterOpts{
			Name: "shootingrange_targets_spawned_total",
			Help: "Targets spawned across all sessions.",
		}),
		Clicks: f.NewCounter(prometheus.CounterOpts{
			Name: "shootingrange_clicks_total",
			Help: "Clicks received, hits and misses.",
		}),
		TargetsHit: f.NewCounter(prometheus.CounterOpts{
			Name: "shootingrange_targets_hit_total",
			Help: "Targets removed by clicks.",
		}),
		ScoringClicks: f.NewCounter(prometheus.CounterOpts{
			Name: "shootingrange_scoring_clicks_total",
			Help: "Clicks that removed at least one target.",
		}),
		SessionScores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "shootingrange_session_score",
			Help:    "Score at unmount.",
			Buckets: prometheus.LinearBuckets(0, 50, 10),
		}),
	}
}

func (m *Metrics) Observe(ev events.Event) {
	switch ev.Kind {
	case events.KindMount:
		m.Sessions.Inc()
	case events.KindUnmount:
		m.Sessions.Dec()
		m.SessionScores.Observe(float64(ev.Score))
	case events.KindSpawn:
		m.Spawned.Inc()
	case events.KindClick:
		m.Clicks.Inc()
		if ev.Hits > 0 {
			m.TargetsHit.Add(float64(ev.Hits))
			m.ScoringClicks.Inc()
		}
	}
}

// Consume feeds events from bus into m until ctx is done.
func (m *Metrics) Consume(ctx context.Context, bus *events.Bus) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-bus.Events:
			m.Observe(ev)
		}
	}
}
