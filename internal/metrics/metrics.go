// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the counters and histograms mutated by the orchestrator.
type Metrics struct {
	CampaignRuns  *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	AssetEdits    *prometheus.CounterVec
}

// New registers the instruments on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CampaignRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adai_campaign_runs_total",
			Help: "Campaign runs by outcome.",
		}, []string{"outcome"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "adai_generation_stage_duration_seconds",
			Help:    "Wall time per generation stage.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"stage"}),
		AssetEdits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adai_asset_edits_total",
			Help: "Image edit operations by outcome.",
		}, []string{"outcome"}),
	}
}
