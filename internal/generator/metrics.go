package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render outcomes used as the "outcome" label.
const (
	outcomeOK          = "ok"
	outcomeFailed      = "failed"
	outcomeBadResponse = "bad_response"
	outcomeTimeout     = "timeout"
	outcomeStartError  = "start_error"
)

var (
	rendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thumbsmith",
			Subsystem: "renderer",
			Name:      "renders_total",
			Help:      "Renderer invocations by outcome.",
		},
		[]string{"outcome"},
	)

	renderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "thumbsmith",
			Subsystem: "renderer",
			Name:      "render_duration_seconds",
			Help:      "Wall time of renderer processes that started.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	rendersInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "thumbsmith",
			Subsystem: "renderer",
			Name:      "in_flight",
			Help:      "Renderer processes currently running.",
		},
	)
)
