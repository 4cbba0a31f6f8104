package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service counters. Outcome labels: ok, provider_error,
// schema_violation, persistence_error, ledger_error.
type Metrics struct {
	GenerationsStarted  *prometheus.CounterVec
	GenerationsFinished *prometheus.CounterVec
	GenerationSeconds   *prometheus.HistogramVec
	CreditsCharged      prometheus.Counter
	LedgerReconcile     prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GenerationsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "edudraft_generations_started_total",
			Help: "Generation requests that passed the pre-checks and opened a stream.",
		}, []string{"kind"}),
		GenerationsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "edudraft_generations_finished_total",
			Help: "Generation requests by terminal outcome.",
		}, []string{"kind", "outcome"}),
		GenerationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edudraft_generation_duration_seconds",
			Help:    "Wall time from stream open to terminal event.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"kind"}),
		CreditsCharged: factory.NewCounter(prometheus.CounterOpts{
			Name: "edudraft_credits_charged_total",
			Help: "Credits successfully deducted for generations.",
		}),
		LedgerReconcile: factory.NewCounter(prometheus.CounterOpts{
			Name: "edudraft_ledger_reconcile_total",
			Help: "Artifacts persisted whose deduction failed; needs reconciliation.",
		}),
	}
}
