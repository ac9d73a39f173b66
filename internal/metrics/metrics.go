package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AnalysesTotal   *prometheus.CounterVec
	AnalysisSeconds prometheus.Histogram
	PairsComputed   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		AnalysesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "airdist_analyses_total",
			Help: "Total number of distance analyses, by outcome.",
		}, []string{"status"}),
		AnalysisSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "airdist_analysis_duration_seconds",
			Help:    "Duration of one full pairwise analysis.",
			Buckets: prometheus.DefBuckets,
		}),
		PairsComputed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "airdist_pairs_computed_total",
			Help: "Total number of place pairs with a computed distance.",
		}),
	}
}
