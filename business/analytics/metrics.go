package analytics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var ExpenditureQueryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "analytics_expenditure_query_seconds",
	Help:    "Time spent fetching and folding the expenditure aggregation.",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(ExpenditureQueryDuration)
}
