package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	LoadsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loads_created_total",
		Help: "Number of laundry loads recorded.",
	})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

func init() {
	prometheus.MustRegister(LoadsCreatedTotal, RequestDuration)
}
