package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var scaleUpTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "resource_manager_scale_up_total",
		Help: "Total number of successful in-place memory scale-ups.",
	},
	[]string{"namespace", "pod"},
)

var scaleDownTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "resource_manager_scale_down_total",
		Help: "Total number of successful in-place memory scale-downs.",
	},
	[]string{"namespace", "pod"},
)

var skippedFetchErrorTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "resource_manager_skipped_fetch_error_total",
		Help: "Total number of containers skipped in a tick because no usage sample was available.",
	},
	[]string{"namespace", "pod"},
)

var skippedMutateErrorTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "resource_manager_skipped_mutate_error_total",
		Help: "Total number of resizes that failed to apply and were left for the next tick.",
	},
	[]string{"namespace", "pod"},
)

var podsSeen = promauto.With(prometheus.DefaultRegisterer).NewGauge(
	prometheus.GaugeOpts{
		Name: "resource_manager_pods_seen",
		Help: "Number of pods matching the label selector in the last tick.",
	},
)

var tickDurationSeconds = promauto.With(prometheus.DefaultRegisterer).NewHistogram(
	prometheus.HistogramOpts{
		Name:    "resource_manager_tick_duration_seconds",
		Help:    "Duration of one full control loop tick.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	},
)

// RecordScaleUp increments the scale-up counter after a successful resize.
func RecordScaleUp(namespace, pod string) {
	scaleUpTotal.WithLabelValues(namespace, pod).Inc()
}

// RecordScaleDown increments the scale-down counter after a successful resize.
func RecordScaleDown(namespace, pod string) {
	scaleDownTotal.WithLabelValues(namespace, pod).Inc()
}

// RecordSkippedFetchError increments the counter when a container is skipped
// for a tick because its usage sample was missing.
func RecordSkippedFetchError(namespace, pod string) {
	skippedFetchErrorTotal.WithLabelValues(namespace, pod).Inc()
}

// RecordSkippedMutateError increments the counter when a resize patch fails
// and the container is left for the next tick.
func RecordSkippedMutateError(namespace, pod string) {
	skippedMutateErrorTotal.WithLabelValues(namespace, pod).Inc()
}

// SetPodsSeen records how many pods the last tick operated on.
func SetPodsSeen(count int) {
	podsSeen.Set(float64(count))
}

// ObserveTickDuration records the wall time of one tick.
func ObserveTickDuration(d time.Duration) {
	tickDurationSeconds.Observe(d.Seconds())
}
