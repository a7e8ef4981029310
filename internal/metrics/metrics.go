package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resione",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	submissions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "resione",
			Name:      "reservation_submissions_total",
			Help:      "Reservation requests accepted as pending.",
		},
	)

	decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resione",
			Name:      "reservation_decisions_total",
			Help:      "Administrator decisions by outcome.",
		},
		[]string{"decision"},
	)

	conflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resione",
			Name:      "reservation_conflicts_total",
			Help:      "Overlap rejections by workflow stage.",
		},
		[]string{"stage"},
	)

	cancellations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resione",
			Name:      "reservation_cancellations_total",
			Help:      "Cancellations by class (normal, late, refused).",
		},
		[]string{"class"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, submissions, decisions, conflicts, cancellations)
	})
}

func IncHTTP(method, path, status string) {
	httpRequests.WithLabelValues(method, path, status).Inc()
}

func IncSubmission() {
	submissions.Inc()
}

func IncDecision(decision string) {
	decisions.WithLabelValues(decision).Inc()
}

func IncConflict(stage string) {
	conflicts.WithLabelValues(stage).Inc()
}

func IncCancellation(class string) {
	cancellations.WithLabelValues(class).Inc()
}
