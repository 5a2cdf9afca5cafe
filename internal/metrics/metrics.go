package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeMatched labels lines a pattern rule explained.
	OutcomeMatched = "matched"
	// OutcomeUnknown labels lines that fell back to the unknown path.
	OutcomeUnknown = "unknown"
	// OutcomeCached labels lines served from the result cache.
	OutcomeCached = "cached"
)

var (
	linesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loglens",
			Name:      "lines_total",
			Help:      "Total number of log lines explained, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	severityTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loglens",
			Name:      "severity_total",
			Help:      "Total explanations by assigned severity level.",
		},
		[]string{"severity"},
	)

	explainDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "loglens",
			Name:      "explain_seconds",
			Help:      "Single-line explanation latency in seconds.",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	incidentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "loglens",
			Name:      "incidents_total",
			Help:      "Total number of incident correlations performed.",
		},
	)

	incidentDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "loglens",
			Name:      "incident_seconds",
			Help:      "Incident correlation latency in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)
)

// Register attaches loglens collectors to the supplied Prometheus
// registerer, tolerating duplicate registration.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		linesTotal,
		severityTotal,
		explainDurationSeconds,
		incidentsTotal,
		incidentDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveExplain records one explained line with its outcome and severity.
func ObserveExplain(duration time.Duration, outcome, severity string) {
	linesTotal.WithLabelValues(outcome).Inc()
	severityTotal.WithLabelValues(severity).Inc()
	if duration < 0 {
		duration = 0
	}
	explainDurationSeconds.Observe(duration.Seconds())
}

// ObserveCacheHit records a line served from the result cache.
func ObserveCacheHit() {
	linesTotal.WithLabelValues(OutcomeCached).Inc()
}

// ObserveIncident records one incident correlation.
func ObserveIncident(duration time.Duration) {
	incidentsTotal.Inc()
	if duration < 0 {
		duration = 0
	}
	incidentDurationSeconds.Observe(duration.Seconds())
}
