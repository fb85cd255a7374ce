package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	rvtoolsAssessor = "rvtools_assessor"

	parseTotal         = "parse_total"
	assessmentSeconds  = "assessment_duration_seconds"
	overrideEditsTotal = "override_edits_total"

	// Labels
	parseResultLabel  = "result"
	overrideKindLabel = "kind"
)

var parseTotalLabels = []string{
	parseResultLabel,
}

var overrideEditsLabels = []string{
	overrideKindLabel,
}

/**
* Metrics definition
**/
var parseTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: rvtoolsAssessor,
		Name:      parseTotal,
		Help:      "number of RVTools workbook parses by result",
	},
	parseTotalLabels,
)

var assessmentDurationMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: rvtoolsAssessor,
		Name:      assessmentSeconds,
		Help:      "end to end assessment duration in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	},
)

var overrideEditsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: rvtoolsAssessor,
		Name:      overrideEditsTotal,
		Help:      "number of override edits by kind",
	},
	overrideEditsLabels,
)

func IncreaseParseTotalMetric(result string) {
	labels := prometheus.Labels{
		parseResultLabel: result,
	}
	parseTotalMetric.With(labels).Inc()
}

func ObserveAssessmentDuration(d time.Duration) {
	assessmentDurationMetric.Observe(d.Seconds())
}

func IncreaseOverrideEditsMetric(kind string) {
	labels := prometheus.Labels{
		overrideKindLabel: kind,
	}
	overrideEditsTotalMetric.With(labels).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(parseTotalMetric)
	prometheus.MustRegister(assessmentDurationMetric)
	prometheus.MustRegister(overrideEditsTotalMetric)
}
