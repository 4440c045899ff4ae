// Package metrics exposes prometheus counters for the reporting runtime.
// Recording never fails a test; the counters only observe what the
// finalizer and writer did.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const MetricsNamespace = "allure"

var (
	resultsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "results_written_total",
		Help:      "Count of test results persisted, by terminal status",
	}, []string{
		"status",
	})

	containersWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "containers_written_total",
		Help:      "Count of linking containers persisted",
	})

	attachmentsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "attachments_written_total",
		Help:      "Count of attachment payloads persisted",
	})

	writeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "write_errors_total",
		Help:      "Count of swallowed artifact write failures, by artifact kind",
	}, []string{
		"artifact",
	})

	stepsForceClosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "steps_force_closed_total",
		Help:      "Count of dangling steps force-closed by the finalizer",
	})
)

// RecordResult counts one persisted test result.
func RecordResult(status string) {
	resultsWritten.WithLabelValues(status).Inc()
}

// RecordContainer counts one persisted container.
func RecordContainer() {
	containersWritten.Inc()
}

// RecordAttachment counts one persisted attachment payload.
func RecordAttachment() {
	attachmentsWritten.Inc()
}

// RecordWriteError counts one swallowed write failure for the given
// artifact kind (result, container, attachment, environment, categories).
func RecordWriteError(artifact string) {
	writeErrors.WithLabelValues(artifact).Inc()
}

// RecordForceClosedSteps counts steps the finalizer had to close.
func RecordForceClosedSteps(n int) {
	stepsForceClosed.Add(float64(n))
}
