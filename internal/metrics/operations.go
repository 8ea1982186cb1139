package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"fileutils/pkg/fileutils"
)

// Operation metrics
var (
	// OperationsTotal counts top-level operations by name and mode (live, noop)
	OperationsTotal *prometheus.CounterVec

	// OperationErrorsTotal counts failed operations by name and error kind
	OperationErrorsTotal *prometheus.CounterVec

	// BytesCopiedTotal tracks bytes written by cp and copy_file
	BytesCopiedTotal prometheus.Counter

	// OperationDuration tracks how long operations take
	OperationDuration *prometheus.HistogramVec

	// LastRunTimestamp records the Unix time of the last operation
	LastRunTimestamp prometheus.Gauge
)

func initOperationMetrics() {
	OperationsTotal = NewCounterVec(
		"fileutils_operations_total",
		"Total filesystem operations run.",
		[]string{"op", "mode"},
	)

	OperationErrorsTotal = NewCounterVec(
		"fileutils_operation_errors_total",
		"Total failed filesystem operations.",
		[]string{"op", "kind"},
	)

	BytesCopiedTotal = NewBytesCounter(
		"fileutils_bytes_copied_total",
		"Total bytes copied.",
	)

	OperationDuration = NewDurationHistogramVec(
		"fileutils_operation_duration_seconds",
		"Duration of filesystem operations in seconds.",
		[]string{"op"},
	)

	LastRunTimestamp = NewGauge(
		"fileutils_last_run_timestamp",
		"Timestamp of the last operation (Unix epoch seconds).",
	)
}

func registerOperationMetrics() {
	prometheus.MustRegister(OperationsTotal)
	prometheus.MustRegister(OperationErrorsTotal)
	prometheus.MustRegister(BytesCopiedTotal)
	prometheus.MustRegister(OperationDuration)
	prometheus.MustRegister(LastRunTimestamp)
}

// Observer records fileutils events into the registered metrics.
// Init must have been called.
type Observer struct{}

func (Observer) Observe(ev fileutils.Event) error {
	mode := "live"
	if ev.Noop {
		mode = "noop"
	}
	OperationsTotal.WithLabelValues(ev.Op, mode).Inc()
	OperationDuration.WithLabelValues(ev.Op).Observe(ev.Duration.Seconds())
	if ev.Err != nil {
		OperationErrorsTotal.WithLabelValues(ev.Op, fileutils.Kind(ev.Err)).Inc()
	}
	if ev.Bytes > 0 {
		BytesCopiedTotal.Add(float64(ev.Bytes))
	}
	LastRunTimestamp.Set(float64(time.Now().Unix()))
	return nil
}
