package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var initOnce sync.Once

// Init initializes all metrics and registers them with Prometheus
// This function is safe to call multiple times (uses sync.Once)
func Init() {
	initOnce.Do(func() {
		initOperationMetrics()
		registerOperationMetrics()

		// Present in the export before the first operation
		LastRunTimestamp.Set(0)
	})
}

// WriteTextfile writes every registered metric to path in the text
// exposition format read by node_exporter's textfile collector
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
