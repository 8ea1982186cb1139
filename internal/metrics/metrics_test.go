package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"fileutils/pkg/fileutils"
)

// value reads the current value of a counter or gauge
func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if out.Counter != nil {
		return out.Counter.GetValue()
	}
	return out.Gauge.GetValue()
}

// TestMetricsInit verifies that Init() is idempotent and registers metrics
func TestMetricsInit(t *testing.T) {
	Init()
	Init()
	Init()

	if OperationsTotal == nil {
		t.Error("OperationsTotal should be initialized")
	}
	if OperationErrorsTotal == nil {
		t.Error("OperationErrorsTotal should be initialized")
	}
	if BytesCopiedTotal == nil {
		t.Error("BytesCopiedTotal should be initialized")
	}
	if OperationDuration == nil {
		t.Error("OperationDuration should be initialized")
	}
	if LastRunTimestamp == nil {
		t.Error("LastRunTimestamp should be initialized")
	}

	// Touch the vectors so they appear in the gather output
	OperationsTotal.WithLabelValues("probe", "live")
	OperationErrorsTotal.WithLabelValues("probe", "other")
	OperationDuration.WithLabelValues("probe")

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	expectedMetrics := []string{
		"fileutils_operations_total",
		"fileutils_operation_errors_total",
		"fileutils_bytes_copied_total",
		"fileutils_operation_duration_seconds",
		"fileutils_last_run_timestamp",
	}

	foundMetrics := make(map[string]bool)
	for _, mf := range mfs {
		foundMetrics[mf.GetName()] = true
	}

	for _, expected := range expectedMetrics {
		if !foundMetrics[expected] {
			t.Errorf("Expected metric %s not found in registry", expected)
		}
	}
}

// TestObserver verifies events are translated into metric updates
func TestObserver(t *testing.T) {
	Init()
	obs := Observer{}

	liveBefore := value(t, OperationsTotal.WithLabelValues("cp", "live"))
	noopBefore := value(t, OperationsTotal.WithLabelValues("rm_rf", "noop"))
	errBefore := value(t, OperationErrorsTotal.WithLabelValues("remove_file", "not_found"))
	bytesBefore := value(t, BytesCopiedTotal)

	events := []fileutils.Event{
		{Op: "cp", Bytes: 2048, Duration: 5 * time.Millisecond},
		{Op: "rm_rf", Noop: true},
		{Op: "remove_file", Err: &fileutils.PathError{Op: "rm", Path: "/x", Err: fileutils.ErrNotFound}},
	}
	for _, ev := range events {
		if err := obs.Observe(ev); err != nil {
			t.Fatalf("Observe failed: %v", err)
		}
	}

	if got := value(t, OperationsTotal.WithLabelValues("cp", "live")) - liveBefore; got != 1 {
		t.Errorf("Expected 1 live cp, got %v", got)
	}
	if got := value(t, OperationsTotal.WithLabelValues("rm_rf", "noop")) - noopBefore; got != 1 {
		t.Errorf("Expected 1 noop rm_rf, got %v", got)
	}
	if got := value(t, OperationErrorsTotal.WithLabelValues("remove_file", "not_found")) - errBefore; got != 1 {
		t.Errorf("Expected 1 not_found error, got %v", got)
	}
	if got := value(t, BytesCopiedTotal) - bytesBefore; got != 2048 {
		t.Errorf("Expected 2048 bytes copied, got %v", got)
	}
	if value(t, LastRunTimestamp) == 0 {
		t.Error("LastRunTimestamp should be set")
	}
}

// TestWriteTextfile verifies the textfile export
func TestWriteTextfile(t *testing.T) {
	Init()
	if err := (Observer{}).Observe(fileutils.Event{Op: "mkdir_p"}); err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "fileutils.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	if !strings.Contains(string(data), `fileutils_operations_total{mode="live",op="mkdir_p"}`) {
		t.Errorf("Expected mkdir_p counter in textfile, got:\n%s", data)
	}
}

// TestStandardBuckets verifies the duration bucket definition
func TestStandardBuckets(t *testing.T) {
	expected := []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 300}
	if len(DurationBuckets) != len(expected) {
		t.Fatalf("Expected %d duration buckets, got %d", len(expected), len(DurationBuckets))
	}
	for i, v := range expected {
		if DurationBuckets[i] != v {
			t.Errorf("Duration bucket[%d]: expected %v, got %v", i, v, DurationBuckets[i])
		}
	}
}
