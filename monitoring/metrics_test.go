package monitoring

import (
	"testing"
	"time"
)

func TestPredictionMetricsSnapshot(t *testing.T) {
	m := NewPredictionMetrics()

	m.RecordPrediction("No Disorder", 2*time.Millisecond)
	m.RecordPrediction("Insomnia", 4*time.Millisecond)
	m.RecordRejection()
	m.RecordInternalError()

	snapshot := m.Snapshot()

	if snapshot["request_count"].(int64) != 4 {
		t.Fatalf("unexpected request count: %v", snapshot["request_count"])
	}
	if snapshot["prediction_count"].(int64) != 2 {
		t.Fatalf("unexpected prediction count: %v", snapshot["prediction_count"])
	}
	if snapshot["rejection_count"].(int64) != 1 {
		t.Fatalf("unexpected rejection count: %v", snapshot["rejection_count"])
	}

	labels := snapshot["label_counts"].(map[string]int64)
	if labels["No Disorder"] != 1 || labels["Insomnia"] != 1 {
		t.Fatalf("unexpected label counts: %v", labels)
	}

	if snapshot["max_latency_ms"].(float64) < snapshot["avg_latency_ms"].(float64) {
		t.Fatalf("max latency below average: %v", snapshot)
	}
}

func TestPredictionMetricsEmpty(t *testing.T) {
	snapshot := NewPredictionMetrics().Snapshot()
	if snapshot["request_count"].(int64) != 0 {
		t.Fatalf("expected empty collector, got %v", snapshot)
	}
	if snapshot["avg_latency_ms"].(float64) != 0 {
		t.Fatalf("expected zero latency, got %v", snapshot)
	}
}
