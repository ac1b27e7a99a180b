// Package monitoring collects prediction metrics and streams live prediction
// events to dashboard clients.
package monitoring

import (
	"runtime"
	"sync"
	"time"
)

// PredictionMetrics aggregates request outcomes for the metrics endpoint.
type PredictionMetrics struct {
	mu sync.RWMutex

	startTime time.Time

	requestCount    int64
	rejectionCount  int64
	internalErrors  int64
	labelCounts     map[string]int64
	totalLatency    time.Duration
	maxLatency      time.Duration
	lastPredictedAt time.Time
}

// NewPredictionMetrics creates an empty collector.
func NewPredictionMetrics() *PredictionMetrics {
	return &PredictionMetrics{
		startTime:   time.Now(),
		labelCounts: make(map[string]int64),
	}
}

// RecordPrediction counts a successful prediction.
func (m *PredictionMetrics) RecordPrediction(label string, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requestCount++
	m.labelCounts[label]++
	m.totalLatency += latency
	if latency > m.maxLatency {
		m.maxLatency = latency
	}
	m.lastPredictedAt = time.Now()
}

// RecordRejection counts a request rejected by input validation.
func (m *PredictionMetrics) RecordRejection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount++
	m.rejectionCount++
}

// RecordInternalError counts a pipeline invariant violation.
func (m *PredictionMetrics) RecordInternalError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount++
	m.internalErrors++
}

// Snapshot returns the current metrics plus runtime stats.
func (m *PredictionMetrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	labels := make(map[string]int64, len(m.labelCounts))
	for label, count := range m.labelCounts {
		labels[label] = count
	}

	predictions := m.requestCount - m.rejectionCount - m.internalErrors
	avgLatency := time.Duration(0)
	if predictions > 0 {
		avgLatency = m.totalLatency / time.Duration(predictions)
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return map[string]interface{}{
		"uptime":            time.Since(m.startTime).String(),
		"request_count":     m.requestCount,
		"prediction_count":  predictions,
		"rejection_count":   m.rejectionCount,
		"internal_errors":   m.internalErrors,
		"label_counts":      labels,
		"avg_latency_ms":    float64(avgLatency.Microseconds()) / 1000,
		"max_latency_ms":    float64(m.maxLatency.Microseconds()) / 1000,
		"last_predicted_at": m.lastPredictedAt,
		"goroutines":        runtime.NumGoroutine(),
		"heap_alloc":        mem.HeapAlloc,
		"gc_count":          mem.NumGC,
	}
}
