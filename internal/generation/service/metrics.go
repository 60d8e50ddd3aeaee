package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks model call counters for the orchestrator.
type Metrics struct {
	ModelCalls   int64
	ModelErrors  int64
	ModelLatency int64 // Total latency in nanoseconds
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		ModelCalls:   atomic.LoadInt64(&globalMetrics.ModelCalls),
		ModelErrors:  atomic.LoadInt64(&globalMetrics.ModelErrors),
		ModelLatency: atomic.LoadInt64(&globalMetrics.ModelLatency),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.ModelCalls, 0)
	atomic.StoreInt64(&globalMetrics.ModelErrors, 0)
	atomic.StoreInt64(&globalMetrics.ModelLatency, 0)
}

func recordModelCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.ModelCalls, 1)
	atomic.AddInt64(&globalMetrics.ModelLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.ModelErrors, 1)
	}
}
