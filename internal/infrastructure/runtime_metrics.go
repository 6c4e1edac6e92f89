package infrastructure

import (
	"context"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics samples Go runtime figures for the detailed health check
type RuntimeMetrics struct {
	startTime time.Time

	goroutines metric.Int64Gauge
	heapAlloc  metric.Int64Gauge
	heapSys    metric.Int64Gauge
	uptime     metric.Float64Gauge
}

// NewRuntimeMetrics registers the runtime gauges on meter
func NewRuntimeMetrics(meter metric.Meter, startTime time.Time) (*RuntimeMetrics, error) {
	goroutines, err := meter.Int64Gauge(
		"system_goroutines",
		metric.WithDescription("Number of active goroutines"),
	)
	if err != nil {
		return nil, err
	}

	heapAlloc, err := meter.Int64Gauge(
		"system_memory_usage_bytes",
		metric.WithDescription("Heap bytes in use"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	heapSys, err := meter.Int64Gauge(
		"system_memory_system_bytes",
		metric.WithDescription("Memory obtained from the OS in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	uptime, err := meter.Float64Gauge(
		"system_process_uptime_seconds",
		metric.WithDescription("Process uptime in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RuntimeMetrics{
		startTime:  startTime,
		goroutines: goroutines,
		heapAlloc:  heapAlloc,
		heapSys:    heapSys,
		uptime:     uptime,
	}, nil
}

// RuntimeStats is one runtime sample
type RuntimeStats struct {
	Goroutines int
	HeapAlloc  uint64
	HeapSys    uint64
	GCCount    uint32
	CPUCount   int
	Uptime     time.Duration
	Timestamp  time.Time
}

// Collect samples the runtime and records the gauges
func (rm *RuntimeMetrics) Collect(ctx context.Context) *RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := &RuntimeStats{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  mem.HeapAlloc,
		HeapSys:    mem.HeapSys,
		GCCount:    mem.NumGC,
		CPUCount:   runtime.NumCPU(),
		Uptime:     time.Since(rm.startTime),
		Timestamp:  time.Now(),
	}

	rm.goroutines.Record(ctx, int64(stats.Goroutines))
	rm.heapAlloc.Record(ctx, int64(stats.HeapAlloc))
	rm.heapSys.Record(ctx, int64(stats.HeapSys))
	rm.uptime.Record(ctx, stats.Uptime.Seconds())

	return stats
}

// Format renders the sample for JSON health output
func (s *RuntimeStats) Format() map[string]interface{} {
	return map[string]interface{}{
		"goroutines":     s.Goroutines,
		"heap_alloc":     humanize.Bytes(s.HeapAlloc),
		"heap_sys":       humanize.Bytes(s.HeapSys),
		"gc_count":       s.GCCount,
		"cpu_count":      s.CPUCount,
		"uptime_seconds": int64(s.Uptime.Seconds()),
		"timestamp":      s.Timestamp.Format(time.RFC3339),
	}
}
