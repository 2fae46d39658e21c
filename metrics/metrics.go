package metrics

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// CoreMetrics tracks engine health counters. Integrity violations
// indicate defects in the distribution or transfer engines, never
// caller mistakes, so they get their own counters for alerting.
type CoreMetrics struct {
	integrityViolations uint64
	shareSumDrifts      uint64
	tradesApproved      uint64
	distributions       uint64
}

var Core = &CoreMetrics{}

func (c *CoreMetrics) IntegrityViolation() { atomic.AddUint64(&c.integrityViolations, 1) }
func (c *CoreMetrics) ShareSumDrift()      { atomic.AddUint64(&c.shareSumDrifts, 1) }
func (c *CoreMetrics) TradeApproved()      { atomic.AddUint64(&c.tradesApproved, 1) }
func (c *CoreMetrics) Distribution()       { atomic.AddUint64(&c.distributions, 1) }

// EngineMetrics is the snapshot served over the metrics endpoint
// and shipped to statsd by the sidecar.
type EngineMetrics struct {
	IntegrityViolations uint64 `json:"integrity_violations"`
	ShareSumDrifts      uint64 `json:"share_sum_drifts"`
	TradesApproved      uint64 `json:"trades_approved"`
	Distributions       uint64 `json:"distributions"`
}

func GetEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		IntegrityViolations: atomic.LoadUint64(&Core.integrityViolations),
		ShareSumDrifts:      atomic.LoadUint64(&Core.shareSumDrifts),
		TradesApproved:      atomic.LoadUint64(&Core.tradesApproved),
		Distributions:       atomic.LoadUint64(&Core.distributions),
	}
}

// PerformanceMetrics includes the process health data required
// for alerts and analysis.
type PerformanceMetrics struct {
	MemoryUsageTotal   uint64  `json:"memory_usage_total"`
	MemoryUsagePercent float64 `json:"memory_usage_percent"`
	CPUUsagePercent    float64 `json:"cpu_usage_percent"`
	GoRoutines         int64   `json:"goroutines"`
}

// GetPerformanceMetrics returns performance related
// metrics for alerts and analysis.
func GetPerformanceMetrics() (*PerformanceMetrics, error) {
	// memory stats
	v, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}

	// cpu stats
	pct, err := cpu.Percent(time.Second, false)
	if err != nil {
		return nil, err
	}

	if len(pct) == 0 {
		return nil, fmt.Errorf("failed to retrieve cpu usage stats")
	}

	return &PerformanceMetrics{
		MemoryUsageTotal:   v.Used,
		MemoryUsagePercent: v.UsedPercent,
		CPUUsagePercent:    pct[0],
		GoRoutines:         int64(runtime.NumGoroutine()),
	}, nil
}
