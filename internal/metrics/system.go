// Package metrics provides a point-in-time system resource snapshot for
// the admin panel.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemMetrics represents current system resource usage.
type SystemMetrics struct {
	CPU     CPUMetrics    `json:"cpu"`
	Memory  MemoryMetrics `json:"memory"`
	Disk    DiskMetrics   `json:"disk"`
	LoadAvg []float64     `json:"load_avg"` // 1, 5, 15 min
	Uptime  int64         `json:"uptime"`   // seconds
}

// CPUMetrics represents CPU usage information.
type CPUMetrics struct {
	UsagePercent float64 `json:"usage_percent"`
	Cores        int     `json:"cores"`
}

// MemoryMetrics represents memory usage information.
type MemoryMetrics struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Available   uint64  `json:"available"`
	UsedPercent float64 `json:"used_percent"`
}

// DiskMetrics represents root filesystem usage.
type DiskMetrics struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Available   uint64  `json:"available"`
	UsedPercent float64 `json:"used_percent"`
}

// GetSystemMetrics collects current system metrics, gathering the slow
// probes in parallel.
func GetSystemMetrics(ctx context.Context) (*SystemMetrics, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	metrics := &SystemMetrics{}
	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		if ctx.Err() != nil {
			return
		}
		cpuPercent, err := cpu.Percent(200*time.Millisecond, false)
		if err == nil && len(cpuPercent) > 0 {
			mu.Lock()
			metrics.CPU.UsagePercent = cpuPercent[0]
			mu.Unlock()
		}
		if cores, err := cpu.Counts(true); err == nil {
			mu.Lock()
			metrics.CPU.Cores = cores
			mu.Unlock()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if ctx.Err() != nil {
			return
		}
		if vmem, err := mem.VirtualMemory(); err == nil {
			mu.Lock()
			metrics.Memory = MemoryMetrics{
				Total:       vmem.Total,
				Used:        vmem.Used,
				Available:   vmem.Available,
				UsedPercent: vmem.UsedPercent,
			}
			mu.Unlock()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if ctx.Err() != nil {
			return
		}
		if usage, err := disk.Usage("/"); err == nil {
			mu.Lock()
			metrics.Disk = DiskMetrics{
				Total:       usage.Total,
				Used:        usage.Used,
				Available:   usage.Free,
				UsedPercent: usage.UsedPercent,
			}
			mu.Unlock()
		}
		if uptime, err := host.Uptime(); err == nil {
			mu.Lock()
			metrics.Uptime = int64(uptime)
			mu.Unlock()
		}
		if avg, err := load.Avg(); err == nil {
			mu.Lock()
			metrics.LoadAvg = []float64{avg.Load1, avg.Load5, avg.Load15}
			mu.Unlock()
		}
	}()

	wg.Wait()
	return metrics, ctx.Err()
}
