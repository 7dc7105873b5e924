package api

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ServerMetrics собирает сведения о процессе для /status
type ServerMetrics struct {
	StartTime time.Time
	pid       int32
}

// ProcessSnapshot - состояние процесса на момент запроса
type ProcessSnapshot struct {
	Uptime     string  `json:"uptime"`
	CPUPercent float64 `json:"cpu_percent"`
	AllocMB    float64 `json:"alloc_mb"`
	HeapMB     float64 `json:"heap_mb"`
	SysMB      float64 `json:"sys_mb"`
	NumGC      uint32  `json:"num_gc"`
	Goroutines int     `json:"goroutines"`
}

// NewServerMetrics запоминает время запуска
func NewServerMetrics() *ServerMetrics {
	return &ServerMetrics{
		StartTime: time.Now(),
		pid:       int32(os.Getpid()),
	}
}

// Snapshot снимает показатели процесса. Ошибка CPU не мешает остальным полям.
func (sm *ServerMetrics) Snapshot() (ProcessSnapshot, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	snap := ProcessSnapshot{
		Uptime:     formatUptime(time.Since(sm.StartTime)),
		AllocMB:    toMB(m.Alloc),
		HeapMB:     toMB(m.HeapAlloc),
		SysMB:      toMB(m.Sys),
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}

	cpuPercent, err := sm.cpuUsage()
	snap.CPUPercent = cpuPercent
	return snap, err
}

// cpuUsage возвращает загрузку CPU процессом, а при ошибке - системную
func (sm *ServerMetrics) cpuUsage() (float64, error) {
	proc, err := process.NewProcess(sm.pid)
	if err == nil {
		if percent, err := proc.CPUPercent(); err == nil {
			return percent, nil
		}
	}

	percents, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		return 0, fmt.Errorf("cpu usage: %w", err)
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}
