//go:build linux || darwin

package handler

import (
	"sync"
	"syscall"
	"time"
)

// cpu tracks process CPU time between Stats calls.
var cpu struct {
	mu       sync.Mutex
	lastCPU  time.Duration
	lastWall time.Time
}

func getDiskStats(path string) diskStats {
	var statfs syscall.Statfs_t
	if err := syscall.Statfs(path, &statfs); err != nil {
		return diskStats{}
	}
	d := diskStats{
		total: int64(statfs.Blocks) * int64(statfs.Bsize),
		free:  int64(statfs.Bavail) * int64(statfs.Bsize),
	}
	if d.total > 0 {
		d.usedPct = float64(d.total-d.free) / float64(d.total) * 100
	}
	return d
}

// getCPUUsage returns the single-core CPU percentage used since the last
// call, capped at 100. The first call returns 0.
func getCPUUsage() float64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}

	used := time.Duration(rusage.Utime.Nano()) + time.Duration(rusage.Stime.Nano())
	now := time.Now()

	cpu.mu.Lock()
	defer cpu.mu.Unlock()

	prevCPU, prevWall := cpu.lastCPU, cpu.lastWall
	cpu.lastCPU, cpu.lastWall = used, now
	if prevWall.IsZero() {
		return 0
	}

	wall := now.Sub(prevWall)
	if wall <= 0 {
		return 0
	}
	pct := float64(used-prevCPU) / float64(wall) * 100
	return min(max(pct, 0), 100)
}
