package handler

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
	"time"

	"github.com/iconidentify/blogsmith/internal/repository"
)

var startTime = time.Now()

// Pinger checks that a dependency is reachable. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db      Pinger
	jobRepo repository.JobRepository
	dbPath  string
}

// NewHealthHandler creates a new health handler. dbPath is the SQLite file
// whose volume is reported by Stats.
func NewHealthHandler(db Pinger, jobRepo repository.JobRepository, dbPath string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		jobRepo: jobRepo,
		dbPath:  dbPath,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Timestamp string                 `json:"timestamp"`
	Queue     *repository.QueueStats `json:"queue,omitempty"`
}

// Live handles GET /health - liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Message:   "Server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready - readiness probe. It fails when the database
// or the job queue cannot be reached.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	notReady := func(msg string) {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "error",
			Message:   msg,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			notReady("database unavailable")
			return
		}
	}

	stats, err := h.jobRepo.Stats(ctx)
	if err != nil {
		notReady("job queue unavailable")
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Queue:     stats,
	})
}

// SystemStats contains process and storage statistics.
type SystemStats struct {
	Uptime         int64   `json:"uptime_seconds"`
	UptimeHuman    string  `json:"uptime_human"`
	MemAllocMB     int64   `json:"mem_alloc_mb"`
	MemSysMB       int64   `json:"mem_sys_mb"`
	NumGoroutines  int     `json:"num_goroutines"`
	NumCPU         int     `json:"num_cpu"`
	CPUPercent     float64 `json:"cpu_percent"`
	DiskFreeBytes  int64   `json:"disk_free_bytes"`
	DiskTotalBytes int64   `json:"disk_total_bytes"`
	DiskUsedPct    float64 `json:"disk_used_pct"`
	DatabasePath   string  `json:"database_path"`
}

// Stats handles GET /api/stats.
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(startTime)
	stats := SystemStats{
		Uptime:        int64(uptime.Seconds()),
		UptimeHuman:   formatUptime(uptime),
		MemAllocMB:    int64(m.Alloc / 1024 / 1024),
		MemSysMB:      int64(m.Sys / 1024 / 1024),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		CPUPercent:    getCPUUsage(),
		DatabasePath:  h.dbPath,
	}

	if h.dbPath != "" {
		disk := getDiskStats(filepath.Dir(h.dbPath))
		stats.DiskTotalBytes = disk.total
		stats.DiskFreeBytes = disk.free
		stats.DiskUsedPct = disk.usedPct
	}

	writeJSON(w, http.StatusOK, stats)
}

// diskStats is the usage of the volume holding a path.
type diskStats struct {
	total   int64
	free    int64
	usedPct float64
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
