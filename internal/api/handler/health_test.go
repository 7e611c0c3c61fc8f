package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/iconidentify/blogsmith/internal/repository"
)

func TestHealthHandler_Live(t *testing.T) {
	handler := NewHealthHandler(nil, newMockJobRepository(), "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.Live(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q, want %q", contentType, "application/json")
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "OK" {
		t.Errorf("status = %q, want %q", resp.Status, "OK")
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", resp.Timestamp, err)
	}
}

func TestHealthHandler_Ready_Success(t *testing.T) {
	repo := newMockJobRepository()
	repo.stats = &repository.QueueStats{
		Queued:     5,
		Processing: 2,
		Completed:  100,
		Failed:     3,
	}
	handler := NewHealthHandler(stubPinger{}, repo, "")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	handler.Ready(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Queue == nil {
		t.Fatal("queue stats should not be nil")
	}
	if resp.Queue.Queued != 5 {
		t.Errorf("queued = %d, want %d", resp.Queue.Queued, 5)
	}
	if resp.Queue.Processing != 2 {
		t.Errorf("processing = %d, want %d", resp.Queue.Processing, 2)
	}
	if resp.Queue.Completed != 100 {
		t.Errorf("completed = %d, want %d", resp.Queue.Completed, 100)
	}
	if resp.Queue.Failed != 3 {
		t.Errorf("failed = %d, want %d", resp.Queue.Failed, 3)
	}
}

func TestHealthHandler_Ready_Errors(t *testing.T) {
	tests := []struct {
		name    string
		db      Pinger
		statErr error
		wantMsg string
	}{
		{"database down", stubPinger{err: errors.New("disk I/O error")}, nil, "database unavailable"},
		{"queue down", stubPinger{}, errors.New("boom"), "job queue unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockJobRepository()
			repo.statsErr = tt.statErr
			handler := NewHealthHandler(tt.db, repo, "")

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()

			handler.Ready(w, req)

			if w.Code != http.StatusServiceUnavailable {
				t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != "error" {
				t.Errorf("status = %q, want %q", resp.Status, "error")
			}
			if resp.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMsg)
			}
		})
	}
}

func TestHealthHandler_Stats(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "blogsmith.db")
	handler := NewHealthHandler(nil, newMockJobRepository(), dbPath)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()

	handler.Stats(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var stats SystemStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if stats.DatabasePath != dbPath {
		t.Errorf("database path = %q, want %q", stats.DatabasePath, dbPath)
	}
	if stats.NumCPU <= 0 {
		t.Error("num_cpu should be positive")
	}
	if stats.CPUPercent < 0 || stats.CPUPercent > 100 {
		t.Errorf("cpu_percent = %v, want within [0, 100]", stats.CPUPercent)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Minute, "5m"},
		{2*time.Hour + 3*time.Minute, "2h 3m"},
		{50*time.Hour + 10*time.Minute, "2d 2h 10m"},
	}

	for _, tt := range tests {
		if got := formatUptime(tt.d); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
