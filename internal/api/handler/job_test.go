package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iconidentify/blogsmith/internal/domain"
)

func TestJobHandler(t *testing.T) {
	env := newTestEnv(t)
	h := NewJobHandler(env.jobs, env.validate, testLogger())

	r := chi.NewRouter()
	r.Post("/api/blogs/jobs", h.Enqueue)
	r.Get("/api/blogs/jobs/{jobID}", h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/blogs/jobs", map[string]string{
		"prompt": "Write about urban beekeeping",
	}))

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusAccepted, w.Body.String())
	}
	var created JobResponse
	decodeBody(t, w, &created)
	if created.Job.Status != domain.JobStatusQueued {
		t.Errorf("status = %q, want queued", created.Job.Status)
	}
	if created.Job.MaxRetries != 2 {
		t.Errorf("max retries = %d, want 2", created.Job.MaxRetries)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blogs/jobs/"+created.Job.ID.String(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", w.Code, http.StatusOK)
	}
	var fetched JobResponse
	decodeBody(t, w, &fetched)
	if fetched.Job.Prompt != "Write about urban beekeeping" {
		t.Errorf("prompt = %q", fetched.Job.Prompt)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blogs/jobs/job_missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing job status = %d, want %d", w.Code, http.StatusNotFound)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/blogs/jobs", map[string]string{"prompt": "short"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("short prompt status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
