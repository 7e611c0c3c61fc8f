package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/iconidentify/blogsmith/internal/api/middleware"
	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/service"
	"github.com/iconidentify/blogsmith/internal/validator"
)

// JobHandler queues generations for the worker pool.
type JobHandler struct {
	svc      *service.JobService
	validate *validator.Validator
	logger   *slog.Logger
}

// NewJobHandler creates a new job handler.
func NewJobHandler(svc *service.JobService, validate *validator.Validator, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		svc:      svc,
		validate: validate,
		logger:   logger,
	}
}

// JobResponse wraps a generation job.
type JobResponse struct {
	Job *domain.GenerationJob `json:"job"`
}

// Enqueue handles POST /api/blogs/jobs
func (h *JobHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.ValidateGenerate(&req); err != nil {
		writeError(w, http.StatusBadRequest, validator.Message(err))
		return
	}

	authorID, _ := mw.UserIDFromContext(r.Context())
	job, err := h.svc.Enqueue(r.Context(), req.Prompt, authorID)
	if err != nil {
		h.logger.Error("enqueue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to queue generation")
		return
	}

	writeJSON(w, http.StatusAccepted, JobResponse{Job: job})
}

// Get handles GET /api/blogs/jobs/{jobID}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.svc.Get(r.Context(), domain.JobID(chi.URLParam(r, "jobID")))
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "Job not found")
			return
		}
		h.logger.Error("get job failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get job")
		return
	}

	writeJSON(w, http.StatusOK, JobResponse{Job: job})
}
