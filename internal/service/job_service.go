package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/pipeline"
	"github.com/iconidentify/blogsmith/internal/repository"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

// JobService queues blog generations for the worker pool.
type JobService struct {
	jobs       repository.JobRepository
	blogs      *BlogService
	maxRetries int
	logger     *slog.Logger
}

// NewJobService creates a new job service.
func NewJobService(jobs repository.JobRepository, blogs *BlogService, maxRetries int, logger *slog.Logger) *JobService {
	return &JobService{
		jobs:       jobs,
		blogs:      blogs,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Enqueue queues a generation of prompt.
func (s *JobService) Enqueue(ctx context.Context, prompt string, authorID domain.UserID) (*domain.GenerationJob, error) {
	jobID := domain.JobID("job_" + uuid.New().String()[:8])
	job := domain.NewGenerationJob(jobID, strings.TrimSpace(prompt), authorID, s.maxRetries)

	if err := s.jobs.Enqueue(ctx, job); err != nil {
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	s.logger.Info("generation queued", "job_id", jobID)
	return job, nil
}

// Get retrieves a job by ID.
func (s *JobService) Get(ctx context.Context, id domain.JobID) (*domain.GenerationJob, error) {
	return s.jobs.Get(ctx, id)
}

// Stats returns queue statistics.
func (s *JobService) Stats(ctx context.Context) (*repository.QueueStats, error) {
	return s.jobs.Stats(ctx)
}

// Process runs the generation for job and returns the stored blog's ID.
// The job's stage is updated in the queue as the pipeline advances.
func (s *JobService) Process(ctx context.Context, job *domain.GenerationJob) (domain.BlogID, error) {
	observer := pipeline.ObserverFunc(func(stage pipeline.Stage) {
		job.MarkStage(stage.String())
		if err := s.jobs.Update(ctx, job); err != nil {
			s.logger.Warn("failed to record job stage", "job_id", job.ID, "error", err)
		}
	})

	res, err := s.blogs.GenerateObserved(ctx, job.Prompt, job.AuthorID, observer)
	if err != nil {
		return "", err
	}
	return res.Blog.ID, nil
}

// Retryable reports whether a failed generation is worth another attempt.
// Pipeline failures are retried only for transient provider errors;
// anything else (storage errors included) is retried.
func Retryable(err error) bool {
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		if errors.Is(err, domain.ErrEmptyContent) {
			return true
		}
		return llm.IsTransient(err) || llm.Category(err) == llm.CategoryUnknown
	}
	return true
}
