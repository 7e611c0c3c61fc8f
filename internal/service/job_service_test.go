package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/repository"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

func setupJobService(t *testing.T, gen *fakeGenerator) (*JobService, *repository.InMemoryJobRepository) {
	t.Helper()
	jobs := repository.NewInMemoryJobRepository()
	blogs := setupBlogService(t, gen, nil)
	return NewJobService(jobs, blogs, 2, testLogger()), jobs
}

func TestJobService_Enqueue(t *testing.T) {
	svc, _ := setupJobService(t, &fakeGenerator{})
	ctx := context.Background()

	job, err := svc.Enqueue(ctx, "  Write a blog about composting ", "user-1")
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if job.Status != domain.JobStatusQueued {
		t.Errorf("Status = %q", job.Status)
	}
	if job.Prompt != "Write a blog about composting" {
		t.Errorf("Prompt = %q", job.Prompt)
	}
	if job.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d", job.MaxRetries)
	}

	got, err := svc.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != job.ID {
		t.Errorf("Get returned %q", got.ID)
	}

	stats, _ := svc.Stats(ctx)
	if stats.Queued != 1 {
		t.Errorf("Queued = %d", stats.Queued)
	}
}

func TestJobService_Process(t *testing.T) {
	svc, jobs := setupJobService(t, &fakeGenerator{})
	ctx := context.Background()

	if _, err := svc.Enqueue(ctx, "Write a blog about composting", "user-1"); err != nil {
		t.Fatal(err)
	}
	job, err := jobs.Dequeue(ctx)
	if err != nil {
		t.Fatal(err)
	}

	blogID, err := svc.Process(ctx, job)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if blogID == "" {
		t.Fatal("blog ID should not be empty")
	}

	blog, err := svc.blogs.Get(ctx, blogID)
	if err != nil {
		t.Fatalf("blog not stored: %v", err)
	}
	if blog.AuthorID != "user-1" {
		t.Errorf("AuthorID = %q", blog.AuthorID)
	}

	stored, _ := jobs.Get(ctx, job.ID)
	if stored.Stage != "done" {
		t.Errorf("Stage = %q, want done", stored.Stage)
	}
}

func TestJobService_ProcessFailure(t *testing.T) {
	cause := domain.NewGenerationError("drafting", &llm.ProviderError{StatusCode: 503})
	svc, jobs := setupJobService(t, &fakeGenerator{err: cause})
	ctx := context.Background()

	if _, err := svc.Enqueue(ctx, "Write a blog about composting", ""); err != nil {
		t.Fatal(err)
	}
	job, err := jobs.Dequeue(ctx)
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Process(ctx, job)
	if !errors.Is(err, cause) {
		t.Fatalf("expected generation error, got %v", err)
	}
	if job.Stage != "failed" {
		t.Errorf("Stage = %q, want failed", job.Stage)
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"upstream", domain.NewGenerationError("drafting", &llm.ProviderError{StatusCode: 502}), true},
		{"rate limited", domain.NewGenerationError("drafting", &llm.ProviderError{StatusCode: 429}), true},
		{"timeout", domain.NewGenerationError("drafting", &llm.TimeoutError{Op: "chat completion"}), true},
		{"auth", domain.NewGenerationError("drafting", &llm.ProviderError{StatusCode: 401}), false},
		{"config", domain.NewGenerationError("drafting", &llm.ConfigError{Field: "LLM API key"}), false},
		{"bad request", domain.NewGenerationError("drafting", &llm.ProviderError{StatusCode: 400}), false},
		{"empty content", domain.NewGenerationError("merging", domain.ErrEmptyContent), true},
		{"canceled", domain.NewGenerationError("drafting", context.Canceled), true},
		{"storage", errors.New("disk full"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable() = %v, want %v", got, tt.want)
			}
		})
	}
}
