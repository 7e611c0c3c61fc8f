package repository

import (
	"context"

	"github.com/iconidentify/blogsmith/internal/domain"
)

// BlogRepository handles blog persistence.
type BlogRepository interface {
	// Create inserts a new blog.
	Create(ctx context.Context, blog *domain.Blog) error

	// Get retrieves a blog by ID.
	Get(ctx context.Context, id domain.BlogID) (*domain.Blog, error)

	// List returns a page of blogs, newest first, optionally filtered by status.
	List(ctx context.Context, filter domain.BlogFilter) ([]*domain.Blog, error)

	// Count returns the number of blogs matching the filter's status.
	Count(ctx context.Context, filter domain.BlogFilter) (int, error)

	// Update replaces a stored blog.
	Update(ctx context.Context, blog *domain.Blog) error

	// Delete removes a blog.
	Delete(ctx context.Context, id domain.BlogID) error
}

// UserRepository handles user persistence.
type UserRepository interface {
	// Create inserts a user. Returns domain.ErrEmailTaken for duplicate emails.
	Create(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID.
	Get(ctx context.Context, id domain.UserID) (*domain.User, error)

	// GetByEmail retrieves a user by normalized email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update replaces a stored user.
	Update(ctx context.Context, user *domain.User) error
}

// JobRepository manages the generation job queue.
type JobRepository interface {
	// Enqueue adds a job to the queue.
	Enqueue(ctx context.Context, job *domain.GenerationJob) error

	// Dequeue retrieves the next pending job (FIFO).
	Dequeue(ctx context.Context) (*domain.GenerationJob, error)

	// Update modifies job state.
	Update(ctx context.Context, job *domain.GenerationJob) error

	// Get retrieves a job by ID.
	Get(ctx context.Context, id domain.JobID) (*domain.GenerationJob, error)

	// ListPending returns all queued/retrying jobs.
	ListPending(ctx context.Context) ([]*domain.GenerationJob, error)

	// Stats returns queue statistics.
	Stats(ctx context.Context) (*QueueStats, error)
}

// QueueStats contains job queue statistics.
type QueueStats struct {
	Queued     int `json:"queued"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Retrying   int `json:"retrying"`
}
