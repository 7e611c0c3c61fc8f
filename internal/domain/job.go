package domain

import (
	"time"
)

// JobID is a unique identifier for a job.
type JobID string

// String returns the string representation of the JobID.
func (id JobID) String() string {
	return string(id)
}

// JobStatus represents the current state of a job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// GenerationJob is a queued asynchronous blog generation.
type GenerationJob struct {
	ID         JobID     `json:"id"`
	Prompt     string    `json:"prompt"`
	AuthorID   UserID    `json:"author_id,omitempty"`
	Status     JobStatus `json:"status"`
	Stage      string    `json:"stage,omitempty"`
	Attempts   int       `json:"attempts"`
	MaxRetries int       `json:"max_retries"`
	LastError  string    `json:"last_error,omitempty"`
	BlogID     BlogID    `json:"blog_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewGenerationJob creates a queued job for prompt.
func NewGenerationJob(id JobID, prompt string, authorID UserID, maxRetries int) *GenerationJob {
	now := time.Now()
	return &GenerationJob{
		ID:         id,
		Prompt:     prompt,
		AuthorID:   authorID,
		Status:     JobStatusQueued,
		Attempts:   0,
		MaxRetries: maxRetries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CanRetry returns true if the job can be retried.
func (j *GenerationJob) CanRetry() bool {
	return j.Attempts < j.MaxRetries
}

// IsTerminal reports whether the job has finished, successfully or not.
func (j *GenerationJob) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// MarkProcessing updates the job status to processing.
func (j *GenerationJob) MarkProcessing() {
	j.Status = JobStatusProcessing
	j.UpdatedAt = time.Now()
}

// MarkStage records the pipeline stage the job is in.
func (j *GenerationJob) MarkStage(stage string) {
	j.Stage = stage
	j.UpdatedAt = time.Now()
}

// MarkCompleted updates the job status to completed with the stored blog.
func (j *GenerationJob) MarkCompleted(blogID BlogID) {
	j.Status = JobStatusCompleted
	j.BlogID = blogID
	j.LastError = ""
	j.UpdatedAt = time.Now()
}

// MarkFailed records a failed attempt. The job moves to retrying while
// attempts remain, otherwise to failed.
func (j *GenerationJob) MarkFailed(err string) {
	j.Attempts++
	j.LastError = err
	j.UpdatedAt = time.Now()

	if j.CanRetry() {
		j.Status = JobStatusRetrying
	} else {
		j.Status = JobStatusFailed
	}
}

// MarkFailedPermanently fails the job without further retries.
func (j *GenerationJob) MarkFailedPermanently(err string) {
	j.Attempts++
	j.LastError = err
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
}
