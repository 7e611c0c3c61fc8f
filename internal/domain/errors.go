package domain

import "errors"

// Domain errors.
var (
	// ErrBlogNotFound is returned when a blog cannot be found.
	ErrBlogNotFound = errors.New("blog not found")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("user already exists with this email")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a bearer token cannot be verified.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrJobNotFound is returned when a job cannot be found.
	ErrJobNotFound = errors.New("job not found")

	// ErrNoJobs is returned when there are no jobs to process.
	ErrNoJobs = errors.New("no jobs available")

	// ErrEmptyContent is returned when a draft has no body to merge.
	ErrEmptyContent = errors.New("drafted content is empty")

	// ErrInvalidImageRole is returned for an unknown image attachment role.
	ErrInvalidImageRole = errors.New("image role must be hero or section")
)

// GenerationError wraps a pipeline failure with the stage it happened in.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return "blog generation failed: " + e.Stage + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(stage string, err error) *GenerationError {
	return &GenerationError{
		Stage: stage,
		Err:   err,
	}
}
