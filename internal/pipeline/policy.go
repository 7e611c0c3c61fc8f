package pipeline

import "log/slog"

// FailurePolicy decides what a stage does when its completion call fails.
type FailurePolicy int

const (
	// Absorb replaces the failed result with a fallback and reports no error.
	Absorb FailurePolicy = iota
	// Propagate returns the failure to the caller.
	Propagate
)

func (p FailurePolicy) String() string {
	switch p {
	case Absorb:
		return "absorb"
	case Propagate:
		return "propagate"
	default:
		return "unknown"
	}
}

type stageOptions struct {
	policy FailurePolicy
	logger *slog.Logger
}

// StageOption configures a pipeline stage.
type StageOption func(*stageOptions)

// WithFailurePolicy overrides the stage's default failure policy.
func WithFailurePolicy(p FailurePolicy) StageOption {
	return func(o *stageOptions) {
		o.policy = p
	}
}

// WithLogger sets the stage logger.
func WithLogger(logger *slog.Logger) StageOption {
	return func(o *stageOptions) {
		o.logger = logger
	}
}

func buildOptions(defaultPolicy FailurePolicy, opts []StageOption) stageOptions {
	o := stageOptions{policy: defaultPolicy, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
