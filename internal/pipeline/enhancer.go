package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iconidentify/blogsmith/internal/metrics"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

var errEmptyCompletion = errors.New("empty completion")

// Enhancer elaborates a raw topic into a detailed generation prompt.
// Its failures are absorbed by default: the original prompt is returned.
type Enhancer struct {
	client llm.Completer
	model  string
	policy FailurePolicy
	logger *slog.Logger
}

// NewEnhancer creates an Enhancer that calls model through client.
func NewEnhancer(client llm.Completer, model string, opts ...StageOption) *Enhancer {
	o := buildOptions(Absorb, opts)
	return &Enhancer{
		client: client,
		model:  model,
		policy: o.policy,
		logger: o.logger,
	}
}

// Enhance returns the elaborated prompt, trimmed.
func (e *Enhancer) Enhance(ctx context.Context, prompt string) (string, error) {
	text, err := e.client.Complete(ctx, enhancerSystem, buildEnhancerPrompt(prompt), e.model)
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = errEmptyCompletion
		}
	}

	if err != nil {
		if e.policy == Propagate {
			return "", fmt.Errorf("enhance prompt: %w", err)
		}
		e.logger.Warn("prompt enhancement failed, using original prompt",
			"error", err,
			"category", llm.Category(err),
		)
		metrics.ObserveDegradation(StageEnhancing.String())
		return prompt, nil
	}

	return text, nil
}
