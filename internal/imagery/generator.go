package imagery

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/iconidentify/blogsmith/internal/config"
	"github.com/iconidentify/blogsmith/internal/metrics"
	"github.com/iconidentify/blogsmith/internal/retry"
	"github.com/iconidentify/blogsmith/pkg/imagegen"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

// DefaultSize is used when a request names no size.
const DefaultSize = "1024x1024"

const resultRejected = "rejected"

// Provider generates a single image. *imagegen.Client implements it.
type Provider interface {
	Generate(ctx context.Context, prompt, size string) (*imagegen.Result, error)
}

// Image is one generated image.
type Image struct {
	URL string `json:"url"`
}

// Result is the outcome of GenerateImage. Failures are reported in Error
// rather than as a Go error.
type Result struct {
	Success bool    `json:"success"`
	Images  []Image `json:"images"`
	Error   string  `json:"error,omitempty"`
}

// Generator gates, composes and generates images.
type Generator struct {
	provider    Provider
	retry       retry.Config
	defaultSize string
	logger      *slog.Logger
}

// NewGenerator creates a Generator. Transient provider failures are retried
// up to cfg.MaxAttempts times with exponential backoff from cfg.RetryDelay.
func NewGenerator(provider Provider, cfg config.ImageConfig, logger *slog.Logger) *Generator {
	rc := retry.DefaultConfig()
	if cfg.MaxAttempts > 0 {
		rc.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.RetryDelay > 0 {
		rc.InitialDelay = cfg.RetryDelay
	}

	size := cfg.DefaultSize
	if size == "" {
		size = DefaultSize
	}

	return &Generator{
		provider:    provider,
		retry:       rc,
		defaultSize: size,
		logger:      logger,
	}
}

// GenerateImage runs the policy gate, composes the prompt for style and
// asks the provider for one image. It never returns an error.
func (g *Generator) GenerateImage(ctx context.Context, prompt string, style Style, size string) Result {
	intent := ClassifyIntent(prompt)
	if !intent.Allow {
		metrics.ObserveImage(resultRejected)
		return Result{Images: []Image{}, Error: intent.Reason}
	}

	if strings.TrimSpace(size) == "" {
		size = g.defaultSize
	}
	composed := ComposePrompt(prompt, style)

	start := time.Now()
	img, err := retry.DoIf(ctx, g.retry, func(ctx context.Context) (*imagegen.Result, error) {
		return g.provider.Generate(ctx, composed, size)
	}, llm.IsTransient)
	if err != nil {
		g.logger.Error("image generation failed",
			"error", err,
			"category", llm.Category(err),
			"style", string(style),
			"size", size,
		)
		metrics.ObserveImage(metrics.OutcomeFailure)
		return Result{Images: []Image{}, Error: llm.Describe(err)}
	}

	g.logger.Info("image generated",
		"style", string(style),
		"size", size,
		"duration", time.Since(start),
	)
	metrics.ObserveImage(metrics.OutcomeSuccess)

	return Result{
		Success: true,
		Images:  []Image{{URL: img.Link()}},
	}
}
