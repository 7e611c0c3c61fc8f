// Package pipeline turns a short prompt into a complete SEO-annotated blog
// post by chaining three completion stages: enhancing the prompt, drafting
// the post and analyzing it for SEO.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/metrics"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

// Models names the models used by the stages.
type Models struct {
	Fast    string
	Quality string
}

// Orchestrator runs Enhancer, Drafter and Analyzer in sequence and merges
// their results. It holds no per-run state and is safe for concurrent use.
type Orchestrator struct {
	enhancer *Enhancer
	drafter  *Drafter
	analyzer *Analyzer
	logger   *slog.Logger
}

// NewOrchestrator creates an orchestrator from explicit stages.
func NewOrchestrator(enhancer *Enhancer, drafter *Drafter, analyzer *Analyzer, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		enhancer: enhancer,
		drafter:  drafter,
		analyzer: analyzer,
		logger:   logger,
	}
}

// New creates an orchestrator with the default stage policies. The enhancer
// and analyzer use the fast model, the drafter the quality model.
func New(client llm.Completer, models Models, logger *slog.Logger) *Orchestrator {
	return NewOrchestrator(
		NewEnhancer(client, models.Fast, WithLogger(logger)),
		NewDrafter(client, models.Quality, WithLogger(logger)),
		NewAnalyzer(client, models.Fast, WithLogger(logger)),
		logger,
	)
}

// GenerateCompleteBlog runs the whole pipeline for rawPrompt.
func (o *Orchestrator) GenerateCompleteBlog(ctx context.Context, rawPrompt string) (*domain.GenerationResult, error) {
	return o.Run(ctx, rawPrompt, nil)
}

// Run is GenerateCompleteBlog with stage changes reported to observer,
// which may be nil. Any failure is returned as a *domain.GenerationError.
func (o *Orchestrator) Run(ctx context.Context, rawPrompt string, observer Observer) (*domain.GenerationResult, error) {
	r := newRun(observer)
	logger := o.logger.With("prompt_length", len(rawPrompt))

	fail := func(stage Stage, err error) (*domain.GenerationResult, error) {
		var genErr *domain.GenerationError
		if !errors.As(err, &genErr) {
			genErr = domain.NewGenerationError(stage.String(), err)
		}
		_ = r.enter(StageFailed)
		metrics.ObserveGeneration(metrics.OutcomeFailure, stage.String())
		logger.Error("blog generation failed", "stage", stage, "error", err)
		return nil, genErr
	}

	if err := r.enter(StageEnhancing); err != nil {
		return nil, err
	}
	enhanced, err := o.enhancer.Enhance(ctx, rawPrompt)
	if err != nil {
		return fail(StageEnhancing, err)
	}

	if err := r.enter(StageDrafting); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return fail(StageDrafting, err)
	}
	draft, err := o.drafter.Draft(ctx, enhanced)
	if err != nil {
		return fail(StageDrafting, err)
	}

	if err := r.enter(StageAnalyzing); err != nil {
		return nil, err
	}
	seo, err := o.analyzer.Analyze(ctx, draft.Title, draft.Body)
	if err != nil {
		return fail(StageAnalyzing, err)
	}

	if err := r.enter(StageMerging); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return fail(StageMerging, err)
	}
	blog, err := Merge(draft, seo)
	if err != nil {
		return fail(StageMerging, err)
	}

	if err := r.enter(StageDone); err != nil {
		return nil, err
	}
	metrics.ObserveGeneration(metrics.OutcomeSuccess, StageDone.String())
	logger.Info("blog generated",
		"title", blog.Title,
		"word_count", blog.WordCount,
	)

	return &domain.GenerationResult{
		Blog:           blog,
		EnhancedPrompt: enhanced,
		Draft:          draft,
		SEO:            seo,
	}, nil
}

// Merge combines a draft with its analysis. Body, word count and summary
// come from the draft; title, meta description, keywords and hashtags come
// from the analysis when it has them.
func Merge(draft domain.DraftedContent, seo domain.SEOAnalysis) (domain.GeneratedBlog, error) {
	if draft.Body == "" {
		return domain.GeneratedBlog{}, domain.ErrEmptyContent
	}

	blog := domain.GeneratedBlog{
		Title:                   firstNonEmpty(seo.SEOTitle, draft.Title),
		Content:                 draft.Body,
		MetaDescription:         firstNonEmpty(seo.MetaDescription, draft.MetaDescription),
		Keywords:                firstNonEmptyList(seo.SecondaryKeywords, draft.Keywords),
		Hashtags:                firstNonEmptyList(seo.Hashtags, draft.Hashtags),
		WordCount:               draft.WordCount,
		Summary:                 draft.Summary,
		PrimaryKeyword:          seo.PrimaryKeyword,
		URLSlug:                 seo.URLSlug,
		InternalLinkSuggestions: seo.InternalLinkSuggestions,
		ContentGaps:             seo.ContentGaps,
	}
	return blog, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptyList(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return append([]string(nil), l...)
		}
	}
	return []string{}
}
