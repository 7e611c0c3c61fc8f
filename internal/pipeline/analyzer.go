package pipeline

import (
	"context"
	"log/slog"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/metrics"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

// Analyzer produces SEO recommendations for a drafted post. Its failures
// are absorbed by default with an analysis derived from the title and
// content.
type Analyzer struct {
	client llm.Completer
	model  string
	policy FailurePolicy
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer that calls model through client.
func NewAnalyzer(client llm.Completer, model string, opts ...StageOption) *Analyzer {
	o := buildOptions(Absorb, opts)
	return &Analyzer{
		client: client,
		model:  model,
		policy: o.policy,
		logger: o.logger,
	}
}

// Analyze sends the title and a 500 character excerpt of content.
func (a *Analyzer) Analyze(ctx context.Context, title, content string) (domain.SEOAnalysis, error) {
	raw, err := a.client.Complete(ctx, analyzerSystem, buildAnalyzerPrompt(title, content), a.model)
	if err != nil {
		if a.policy == Propagate {
			return domain.SEOAnalysis{}, domain.NewGenerationError(StageAnalyzing.String(), err)
		}
		a.logger.Warn("seo analysis failed, using default analysis",
			"error", err,
			"category", llm.Category(err),
		)
		metrics.ObserveDegradation(StageAnalyzing.String())
		return DefaultSEOAnalysis(title, content), nil
	}

	res := ParseSEO(raw)
	if res.Status == PartiallyParsed {
		a.logger.Info("seo response partially parsed", "missing", res.Missing)
		metrics.ObserveParseFallbacks("seo", res.Missing)
	}

	return res.Value, nil
}
