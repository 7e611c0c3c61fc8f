package pipeline

import (
	"context"
	"log/slog"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/metrics"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

// Drafter writes the blog post and parses it into DraftedContent.
// Its failures propagate by default.
type Drafter struct {
	client llm.Completer
	model  string
	policy FailurePolicy
	logger *slog.Logger
}

// NewDrafter creates a Drafter that calls model through client.
func NewDrafter(client llm.Completer, model string, opts ...StageOption) *Drafter {
	o := buildOptions(Propagate, opts)
	return &Drafter{
		client: client,
		model:  model,
		policy: o.policy,
		logger: o.logger,
	}
}

// Draft generates and parses a blog post for the enhanced prompt.
func (d *Drafter) Draft(ctx context.Context, enhancedPrompt string) (domain.DraftedContent, error) {
	raw, err := d.client.Complete(ctx, drafterSystem, buildDrafterPrompt(enhancedPrompt), d.model)
	if err != nil {
		if d.policy == Propagate {
			return domain.DraftedContent{}, domain.NewGenerationError(StageDrafting.String(), err)
		}
		d.logger.Warn("drafting failed, continuing with empty draft", "error", err)
		metrics.ObserveDegradation(StageDrafting.String())
		var empty domain.DraftedContent
		FillDraftFallbacks(&empty)
		return empty, nil
	}

	res := ParseDraft(raw)
	if res.Status == PartiallyParsed {
		d.logger.Info("draft response partially parsed", "missing", res.Missing)
		metrics.ObserveParseFallbacks("draft", res.Missing)
	}

	return res.Value, nil
}
