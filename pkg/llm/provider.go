package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/iconidentify/blogsmith/internal/config"
)

// NewCompleter builds the completer selected by cfg.Provider. A provider
// whose credentials are missing still yields a completer; every call then
// fails with the *ConfigError so the service can start and report it.
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenRouter, "":
		return NewClient(cfg), nil
	case config.ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg)
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			return unavailable{err: err}, nil
		}
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}

type unavailable struct {
	err error
}

func (u unavailable) Complete(ctx context.Context, systemInstruction, userMessage, model string) (string, error) {
	return "", u.err
}
