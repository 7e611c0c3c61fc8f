package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/iconidentify/blogsmith/internal/config"
)

// GeminiClient implements Completer using the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	temperature float32
	maxTokens   int32
	timeout     time.Duration
}

// NewGeminiClient creates a Gemini-backed completer.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, &ConfigError{Field: "GEMINI_API_KEY"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.GeminiAPIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.GeminiURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
		timeout:     cfg.Timeout,
	}, nil
}

// Complete implements Completer.
func (c *GeminiClient) Complete(ctx context.Context, systemInstruction, userMessage, model string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: userMessage}},
		Role:  "user",
	}}

	temperature := c.temperature
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature: &temperature,
	}
	if c.maxTokens > 0 {
		genCfg.MaxOutputTokens = c.maxTokens
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, genCfg)
	if err != nil {
		if ctx.Err() != nil {
			return "", transportError(ctx, "gemini generate", err)
		}
		return "", geminiError(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &ProviderError{Message: "empty response from model"}
	}
	return text, nil
}

// geminiError keeps the HTTP status of a Gemini API failure so the error
// categorizes like one from the HTTP client.
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{StatusCode: apiErr.Code, Message: firstNonEmpty(apiErr.Message, apiErr.Status)}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &ProviderError{StatusCode: apiErrPtr.Code, Message: firstNonEmpty(apiErrPtr.Message, apiErrPtr.Status)}
	}
	return &ProviderError{Message: err.Error()}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
