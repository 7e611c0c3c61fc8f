package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/iconidentify/blogsmith/internal/config"
)

// Completer produces text completions. Implementations hold only read-only
// configuration and are safe for concurrent use.
type Completer interface {
	// Complete sends a system instruction and a user message to model and
	// returns the generated text.
	Complete(ctx context.Context, systemInstruction, userMessage, model string) (string, error)
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HTTPClient implements Completer against an OpenAI-compatible chat
// completions endpoint (OpenRouter by default).
type HTTPClient struct {
	apiKey      string
	baseURL     string
	referer     string
	appTitle    string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	httpClient  *http.Client
}

// NewClient creates a new chat completions client.
func NewClient(cfg config.LLMConfig) *HTTPClient {
	return &HTTPClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		referer:     cfg.Referer,
		appTitle:    cfg.AppTitle,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		httpClient:  &http.Client{},
	}
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// chatResponse is the response from the chat completions API.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code,omitempty"`
	} `json:"error,omitempty"`
}

// Complete implements Completer.
func (c *HTTPClient) Complete(ctx context.Context, systemInstruction, userMessage, model string) (string, error) {
	return c.Invoke(ctx, model, []Message{
		{Role: "system", Content: systemInstruction},
		{Role: "user", Content: userMessage},
	})
}

// Invoke sends messages to model and returns the content of the first choice.
func (c *HTTPClient) Invoke(ctx context.Context, model string, messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", &ConfigError{Field: "LLM API key"}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.appTitle != "" {
		httpReq.Header.Set("X-Title", c.appTitle)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", transportError(ctx, "chat completion", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(ctx, "chat completion", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{StatusCode: resp.StatusCode, Message: providerMessage(respBody)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if chatResp.Error != nil {
		return "", &ProviderError{StatusCode: resp.StatusCode, Message: chatResp.Error.Message}
	}

	if len(chatResp.Choices) == 0 {
		return "", &ProviderError{StatusCode: resp.StatusCode, Message: "no choices in completion response"}
	}

	return chatResp.Choices[0].Message.Content, nil
}

// transportError converts a failed round trip into a TimeoutError when the
// bounded wait expired, or returns the context error when the caller gave up.
func transportError(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Op: op}
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Op: op}
	}
	return fmt.Errorf("%s: send request: %w", op, err)
}

// providerMessage extracts a human-readable message from an error body.
func providerMessage(body []byte) string {
	var payload struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != nil && payload.Error.Message != "":
			return payload.Error.Message
		case payload.Message != "":
			return payload.Message
		case payload.Detail != "":
			return payload.Detail
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 300 {
		msg = msg[:300]
	}
	return msg
}
