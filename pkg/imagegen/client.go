// Package imagegen is a client for OpenAI-compatible image generation
// endpoints.
package imagegen

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
	"github.com/iconidentify/blogsmith/pkg/llm"
)

// Client generates images from text prompts.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	referer    string
	appTitle   string
	timeout    time.Duration
	httpClient *http.Client
}

// Result is a single generated image. Exactly one of URL and Base64 is set.
type Result struct {
	URL           string
	Base64        string
	RevisedPrompt string
}

// Link returns a URL usable in an <img> tag: the hosted URL, or a data URI
// for base64 payloads.
func (r *Result) Link() string {
	if r.URL != "" {
		return r.URL
	}
	if r.Base64 != "" {
		return "data:image/png;base64," + r.Base64
	}
	return ""
}

// NewClient creates an image generation client.
func NewClient(cfg config.ImageConfig) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		referer:    cfg.Referer,
		appTitle:   cfg.AppTitle,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size,omitempty"`
}

type generateResponse struct {
	Data []struct {
		URL           string `json:"url,omitempty"`
		B64JSON       string `json:"b64_json,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate requests one image for prompt at the given size ("1024x1024").
// Failures use the llm error taxonomy so callers classify them the same way
// as completion failures.
func (c *Client) Generate(ctx context.Context, prompt, size string) (*Result, error) {
	if c.apiKey == "" {
		return nil, &llm.ConfigError{Field: "image API key"}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		N:      1,
		Size:   size,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.appTitle != "" {
		req.Header.Set("X-Title", c.appTitle)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, requestError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, requestError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &llm.ProviderError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if genResp.Error != nil {
		return nil, &llm.ProviderError{StatusCode: resp.StatusCode, Message: genResp.Error.Message}
	}

	for _, d := range genResp.Data {
		if d.URL != "" || d.B64JSON != "" {
			return &Result{URL: d.URL, Base64: d.B64JSON, RevisedPrompt: d.RevisedPrompt}, nil
		}
	}
	return nil, &llm.ProviderError{StatusCode: resp.StatusCode, Message: "no image data in response"}
}

func requestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &llm.TimeoutError{Op: "image generation"}
	}
	if ctx.Err() != nil {
		return fmt.Errorf("image generation: %w", ctx.Err())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &llm.TimeoutError{Op: "image generation"}
	}
	return fmt.Errorf("image generation: send request: %w", err)
}

func errorMessage(body []byte) string {
	var payload struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != nil && payload.Error.Message != "" {
			return payload.Error.Message
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 300 {
		msg = msg[:300]
	}
	return msg
}
