package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ConfigError is returned when the client cannot make a call because required
// configuration (usually the API key) is missing.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Field)
}

// ProviderError is returned when the provider rejects a request.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return "provider error: " + e.Message
	}
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}

// TimeoutError is returned when a provider call exceeds its bounded wait.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return e.Op + ": request timed out"
}

// Error categories used by callers to map provider failures to user-facing
// responses.
const (
	CategoryConfig           = "config"
	CategoryAuth             = "auth"
	CategoryForbidden        = "forbidden"
	CategoryRateLimited      = "rate_limited"
	CategoryTimeout          = "timeout"
	CategoryUpstream         = "upstream"
	CategoryInvalidRequest   = "invalid_request"
	CategoryMethodNotAllowed = "method_not_allowed"
	CategoryUnknown          = "unknown"
)

// Category classifies err into one of the Category* constants.
func Category(err error) string {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return CategoryConfig
	}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return CategoryTimeout
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		return CategoryUnknown
	}

	switch code := provErr.StatusCode; {
	case code == http.StatusBadRequest:
		return CategoryInvalidRequest
	case code == http.StatusUnauthorized:
		return CategoryAuth
	case code == http.StatusForbidden:
		return CategoryForbidden
	case code == http.StatusMethodNotAllowed:
		return CategoryMethodNotAllowed
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return CategoryTimeout
	case code == http.StatusTooManyRequests:
		return CategoryRateLimited
	case code >= 500:
		return CategoryUpstream
	default:
		return CategoryUnknown
	}
}

// IsTransient reports whether err is worth retrying: timeouts, rate limits
// and upstream 5xx failures.
func IsTransient(err error) bool {
	switch Category(err) {
	case CategoryTimeout, CategoryRateLimited, CategoryUpstream:
		return true
	}
	return false
}

// Describe returns a human-readable message for a provider failure, in the
// wording surfaced to API users.
func Describe(err error) string {
	var provErr *ProviderError
	switch Category(err) {
	case CategoryConfig:
		return "AI provider API key is not configured"
	case CategoryAuth:
		return "Authentication failed - invalid provider API key"
	case CategoryForbidden:
		return "Access forbidden - check your provider account permissions"
	case CategoryRateLimited:
		return "Rate limit exceeded - too many requests to the provider"
	case CategoryTimeout:
		return "Request timeout - the provider took too long to respond"
	case CategoryUpstream:
		return "Provider service temporarily unavailable - please try again later"
	case CategoryInvalidRequest:
		errors.As(err, &provErr)
		return "Invalid request: " + provErr.Message
	case CategoryMethodNotAllowed:
		errors.As(err, &provErr)
		return "Method not allowed: " + provErr.Message
	}
	return err.Error()
}
