package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Supported completion providers.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Gemini models used when the configured models are OpenRouter names.
const (
	DefaultGeminiFastModel    = "gemini-2.0-flash"
	DefaultGeminiQualityModel = "gemini-2.5-pro"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Image    ImageConfig    `yaml:"image"`
	Auth     AuthConfig     `yaml:"auth"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string        `yaml:"host" envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port           int           `yaml:"port" envconfig:"PORT" default:"5000"`
	ReadTimeout    time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"SERVER_REQUEST_TIMEOUT" default:"4m"`
	CORSOrigins    []string      `yaml:"cors_origins" envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:5174"`
}

// DatabaseConfig holds SQLite storage configuration.
type DatabaseConfig struct {
	Path string `yaml:"path" envconfig:"DATABASE_PATH" default:"data/blogsmith.db"`
}

// LLMConfig holds completion provider configuration.
type LLMConfig struct {
	Provider     string        `yaml:"provider" envconfig:"LLM_PROVIDER" default:"openrouter"`
	APIKey       string        `yaml:"api_key" envconfig:"OPENROUTER_API_KEY"`
	GeminiAPIKey string        `yaml:"gemini_api_key" envconfig:"GEMINI_API_KEY"`
	GeminiURL    string        `yaml:"gemini_base_url" envconfig:"GEMINI_BASE_URL"`
	BaseURL      string        `yaml:"base_url" envconfig:"LLM_BASE_URL" default:"https://openrouter.ai/api/v1"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"LLM_TIMEOUT" default:"60s"`
	FastModel    string        `yaml:"fast_model" envconfig:"LLM_FAST_MODEL" default:"anthropic/claude-3-haiku:beta"`
	QualityModel string        `yaml:"quality_model" envconfig:"LLM_QUALITY_MODEL" default:"anthropic/claude-3.5-sonnet:beta"`
	Temperature  float64       `yaml:"temperature" envconfig:"LLM_TEMPERATURE" default:"0.7"`
	MaxTokens    int           `yaml:"max_tokens" envconfig:"LLM_MAX_TOKENS" default:"4000"`
	Referer      string        `yaml:"referer" envconfig:"FRONTEND_URL" default:"http://localhost:5173"`
	AppTitle     string        `yaml:"app_title" envconfig:"LLM_APP_TITLE" default:"AI Blog Generator"`
}

// ImageConfig holds image provider configuration.
type ImageConfig struct {
	APIKey      string        `yaml:"api_key" envconfig:"IMAGE_API_KEY"`
	BaseURL     string        `yaml:"base_url" envconfig:"IMAGE_BASE_URL" default:"https://openrouter.ai/api/v1"`
	Model       string        `yaml:"model" envconfig:"IMAGE_MODEL" default:"stabilityai/stable-diffusion-xl"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"IMAGE_TIMEOUT" default:"60s"`
	DefaultSize string        `yaml:"default_size" envconfig:"IMAGE_DEFAULT_SIZE" default:"1024x1024"`
	MaxAttempts int           `yaml:"max_attempts" envconfig:"IMAGE_MAX_ATTEMPTS" default:"2"`
	RetryDelay  time.Duration `yaml:"retry_delay" envconfig:"IMAGE_RETRY_DELAY" default:"2s"`
	Referer     string        `yaml:"referer" envconfig:"HTTP_REFERER" default:"http://localhost:5173"`
	AppTitle    string        `yaml:"app_title" envconfig:"X_TITLE" default:"AI Blog Generator"`
}

// AuthConfig holds token issuance configuration.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" envconfig:"JWT_TTL" default:"168h"`
}

// WorkerConfig holds background generation worker configuration.
type WorkerConfig struct {
	Count        int           `yaml:"count" envconfig:"WORKER_COUNT" default:"2"`
	PollInterval time.Duration `yaml:"poll_interval" envconfig:"WORKER_POLL_INTERVAL" default:"2s"`
	MaxRetries   int           `yaml:"max_retries" envconfig:"WORKER_MAX_RETRIES" default:"2"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from file, .env and environment variables.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// .env never overrides variables already set in the process environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if cfg.Image.APIKey == "" {
		cfg.Image.APIKey = cfg.LLM.APIKey
	}
	cfg.LLM.applyProviderDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
// Provider credentials are checked at call time so the service can start
// and report a configuration error per request.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	switch c.LLM.Provider {
	case ProviderOpenRouter, ProviderGemini:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenRouter, ProviderGemini, c.LLM.Provider)
	}
	return nil
}

// applyProviderDefaults swaps OpenRouter-style model names ("vendor/model")
// for Gemini ones when Gemini is selected.
func (c *LLMConfig) applyProviderDefaults() {
	if c.Provider != ProviderGemini {
		return
	}
	if strings.Contains(c.FastModel, "/") {
		c.FastModel = DefaultGeminiFastModel
	}
	if strings.Contains(c.QualityModel, "/") {
		c.QualityModel = DefaultGeminiQualityModel
	}
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel maps the configured level name to a slog.Level.
func (c *LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
