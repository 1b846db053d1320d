// Package doai implements llm.Provider against the DigitalOcean serverless
// inference API (OpenAI-compatible chat completions).
package doai

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/medbotlabs/medscribe/errors"
	"github.com/medbotlabs/medscribe/httpclient"
	"github.com/medbotlabs/medscribe/llm"
	"github.com/medbotlabs/medscribe/provider"
)

const (
	// ProviderName is the registered name for the DigitalOcean provider.
	ProviderName = "doai"

	defaultBaseURL = "https://inference.do-ai.run"
	defaultModel   = "openai-gpt-oss-20b"
	defaultTimeout = 30 * time.Second
)

// Config holds configuration for the DigitalOcean inference provider.
type Config struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	// APIKey is the DO_AI_API_KEY bearer credential. Without it the
	// provider reports unavailable and every call fails fast.
	APIKey  string        `json:"api_key" yaml:"api_key"`
	Model   string        `json:"model" yaml:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// TLS overrides transport settings, e.g. a corporate proxy CA.
	TLS *httpclient.TLSConfig `json:"-" yaml:"tls"`
}

// Provider implements llm.Provider using the DigitalOcean inference API.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

// NewProvider creates a new DigitalOcean inference provider. Transient
// upstream failures are retried with backoff.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	// Retry smooths transient inference failures; the rate limiter keeps a
	// burst of note requests under the metered API's quota, and the circuit
	// breaker sheds load when the backend is hard down.
	client, err := httpclient.New(httpclient.Config{
		BaseURL:        cfg.BaseURL,
		Timeout:        cfg.Timeout,
		Auth:           httpclient.BearerAuth(cfg.APIKey),
		TLS:            cfg.TLS,
		Retry:          httpclient.DefaultRetryConfig(),
		CircuitBreaker: httpclient.DefaultCircuitBreakerConfig(ProviderName),
		RateLimiter:    httpclient.DefaultRateLimiterConfig(ProviderName),
	})
	if err != nil {
		return nil, fmt.Errorf("inference client: %w", err)
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Factory returns a provider.Factory that creates DigitalOcean Provider
// instances from a generic config map.
func Factory() provider.Factory[llm.Provider] {
	return func(cfg map[string]any) (llm.Provider, error) {
		pc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			pc.BaseURL = v
		}
		if v, ok := cfg["api_key"].(string); ok {
			pc.APIKey = v
		}
		if v, ok := cfg["model"].(string); ok {
			pc.Model = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			pc.Timeout = v
		}
		return NewProvider(pc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// Model returns the model requests default to.
func (p *Provider) Model() string { return p.cfg.Model }

// IsAvailable reports whether the provider is usable. The inference API has
// no unauthenticated health endpoint, so availability means a credential is
// configured.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.cfg.APIKey != ""
}

// Complete sends a chat completion request and returns the response.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if p.cfg.APIKey == "" {
		return nil, errors.MissingCredential("DO_AI_API_KEY")
	}

	model := req.Model
	if model == "" {
		model = p.cfg.Model
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/v1/chat/completions",
		Body: chatRequest{
			Model:       model,
			Messages:    req.Messages,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		},
	})
	if err != nil {
		return nil, errors.Upstream("inference", upstreamStatus(err), err)
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, errors.Upstream("inference", 0, fmt.Errorf("decode response: %w", err))
	}

	content := ""
	if len(result.Choices) > 0 {
		content = result.Choices[0].Message.Content
	}

	return &llm.CompletionResponse{
		Content: content,
		Model:   model,
		Usage: llm.Usage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		},
	}, nil
}

// upstreamStatus extracts the HTTP status from a transport error, or 0 for
// connection-level failures.
func upstreamStatus(err error) int {
	var herr *httpclient.Error
	if stderrors.As(err, &herr) {
		return herr.StatusCode
	}
	return 0
}

// --- wire types (OpenAI-compatible) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
