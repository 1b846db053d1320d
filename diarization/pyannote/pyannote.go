package pyannote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/medbotlabs/medscribe/diarization"
	"github.com/medbotlabs/medscribe/httpclient"
	"github.com/medbotlabs/medscribe/provider"
)

const (
	// ProviderName is the registered name for the Pyannote provider.
	ProviderName = "pyannote"

	defaultPyannoteURL     = "http://localhost:8388"
	defaultPyannoteTimeout = 300 * time.Second
)

// Config holds configuration for the Pyannote diarization provider.
type Config struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	// AuthToken is the HuggingFace token forwarded to the sidecar so it can
	// fetch the gated pyannote pipeline. Without it the capability is off.
	AuthToken string        `json:"auth_token" yaml:"auth_token"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
	// TLS configures the transport when the sidecar sits behind HTTPS.
	TLS *httpclient.TLSConfig `json:"-" yaml:"tls"`
}

// Provider implements diarization.Provider using the Pyannote HTTP sidecar.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

// NewProvider creates a new Pyannote diarization provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPyannoteURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultPyannoteTimeout
	}
	// Diarization runs minutes per file; the circuit breaker keeps a dead
	// sidecar from tying up requests for the full timeout.
	clientCfg := httpclient.Config{
		BaseURL:        cfg.BaseURL,
		Timeout:        cfg.Timeout,
		TLS:            cfg.TLS,
		CircuitBreaker: httpclient.DefaultCircuitBreakerConfig(ProviderName),
	}
	if cfg.AuthToken != "" {
		clientCfg.Auth = httpclient.BearerAuth(cfg.AuthToken)
	}
	client, err := httpclient.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("pyannote client: %w", err)
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Factory returns a provider.Factory that creates Pyannote Provider
// instances from a generic config map.
func Factory() provider.Factory[diarization.Provider] {
	return func(cfg map[string]any) (diarization.Provider, error) {
		pc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			pc.BaseURL = v
		}
		if v, ok := cfg["auth_token"].(string); ok {
			pc.AuthToken = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			pc.Timeout = v
		}
		if v, ok := cfg["tls"].(*httpclient.TLSConfig); ok {
			pc.TLS = v
		}
		return NewProvider(pc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Pyannote sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
	return err == nil && resp.IsSuccess()
}

// Diarize sends audio to the Pyannote sidecar and returns speaker turns.
func (p *Provider) Diarize(ctx context.Context, req diarization.DiarizationRequest) (*diarization.DiarizationResponse, error) {
	audioData, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	fields := map[string]string{}
	if req.NumSpeakers > 0 {
		fields["num_speakers"] = fmt.Sprintf("%d", req.NumSpeakers)
	}
	if req.MinSpeakers > 0 {
		fields["min_speakers"] = fmt.Sprintf("%d", req.MinSpeakers)
	}
	if req.MaxSpeakers > 0 {
		fields["max_speakers"] = fmt.Sprintf("%d", req.MaxSpeakers)
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/diarize",
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files: []httpclient.FileField{
				{FieldName: "audio", FileName: "audio.wav", ContentType: "audio/wav", Data: audioData},
			},
		},
	})
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("diarization error (status %d): %s", resp.StatusCode, resp.Text())
		}
		return nil, fmt.Errorf("diarization request: %w", err)
	}

	var result pyannoteResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("decode diarization response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("diarization error: %s", result.Error)
	}

	return toDiarizationResponse(&result), nil
}

// --- internal Pyannote API types ---

type pyannoteResponse struct {
	Segments []pyannoteSegment `json:"segments"`
	Error    string            `json:"error,omitempty"`
}

type pyannoteSegment struct {
	SpeakerID string  `json:"speaker_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

func toDiarizationResponse(resp *pyannoteResponse) *diarization.DiarizationResponse {
	turns := make([]diarization.Turn, len(resp.Segments))
	for i, seg := range resp.Segments {
		turns[i] = diarization.Turn{
			Speaker: seg.SpeakerID,
			Start:   seg.StartTime,
			End:     seg.EndTime,
		}
	}
	return &diarization.DiarizationResponse{
		Turns: turns,
	}
}
