package config

import (
	"fmt"
	"os"
	"time"

	"github.com/medbotlabs/medscribe/logger"
	"github.com/medbotlabs/medscribe/security"
	"github.com/medbotlabs/medscribe/server"
	"github.com/medbotlabs/medscribe/validation"
)

// Config is the full service configuration.
type Config struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	TempDir     string        `yaml:"temp_dir" mapstructure:"temp_dir"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Server      server.Config `yaml:"server" mapstructure:"server"`
	Whisper     WhisperConfig `yaml:"whisper" mapstructure:"whisper"`
	Diarization DiarizeConfig `yaml:"diarization" mapstructure:"diarization"`
	LLM         LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Telemetry   Telemetry     `yaml:"telemetry" mapstructure:"telemetry"`
	FFmpegPath  string        `yaml:"ffmpeg_path" mapstructure:"ffmpeg_path"`
}

// WhisperConfig configures the Whisper ASR sidecar.
type WhisperConfig struct {
	BaseURL        string              `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	Model          string              `yaml:"model" mapstructure:"model"`
	TimeoutSeconds int                 `yaml:"timeout_seconds" mapstructure:"timeout_seconds" validate:"gte=0"`
	TLS            *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// DiarizeConfig configures the Pyannote diarization sidecar. Diarization is
// an optional capability: without a HuggingFace token the endpoint answers
// 503 instead of running the pipeline.
type DiarizeConfig struct {
	BaseURL        string              `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	AuthToken      string              `yaml:"auth_token" mapstructure:"auth_token"`
	TimeoutSeconds int                 `yaml:"timeout_seconds" mapstructure:"timeout_seconds" validate:"gte=0"`
	TLS            *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// LLMConfig configures the inference backend for clinical notes.
type LLMConfig struct {
	BaseURL        string              `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	APIKey         string              `yaml:"api_key" mapstructure:"api_key"`
	Model          string              `yaml:"model" mapstructure:"model"`
	TimeoutSeconds int                 `yaml:"timeout_seconds" mapstructure:"timeout_seconds" validate:"gte=0"`
	TLS            *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// Telemetry configures the optional OTLP exporters. Empty endpoint leaves
// telemetry disabled.
type Telemetry struct {
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills unset fields. Credentials fall back to the flat env
// names the original deployment used.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "medscribe"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "base"
	}
	if c.Diarization.AuthToken == "" {
		c.Diarization.AuthToken = os.Getenv("HUGGINGFACE_TOKEN")
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("DO_AI_API_KEY")
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
}

// Validate checks the configuration, combining struct-tag validation with
// the section validators.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	for section, tls := range map[string]*security.TLSConfig{
		"config.whisper.tls":     c.Whisper.TLS,
		"config.diarization.tls": c.Diarization.TLS,
		"config.llm.tls":         c.LLM.TLS,
	} {
		if tls == nil {
			continue
		}
		if err := tls.Validate(); err != nil {
			return fmt.Errorf("%s: %w", section, err)
		}
	}
	return nil
}

// WhisperTimeout returns the configured ASR timeout as a duration.
func (c *Config) WhisperTimeout() time.Duration {
	return time.Duration(c.Whisper.TimeoutSeconds) * time.Second
}

// DiarizationTimeout returns the configured diarization timeout.
func (c *Config) DiarizationTimeout() time.Duration {
	return time.Duration(c.Diarization.TimeoutSeconds) * time.Second
}

// LLMTimeout returns the configured inference timeout.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}
