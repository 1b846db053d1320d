package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/medbotlabs/medscribe/security"
)

func TestApplyDefaults_Development(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Name != "medscribe" {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug=true for development")
	}
	if cfg.Whisper.Model != "base" {
		t.Errorf("expected whisper model 'base', got %q", cfg.Whisper.Model)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %f", cfg.Telemetry.SampleRate)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
}

func TestApplyDefaults_ProductionKeepsDebugOff(t *testing.T) {
	cfg := Config{Environment: "production"}
	cfg.ApplyDefaults()
	if cfg.Debug {
		t.Error("expected debug=false for production")
	}
}

func TestApplyDefaults_CredentialsFromEnv(t *testing.T) {
	t.Setenv("HUGGINGFACE_TOKEN", "hf_from_env")
	t.Setenv("DO_AI_API_KEY", "do_from_env")

	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Diarization.AuthToken != "hf_from_env" {
		t.Errorf("expected HUGGINGFACE_TOKEN fallback, got %q", cfg.Diarization.AuthToken)
	}
	if cfg.LLM.APIKey != "do_from_env" {
		t.Errorf("expected DO_AI_API_KEY fallback, got %q", cfg.LLM.APIKey)
	}
}

func TestApplyDefaults_ExplicitCredentialWins(t *testing.T) {
	t.Setenv("HUGGINGFACE_TOKEN", "hf_from_env")

	cfg := Config{}
	cfg.Diarization.AuthToken = "hf_explicit"
	cfg.ApplyDefaults()

	if cfg.Diarization.AuthToken != "hf_explicit" {
		t.Errorf("explicit token must win, got %q", cfg.Diarization.AuthToken)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "config validation"},
		{"bad whisper url", func(c *Config) { c.Whisper.BaseURL = "not a url" }, "config validation"},
		{"negative timeout", func(c *Config) { c.LLM.TimeoutSeconds = -1 }, "config validation"},
		{"sample rate above one", func(c *Config) { c.Telemetry.SampleRate = 1.5 }, "config validation"},
		{"bad port", func(c *Config) { c.Server.Port = 99999 }, "config.server"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "config.logging"},
		{"cert without key", func(c *Config) {
			c.Whisper.TLS = &security.TLSConfig{CertFile: "client.pem"}
		}, "config.whisper.tls"},
		{"skip verify alone is fine", func(c *Config) {
			c.Diarization.TLS = &security.TLSConfig{SkipVerify: true}
		}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{}
			cfg.ApplyDefaults()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: medscribe
environment: staging
whisper:
  model: small
  timeout_seconds: 60
server:
  port: 9000
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var cfg Config
	if err := Load("medscribe", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("expected staging, got %q", cfg.Environment)
	}
	if cfg.Whisper.Model != "small" {
		t.Errorf("expected whisper model small, got %q", cfg.Whisper.Model)
	}
	if cfg.Whisper.TimeoutSeconds != 60 {
		t.Errorf("expected timeout 60, got %d", cfg.Whisper.TimeoutSeconds)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	if err := os.WriteFile(configPath, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SERVER_PORT", "9100")

	var cfg Config
	if err := Load("medscribe", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env override 9100, got %d", cfg.Server.Port)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")

	if err := os.WriteFile(envPath, []byte("WHISPER_MODEL=medium\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	var cfg Config
	if err := Load("medscribe", &cfg, WithEnvFile(envPath)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Whisper.Model != "medium" {
		t.Errorf("expected whisper model medium from .env, got %q", cfg.Whisper.Model)
	}
}

func TestLoad_MissingFilesAreFine(t *testing.T) {
	var cfg Config
	if err := Load("medscribe", &cfg, WithConfigFile("/nonexistent/config.yml")); err != nil {
		t.Fatalf("missing config file must not error: %v", err)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("WHISPER_BASE_URL")

	want := map[string]bool{
		"whisper_base_url": false,
		"whisper.base.url": false,
		"whisper.base_url": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("expected variant %q in %v", k, variants)
		}
	}
}
