// Command medscribe runs the medical consultation transcription service:
// audio upload, Whisper transcription, optional Pyannote speaker
// diarization, and clinical note generation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medbotlabs/medscribe/audio"
	"github.com/medbotlabs/medscribe/clinical"
	"github.com/medbotlabs/medscribe/config"
	"github.com/medbotlabs/medscribe/diarization"
	"github.com/medbotlabs/medscribe/diarization/pyannote"
	"github.com/medbotlabs/medscribe/llm/doai"
	"github.com/medbotlabs/medscribe/logger"
	"github.com/medbotlabs/medscribe/observability"
	"github.com/medbotlabs/medscribe/server"
	"github.com/medbotlabs/medscribe/server/endpoint"
	"github.com/medbotlabs/medscribe/transcription"
	"github.com/medbotlabs/medscribe/transcription/whisper"
	"github.com/medbotlabs/medscribe/util"
	"github.com/medbotlabs/medscribe/version"
)

const serviceName = "medscribe"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config.Config
	if err := config.Load(serviceName, &cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("starting service", logger.Fields(
		"service", cfg.Name,
		"environment", cfg.Environment,
		"version", version.Get().Version,
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, err := setupTelemetry(ctx, &cfg, log)
	if err != nil {
		return err
	}

	transcriber, err := buildTranscriber(&cfg)
	if err != nil {
		return fmt.Errorf("transcription provider: %w", err)
	}

	diarizer, err := buildDiarizer(&cfg)
	if err != nil {
		return fmt.Errorf("diarization provider: %w", err)
	}
	if diarizer == nil {
		log.Warn("diarization disabled, no HuggingFace token configured")
	} else {
		log.Info("diarization enabled", logger.Fields("token", util.MaskSecret(cfg.Diarization.AuthToken, 4)))
	}

	generator, err := buildGenerator(&cfg, log)
	if err != nil {
		return fmt.Errorf("inference provider: %w", err)
	}
	if generator == nil {
		log.Warn("clinical note generation disabled, no inference API key configured")
	}

	srv := server.New(cfg.Server, log)
	endpoint.New(endpoint.Options{
		Log:          log,
		Store:        audio.NewTempStore(cfg.TempDir, log),
		Transcoder:   audio.NewTranscoder(cfg.FFmpegPath, log),
		Transcriber:  transcriber,
		Diarizer:     diarizer,
		Generator:    generator,
		Metrics:      metrics,
		WhisperModel: cfg.Whisper.Model,
	}).Register(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	stop()

	return srv.Stop(context.Background())
}

// setupTelemetry initializes the OTLP exporters when an endpoint is
// configured and always returns a usable Metrics set; without an endpoint
// the instruments record against the no-op global provider.
func setupTelemetry(ctx context.Context, cfg *config.Config, log *logger.Logger) (*observability.Metrics, error) {
	if cfg.Telemetry.Endpoint != "" {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version.Get().Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Telemetry.Endpoint,
			Insecure:       cfg.Telemetry.Insecure,
			SampleRate:     cfg.Telemetry.SampleRate,
		})
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		mp, err := observability.InitMeter(ctx, observability.MeterConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version.Get().Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Telemetry.Endpoint,
			Insecure:       cfg.Telemetry.Insecure,
			Interval:       15 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("init meter: %w", err)
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Error("tracer shutdown", logger.Fields("error", err.Error()))
			}
			if err := mp.Shutdown(shutdownCtx); err != nil {
				log.Error("meter shutdown", logger.Fields("error", err.Error()))
			}
		}()
	}
	return observability.NewMetrics(observability.Meter(serviceName))
}

func buildTranscriber(cfg *config.Config) (transcription.Provider, error) {
	registry := transcription.NewRegistry()
	registry.RegisterFactory(whisper.ProviderName, whisper.Factory())
	return registry.Create(whisper.ProviderName, map[string]any{
		"url":     cfg.Whisper.BaseURL,
		"model":   cfg.Whisper.Model,
		"timeout": cfg.WhisperTimeout(),
		"tls":     cfg.Whisper.TLS,
	})
}

// buildDiarizer returns nil without error when diarization is not
// configured; the endpoint then reports the capability as unavailable.
func buildDiarizer(cfg *config.Config) (diarization.Provider, error) {
	if cfg.Diarization.AuthToken == "" {
		return nil, nil
	}
	registry := diarization.NewRegistry()
	registry.RegisterFactory(pyannote.ProviderName, pyannote.Factory())
	return registry.Create(pyannote.ProviderName, map[string]any{
		"base_url":   cfg.Diarization.BaseURL,
		"auth_token": cfg.Diarization.AuthToken,
		"timeout":    cfg.DiarizationTimeout(),
		"tls":        cfg.Diarization.TLS,
	})
}

// buildGenerator returns nil without error when no inference credential is
// configured.
func buildGenerator(cfg *config.Config, log *logger.Logger) (*clinical.Generator, error) {
	if cfg.LLM.APIKey == "" {
		return nil, nil
	}
	provider, err := doai.NewProvider(doai.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLMTimeout(),
		TLS:     cfg.LLM.TLS,
	})
	if err != nil {
		return nil, err
	}
	return clinical.NewGenerator(provider, log), nil
}
